package geometry

// ClipSegment clips the segment a-b to r with the Liang-Barsky algorithm.
// The result is false when the segment misses r or a coordinate is not
// finite.
func ClipSegment(a, b Vector2D, r Rect) (Vector2D, Vector2D, bool) {
	d := b.Sub(a)
	if !a.IsFinite() || !b.IsFinite() || !d.IsFinite() {
		return a, b, false
	}

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - r.X},
		{d.X, r.X + r.Width - a.X},
		{-d.Y, a.Y - r.Y},
		{d.Y, r.Y + r.Height - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}

	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}

type clipEdge struct {
	inside func(Vector2D) bool
	cross  func(a, b Vector2D) Vector2D
}

func atX(a, b Vector2D, x float64) Vector2D {
	t := (x - a.X) / (b.X - a.X)
	return Vector2D{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func atY(a, b Vector2D, y float64) Vector2D {
	t := (y - a.Y) / (b.Y - a.Y)
	return Vector2D{X: a.X + t*(b.X-a.X), Y: y}
}

// ClipPolygon clips a polygon to r with the Sutherland-Hodgman algorithm.
// It returns nil when nothing is left or a vertex is not finite.
func ClipPolygon(points []Vector2D, r Rect) []Vector2D {
	for _, p := range points {
		if !p.IsFinite() {
			return nil
		}
	}

	right, bottom := r.X+r.Width, r.Y+r.Height
	edges := []clipEdge{
		{func(p Vector2D) bool { return p.X >= r.X }, func(a, b Vector2D) Vector2D { return atX(a, b, r.X) }},
		{func(p Vector2D) bool { return p.X <= right }, func(a, b Vector2D) Vector2D { return atX(a, b, right) }},
		{func(p Vector2D) bool { return p.Y >= r.Y }, func(a, b Vector2D) Vector2D { return atY(a, b, r.Y) }},
		{func(p Vector2D) bool { return p.Y <= bottom }, func(a, b Vector2D) Vector2D { return atY(a, b, bottom) }},
	}

	out := points
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]Vector2D, 0, len(in)+1)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
