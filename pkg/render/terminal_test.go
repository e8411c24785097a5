package render

import (
	"bytes"
	"context"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/vecpad/pkg/entity"
	"github.com/opd-ai/vecpad/pkg/geometry"
	"github.com/opd-ai/vecpad/pkg/input"
	"github.com/opd-ai/vecpad/pkg/scene"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestNewTerminalSurface_CreatesBlankGrid(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
	}{
		{name: "small", cols: 10, rows: 5},
		{name: "classic", cols: 80, rows: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTerminalSurface(tt.cols, tt.rows, 900, 650)
			if len(ts.buffer) != tt.rows || len(ts.buffer[0]) != tt.cols {
				t.Fatalf("grid = %dx%d, expected %dx%d", len(ts.buffer[0]), len(ts.buffer), tt.cols, tt.rows)
			}
			if strings.TrimSpace(ts.String()) != "" {
				t.Error("new grid is not blank")
			}
		})
	}
}

func TestTerminalSurface_DrawLine(t *testing.T) {
	tests := []struct {
		name     string
		from, to geometry.Vector2D
		cells    [][2]int
	}{
		{
			name:  "horizontal",
			from:  geometry.Vector2D{X: 0, Y: 0},
			to:    geometry.Vector2D{X: 4, Y: 0},
			cells: [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
		},
		{
			name:  "diagonal",
			from:  geometry.Vector2D{X: 0, Y: 0},
			to:    geometry.Vector2D{X: 3, Y: 3},
			cells: [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
		},
		{
			name:  "reversed_vertical",
			from:  geometry.Vector2D{X: 2, Y: 4},
			to:    geometry.Vector2D{X: 2, Y: 1},
			cells: [][2]int{{2, 1}, {2, 2}, {2, 3}, {2, 4}},
		},
		{
			name:  "clipped",
			from:  geometry.Vector2D{X: -3, Y: 0},
			to:    geometry.Vector2D{X: 1, Y: 0},
			cells: [][2]int{{0, 0}, {1, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// One pixel per cell.
			ts := NewTerminalSurface(10, 10, 10, 10)
			ts.DrawLine(tt.from, tt.to, white, 4)
			for _, c := range tt.cells {
				if ts.At(c[0], c[1]) != glyphLine {
					t.Errorf("cell %v = %q, expected %q\n%s", c, ts.At(c[0], c[1]), glyphLine, ts.String())
				}
			}
		})
	}
}

// finishWithin fails the test when draw has not returned after d
func finishWithin(t *testing.T, d time.Duration, draw func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		draw()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("drawing still running after %v", d)
	}
}

func TestTerminalSurface_FarGeometry(t *testing.T) {
	center := geometry.Vector2D{X: 450, Y: 325}
	far := geometry.Vector2D{X: 1e301, Y: -1e301}
	ts := NewTerminalSurface(90, 32, 900, 650)

	finishWithin(t, 2*time.Second, func() {
		ts.DrawLine(center, geometry.Vector2D{X: 1e13, Y: 325}, white, 4)
		ts.DrawLine(center, far, white, 4)
		ts.FillPolygon([]geometry.Vector2D{far, {X: 1e301 - 1e290, Y: -1e301}, {X: 1e301, Y: -1e301 + 1e290}}, white)
		ts.FillPolygon([]geometry.Vector2D{{X: -1e12, Y: -1e12}, {X: 1e12, Y: -1e12}, {X: 0, Y: 1e12}}, white)
	})

	if ts.At(89, 10) != glyphHead {
		t.Errorf("cell (89,10) = %q, expected the covering polygon", ts.At(89, 10))
	}
}

func TestTerminalSurface_DrawRect(t *testing.T) {
	ts := NewTerminalSurface(10, 10, 10, 10)
	ts.DrawRect(geometry.Rect{X: 1, Y: 1, Width: 4, Height: 3}, white, false)

	expected := map[[2]int]rune{
		{1, 1}: glyphCorner, {4, 1}: glyphCorner, {1, 3}: glyphCorner, {4, 3}: glyphCorner,
		{2, 1}: glyphHoriz, {3, 3}: glyphHoriz,
		{1, 2}: glyphVert, {4, 2}: glyphVert,
		{2, 2}: ' ',
	}
	for cell, r := range expected {
		if got := ts.At(cell[0], cell[1]); got != r {
			t.Errorf("cell %v = %q, expected %q", cell, got, r)
		}
	}

	ts.DrawRect(geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}, white, true)
	if strings.TrimSpace(ts.String()) != "" {
		t.Error("filled rect did not blank its cells")
	}
}

func TestTerminalSurface_FillPolygon(t *testing.T) {
	ts := NewTerminalSurface(10, 10, 10, 10)
	ts.FillPolygon([]geometry.Vector2D{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8}}, white)

	if ts.At(1, 1) != glyphHead {
		t.Errorf("interior cell = %q, expected %q", ts.At(1, 1), glyphHead)
	}
	if ts.At(8, 8) != ' ' {
		t.Errorf("exterior cell = %q, expected blank", ts.At(8, 8))
	}

	ts.Clear()
	ts.FillPolygon([]geometry.Vector2D{{X: 0, Y: 0}, {X: 1, Y: 1}}, white)
	if strings.TrimSpace(ts.String()) != "" {
		t.Error("degenerate polygon drew cells")
	}
}

func TestTerminalSurface_DrawText(t *testing.T) {
	ts := NewTerminalSurface(8, 2, 8, 2)
	ts.DrawText("(1.0, 2.0)", geometry.Vector2D{X: 2, Y: 1}, white)

	rows := strings.Split(ts.String(), "\n")
	if rows[1] != "  (1.0, " {
		t.Errorf("row = %q, expected clipped text", rows[1])
	}
}

func TestTerminalSurface_Present(t *testing.T) {
	ts := NewTerminalSurface(3, 2, 3, 2)
	ts.DrawText("ab", geometry.Vector2D{}, white)

	var buf bytes.Buffer
	if err := ts.Present(&buf); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	expected := "+---+\n|ab |\n|   |\n+---+\n"
	if buf.String() != expected {
		t.Errorf("Present() = %q, expected %q", buf.String(), expected)
	}
}

func TestTerminalSurface_FullFrame(t *testing.T) {
	sc := scene.New(scene.DefaultOptions())
	sc.AddDefault()
	c := input.NewController(context.Background(), sc, input.DefaultLayout(900, 650), nil, nil)

	ts := NewTerminalSurface(90, 65, 900, 650)
	NewRenderer(entity.DefaultArrowStyle, DefaultTheme()).Draw(ts, sc, c)
	out := ts.String()

	for _, want := range []string{AddVectorLabel, "(15.0, 8.0) | 17.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	// Origin (450, 325) falls in cell (45, 32).
	if ts.At(45, 32) != glyphLine {
		t.Errorf("origin cell = %q, expected shaft", ts.At(45, 32))
	}
}
