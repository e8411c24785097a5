// Package stats computes five-number summaries and draws box plots.
package stats

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

var (
	// ErrEmptyInput is returned when a summary is requested for no values
	ErrEmptyInput = errors.New("data list is empty")
	// ErrInsufficientData is returned when a quartile half would be empty
	ErrInsufficientData = errors.New("not enough values for quartile")
	// ErrInvalidRange is returned for a non-positive count or lower > upper
	ErrInvalidRange = errors.New("invalid random range")
)

// Summary is the five-number summary of a dataset
type Summary struct {
	Min    float64 `json:"min" yaml:"min"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3" yaml:"q3"`
	Max    float64 `json:"max" yaml:"max"`
}

// String formats the summary one statistic per line
func (s Summary) String() string {
	return fmt.Sprintf("  min: %g\n  Q1: %g\n  median: %g\n  Q3: %g\n  max: %g",
		s.Min, s.Q1, s.Median, s.Q3, s.Max)
}

func sorted(values []float64) []float64 {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Median returns the middle value, or the mean of the two middle values
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return median(sorted(values)), nil
}

// Q1 returns the median of the lower half. For odd lengths the median
// itself is excluded.
func Q1(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("%w: Q1 of %d values", ErrInsufficientData, len(values))
	}
	s := sorted(values)
	return median(s[:len(s)/2]), nil
}

// Q3 returns the median of the upper half. For odd lengths the median
// itself is excluded.
func Q3(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("%w: Q3 of %d values", ErrInsufficientData, len(values))
	}
	s := sorted(values)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return median(s[mid:]), nil
	}
	return median(s[mid+1:]), nil
}

// FiveNumberSummary computes min, Q1, median, Q3 and max
func FiveNumberSummary(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptyInput
	}

	s := sorted(values)
	q1, err := Q1(s)
	if err != nil {
		return Summary{}, err
	}
	q3, err := Q3(s)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Min:    s[0],
		Q1:     q1,
		Median: median(s),
		Q3:     q3,
		Max:    s[len(s)-1],
	}, nil
}

// GenerateRandomInts returns count integers drawn uniformly from
// [lower, upper]. A nil seed draws from the global source; a fixed seed
// always yields the same values.
func GenerateRandomInts(count, lower, upper int, seed *uint64) ([]int, error) {
	if count <= 0 || lower > upper {
		return nil, fmt.Errorf("%w: count=%d lower=%d upper=%d", ErrInvalidRange, count, lower, upper)
	}

	uint64N, next := rand.Uint64N, rand.Uint64
	if seed != nil {
		r := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
		uint64N, next = r.Uint64N, r.Uint64
	}

	// span is upper-lower, computed in uint64 so that wide ranges do not
	// overflow. Adding the offset back wraps into [lower, upper].
	span := uint64(upper) - uint64(lower)
	out := make([]int, count)
	for i := range out {
		var offset uint64
		if span == math.MaxUint64 {
			offset = next()
		} else {
			offset = uint64N(span + 1)
		}
		out[i] = int(uint64(lower) + offset)
	}
	return out, nil
}

// Floats converts integers for the summary functions
func Floats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
