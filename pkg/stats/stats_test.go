package stats

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample is the reference dataset printed by the boxplot command
var sample = []float64{13, 12, 9, 11, 14, 12, 10, 15, 11, 10, 7}

func TestFiveNumberSummary(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{name: "odd", values: sample, want: Summary{Min: 7, Q1: 10, Median: 11, Q3: 13, Max: 15}},
		{name: "even", values: []float64{4, 1, 3, 2}, want: Summary{Min: 1, Q1: 1.5, Median: 2.5, Q3: 3.5, Max: 4}},
		{name: "two", values: []float64{3, 1}, want: Summary{Min: 1, Q1: 1, Median: 2, Q3: 3, Max: 3}},
		{name: "three", values: []float64{2, 3, 1}, want: Summary{Min: 1, Q1: 1, Median: 2, Q3: 3, Max: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FiveNumberSummary(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFiveNumberSummary_DoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := FiveNumberSummary(values)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestFiveNumberSummary_Errors(t *testing.T) {
	_, err := FiveNumberSummary(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = FiveNumberSummary([]float64{5})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMedianAndQuartiles(t *testing.T) {
	m, err := Median([]float64{5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, m)

	_, err = Median(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Q1([]float64{1})
	assert.ErrorIs(t, err, ErrInsufficientData)
	_, err = Q3(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	q3, err := Q3([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 5.0, q3)
}

func TestSummary_String(t *testing.T) {
	s := Summary{Min: 7, Q1: 10, Median: 11, Q3: 13, Max: 15}
	assert.Equal(t, "  min: 7\n  Q1: 10\n  median: 11\n  Q3: 13\n  max: 15", s.String())
}

func TestGenerateRandomInts(t *testing.T) {
	seed := uint64(42)
	a, err := GenerateRandomInts(200, -3, 3, &seed)
	require.NoError(t, err)
	b, err := GenerateRandomInts(200, -3, 3, &seed)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed gave different values")
	seen := map[int]bool{}
	for _, v := range a {
		assert.GreaterOrEqual(t, v, -3)
		assert.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 7, "bounds are inclusive")

	single, err := GenerateRandomInts(5, 9, 9, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 9, 9, 9, 9}, single)
}

func TestGenerateRandomInts_WideRanges(t *testing.T) {
	seed := uint64(7)
	tests := []struct {
		name         string
		lower, upper int
	}{
		{name: "past_max_int", lower: -1, upper: math.MaxInt},
		{name: "whole_int_range", lower: math.MinInt, upper: math.MaxInt},
		{name: "negative_half", lower: math.MinInt, upper: 0},
		{name: "top_value", lower: math.MaxInt, upper: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range []*uint64{nil, &seed} {
				values, err := GenerateRandomInts(50, tt.lower, tt.upper, s)
				require.NoError(t, err)
				require.Len(t, values, 50)
				for _, v := range values {
					assert.GreaterOrEqual(t, v, tt.lower)
					assert.LessOrEqual(t, v, tt.upper)
				}
			}
		})
	}
}

func TestGenerateRandomInts_InvalidRange(t *testing.T) {
	for _, tt := range []struct{ count, lower, upper int }{
		{0, 1, 2},
		{-1, 1, 2},
		{5, 3, 2},
	} {
		_, err := GenerateRandomInts(tt.count, tt.lower, tt.upper, nil)
		assert.ErrorIs(t, err, ErrInvalidRange)
	}
}

func TestFloats(t *testing.T) {
	assert.Equal(t, []float64{1, -2, 3}, Floats([]int{1, -2, 3}))
}

func TestBoxPlotOptions_Title(t *testing.T) {
	assert.Equal(t, "Box Plot", BoxPlotOptions{}.title())
	assert.Equal(t, "Horizontal Box Plot", BoxPlotOptions{Horizontal: true}.title())
	assert.Equal(t, "mine", BoxPlotOptions{Horizontal: true, Title: "mine"}.title())
}

func TestNewBoxPlot(t *testing.T) {
	p, err := NewBoxPlot(sample, BoxPlotOptions{Horizontal: true})
	require.NoError(t, err)
	assert.Equal(t, "Horizontal Box Plot", p.Title.Text)
	assert.Equal(t, "Values", p.X.Label.Text)

	_, err = NewBoxPlot(nil, BoxPlotOptions{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRenderBoxPlot_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBoxPlot(&buf, sample, "SVG", BoxPlotOptions{}))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "Box Plot")

	err := RenderBoxPlot(&buf, sample, "bmp", BoxPlotOptions{})
	assert.Error(t, err)
}

func TestWriteBoxPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.png")
	require.NoError(t, WriteBoxPlot(sample, path, BoxPlotOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	err = WriteBoxPlot(sample, filepath.Join(t.TempDir(), "missing", "box.png"), BoxPlotOptions{})
	assert.Error(t, err)
}
