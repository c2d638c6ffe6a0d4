package particles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/sparks/pkg/utils"
)

func TestNumberRangeDegenerate(t *testing.T) {
	r := NumberRange{Min: 10, Max: 10}
	src := forbiddenSource{t: t}
	for i := 0; i < 100; i++ {
		require.Equal(t, 10.0, r.RandomValue(src))
	}

	// 小数值的退化区间同样原样返回
	assert.Equal(t, 2.5, Fixed(2.5).RandomValue(src))
}

func TestNumberRangeRandomValueBounds(t *testing.T) {
	src := NewRandomSource(42)
	r := NumberRange{Min: 10, Max: 20}

	seen := map[float64]bool{}
	for i := 0; i < 2000; i++ {
		v := r.RandomValue(src)
		require.GreaterOrEqual(t, v, 10.0)
		require.Less(t, v, 20.0)
		require.Equal(t, float64(int(v)), v, "samples are integral")
		seen[v] = true
	}
	assert.Len(t, seen, 10, "every integer in [10, 20) should appear")
}

func TestNumberRangeUsesSource(t *testing.T) {
	src := &sequenceSource{values: []float64{0, 0.5, 0.999}}
	r := NumberRange{Min: 0, Max: 360}

	assert.Equal(t, 0.0, r.RandomValue(src))
	assert.Equal(t, 180.0, r.RandomValue(src))
	assert.Equal(t, 359.0, r.RandomValue(src))
	assert.Equal(t, 3, src.calls)
}

func TestNumberRangeSortedAndString(t *testing.T) {
	assert.Equal(t, NumberRange{Min: 1, Max: 5}, NumberRange{Min: 5, Max: 1}.Sorted())
	assert.Equal(t, NumberRange{Min: 1, Max: 5}, NumberRange{Min: 1, Max: 5}.Sorted())
	assert.Equal(t, "7", Fixed(7).String())
	assert.Equal(t, "[1 2.5]", NumberRange{Min: 1, Max: 2.5}.String())
}

func TestRandomSourceDeterministic(t *testing.T) {
	a := NewRandomSource(7)
	b := NewRandomSource(7)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.IntBetween(0, 1000), b.IntBetween(0, 1000))
	}
}

func TestColorRangeInterpolate(t *testing.T) {
	r := ColorRange{
		Min: utils.Color{R: 255, G: 0, B: 100, A: 255},
		Max: utils.Color{R: 0, G: 200, B: 100, A: 0},
	}

	tests := []struct {
		name string
		t    float64
		want utils.Color
	}{
		{"起点", 0, r.Min},
		{"终点", 1, r.Max},
		{"中点", 0.5, utils.Color{R: 127.5, G: 100, B: 100, A: 127.5}},
		{"外推", 2, utils.Color{R: -255, G: 400, B: 100, A: -255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Interpolate(tt.t)
			assert.True(t, tt.want.Equals(got), "Interpolate(%v) = %+v, want %+v", tt.t, got, tt.want)
		})
	}
}
