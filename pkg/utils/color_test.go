package utils

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		name  string
		input Color
		want  color.NRGBA
	}{
		{"白色", White, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"透明", Transparent, color.NRGBA{}},
		{"钳制越界值", Color{R: 300, G: -20, B: 127.6, A: 255}, color.NRGBA{R: 255, G: 0, B: 128, A: 255}},
		{"半透明", Color{R: 255, A: 128}, color.NRGBA{R: 255, A: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.NRGBA())

			// RGBA() 必须与标准库的预乘结果一致
			r, g, b, a := tt.input.RGBA()
			wr, wg, wb, wa := tt.want.RGBA()
			assert.Equal(t, []uint32{wr, wg, wb, wa}, []uint32{r, g, b, a})
		})
	}
}

func TestColorFormatting(t *testing.T) {
	assert.Equal(t, "rgba(255, 255, 255, 1)", White.CSS())
	assert.Equal(t, "rgba(0, 0, 0, 0)", Transparent.CSS())
	assert.Equal(t, "#ff8000ff", NewColor(255, 128, 0, 255).Hex())
}

func TestColorEqualsAndAlpha(t *testing.T) {
	c := NewColor(10, 20, 30, 255)
	assert.True(t, c.Equals(Color{R: 10, G: 20, B: 30, A: 255}))
	assert.False(t, c.Equals(c.WithAlpha(0)))
	assert.Equal(t, 255.0, c.A, "WithAlpha must not mutate the receiver")
}

func TestColorFromStd(t *testing.T) {
	got := ColorFromStd(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	assert.Equal(t, Color{R: 1, G: 2, B: 3, A: 255}, got)
}

func TestColorFromHSV(t *testing.T) {
	tests := []struct {
		name string
		h    float64
		want Color
	}{
		{"红", 0, Color{R: 255, A: 255}},
		{"绿", 120, Color{G: 255, A: 255}},
		{"蓝", 240, Color{B: 255, A: 255}},
		{"黄", 60, Color{R: 255, G: 255, A: 255}},
		{"回绕", 360, Color{R: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorFromHSV(tt.h, 1, 1)
			assert.InDelta(t, tt.want.R, got.R, 1e-9)
			assert.InDelta(t, tt.want.G, got.G, 1e-9)
			assert.InDelta(t, tt.want.B, got.B, 1e-9)
			assert.Equal(t, 255.0, got.A)
		})
	}
}
