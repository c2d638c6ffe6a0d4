package particles

import (
	"image/color"
	"math"
	"testing"
)

// sequenceSource replays fixed unit samples in order, wrapping around.
type sequenceSource struct {
	values []float64
	next   int
	calls  int
}

func (s *sequenceSource) IntBetween(min, max float64) float64 {
	s.calls++
	u := s.values[s.next%len(s.values)]
	s.next++
	return math.Floor(min + u*(max-min))
}

// forbiddenSource fails the test when consulted.
type forbiddenSource struct{ t *testing.T }

func (s forbiddenSource) IntBetween(min, max float64) float64 {
	s.t.Helper()
	s.t.Fatalf("random source consulted for [%v, %v)", min, max)
	return 0
}

type rectCall struct {
	X, Y, W, H float64
	Color      color.Color
}

type circleCall struct {
	X, Y, D float64
	Color   color.Color
}

// recordingSurface records every draw call.
type recordingSurface struct {
	rects   []rectCall
	circles []circleCall
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.rects = append(s.rects, rectCall{X: x, Y: y, W: w, H: h, Color: c})
}

func (s *recordingSurface) FillCircle(cx, cy, d float64, c color.Color) {
	s.circles = append(s.circles, circleCall{X: cx, Y: cy, D: d, Color: c})
}

func (s *recordingSurface) calls() int {
	return len(s.rects) + len(s.circles)
}

func at(ms float64) FrameTime {
	return FrameTime{CurrentTime: ms}
}
