package particle

import (
	"testing"

	"github.com/decker502/sparks/pkg/particles"
	"github.com/decker502/sparks/pkg/utils"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    particles.NumberRange
		wantErr bool
	}{
		{"Fixed value", "1500", particles.Fixed(1500), false},
		{"Fixed negative", "-90", particles.Fixed(-90), false},
		{"Range", "[0.7 0.9]", particles.NumberRange{Min: 0.7, Max: 0.9}, false},
		{"Range with comma", "[10, 20]", particles.NumberRange{Min: 10, Max: 20}, false},
		{"Single item range", "[5]", particles.Fixed(5), false},
		{"Inverted range kept", "[20 10]", particles.NumberRange{Min: 20, Max: 10}, false},
		{"Whitespace", "  [ 1   2 ]  ", particles.NumberRange{Min: 1, Max: 2}, false},
		{"Empty", "", particles.NumberRange{}, true},
		{"Garbage", "abc", particles.NumberRange{}, true},
		{"Unterminated", "[1 2", particles.NumberRange{}, true},
		{"Too many values", "[1 2 3]", particles.NumberRange{}, true},
		{"Bad item", "[1 x]", particles.NumberRange{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRange(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    utils.Color
		wantErr bool
	}{
		{"Hex RGB", "#ff8000", utils.Color{R: 255, G: 128, B: 0, A: 255}, false},
		{"Hex RGBA", "#10203040", utils.Color{R: 16, G: 32, B: 48, A: 64}, false},
		{"Hex uppercase", "#FFFFFF", utils.White, false},
		{"rgb()", "rgb(1, 2, 3)", utils.Color{R: 1, G: 2, B: 3, A: 255}, false},
		{"rgba() 半透明", "rgba(255, 0, 0, 0.5)", utils.Color{R: 255, A: 127.5}, false},
		{"rgba() 透明", "rgba(0,0,0,0)", utils.Transparent, false},
		{"Named", "Orange", utils.Color{R: 255, G: 165, A: 255}, false},
		{"Named transparent", "transparent", utils.Transparent, false},
		{"Short hex", "#fff", utils.Color{}, true},
		{"Bad hex", "#gggggg", utils.Color{}, true},
		{"rgba wrong arity", "rgba(1, 2, 3)", utils.Color{}, true},
		{"Unknown name", "chartreuse-ish", utils.Color{}, true},
		{"Empty", "", utils.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		input   string
		want    particles.Shape
		wantErr bool
	}{
		{"", particles.ShapeSquare, false},
		{"circle", particles.ShapeCircle, false},
		{"SQUARE", particles.ShapeSquare, false},
		{"hexagon", particles.ShapeSquare, true},
	}

	for _, tt := range tests {
		got, err := ParseShape(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShape(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShape(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
