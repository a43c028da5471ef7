package colour

import (
	"image/color"
	"math"
	"testing"
)

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{name: "red", color: color.RGBA{R: 255, A: 255}, want: RGB{R: 255}},
		{name: "white", color: color.RGBA{R: 255, G: 255, B: 255, A: 255}, want: RGB{R: 255, G: 255, B: 255}},
		{name: "black", color: color.RGBA{A: 255}, want: RGB{}},
		{name: "straight alpha", color: color.NRGBA{R: 200, G: 100, B: 50, A: 128}, want: RGB{R: 200, G: 100, B: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{R: 255}, "#FF0000"},
		{RGB{G: 255}, "#00FF00"},
		{RGB{B: 255}, "#0000FF"},
		{RGB{R: 255, G: 255, B: 255}, "#FFFFFF"},
		{RGB{}, "#000000"},
		{RGB{R: 0x1a, G: 0x2b, B: 0x3c}, "#1A2B3C"},
	}

	for _, tt := range tests {
		if got := tt.rgb.Hex(); got != tt.want {
			t.Errorf("%+v.Hex() = %q, want %q", tt.rgb, got, tt.want)
		}
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{R: 1, G: 2, B: 3}).String(); got != "rgb(1, 2, 3)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input   string
		want    RGB
		wantErr bool
	}{
		{input: "#FF0000", want: RGB{R: 255}},
		{input: "ff0000", want: RGB{R: 255}},
		{input: "#abc", want: RGB{R: 0xaa, G: 0xbb, B: 0xcc}},
		{input: "ABC", want: RGB{R: 0xaa, G: 0xbb, B: 0xcc}},
		{input: " #010203 ", want: RGB{R: 1, G: 2, B: 3}},
		{input: "#12", wantErr: true},
		{input: "#1234567", wantErr: true},
		{input: "#xyzxyz", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormaliseHex(t *testing.T) {
	got, err := NormaliseHex("#a1b")
	if err != nil {
		t.Fatalf("NormaliseHex() error = %v", err)
	}
	if got != "#AA11BB" {
		t.Errorf("NormaliseHex() = %q, want #AA11BB", got)
	}
}

func TestRGBDistance(t *testing.T) {
	black, white := RGB{}, RGB{R: 255, G: 255, B: 255}

	if d := black.Distance(black); d != 0 {
		t.Errorf("Distance to self = %v", d)
	}
	want := 255 * math.Sqrt(3)
	if d := black.Distance(white); math.Abs(d-want) > 1e-9 {
		t.Errorf("Distance(black, white) = %v, want %v", d, want)
	}
	if black.Distance(white) != white.Distance(black) {
		t.Error("Distance is not symmetric")
	}
}

func TestLuminanceAndContrast(t *testing.T) {
	black := RGBToColor(RGB{})
	white := RGBToColor(RGB{R: 255, G: 255, B: 255})

	if l := Luminance(black); l != 0 {
		t.Errorf("Luminance(black) = %v", l)
	}
	if l := Luminance(white); math.Abs(l-1) > 1e-9 {
		t.Errorf("Luminance(white) = %v", l)
	}
	if r := ContrastRatio(black, white); math.Abs(r-21) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %v, want 21", r)
	}
	if ContrastRatio(black, white) != ContrastRatio(white, black) {
		t.Error("ContrastRatio is not symmetric")
	}
}
