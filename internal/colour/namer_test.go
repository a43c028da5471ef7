package colour

import (
	"math"
	"reflect"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func newTestNamer(t *testing.T, p *Palette, maxDistance float64) *Namer {
	t.Helper()
	n, err := NewNamer(p, NamerConfig{MaxDistance: maxDistance})
	if err != nil {
		t.Fatalf("NewNamer() error = %v", err)
	}
	return n
}

func TestResolveExactBlack(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	first := n.Resolve("#000000")
	if first.Value != "đen" {
		t.Errorf("Expected đen, got %q", first.Value)
	}
	if !first.Exact() {
		t.Errorf("Expected exact match, got %s", first.Match)
	}
	if second := n.Resolve("#000000"); !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve() not deterministic: %+v vs %+v", first, second)
	}
}

func TestResolveShorthandHex(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	pairs := [][2]string{
		{"#abc", "#aabbcc"},
		{"abc", "aabbcc"},
		{"#FFF", "#ffffff"},
		{"#f00", "#FF0000"},
	}
	for _, p := range pairs {
		short, long := n.Resolve(p[0]), n.Resolve(p[1])
		if short.Value != long.Value || short.Match != long.Match || short.Hex != long.Hex {
			t.Errorf("Resolve(%q) = %+v, Resolve(%q) = %+v", p[0], short, p[1], long)
		}
	}
}

func TestResolveRGBInputs(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	tests := []struct {
		input string
		want  string
	}{
		{"rgb(255,0,0)", "đỏ"},
		{"RGB( 255 , 0 , 0 )", "đỏ"},
		{"255,0,0", "đỏ"},
		{"255 0 0", "đỏ"},
		{"0, 0, 255", "xanh dương"},
		{"rgb(255 255 255)", "trắng"},
		{"255\t0\t0", "đỏ"},
		{"rgb(255, 000, 00)", "đỏ"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := n.Resolve(tt.input)
			if got.Value != tt.want || !got.Exact() {
				t.Errorf("Resolve(%q) = %q (%s), want %q exact", tt.input, got.Value, got.Match, tt.want)
			}
		})
	}
}

func TestResolveUnrecognised(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	inputs := []string{
		"123,45,xyz",
		"256,0,0",
		"-1,0,0",
		"rgb(1,2)",
		"rgb(1,2,3,4)",
		"rgb 1,2,3",
		"1,,2,3",
		"rgb(+255,0,0)",
		"+1 2 3",
		"1,2 3",
		"1 2,3",
		"rgb(1,2 3,4)",
		"0x1,2,3",
		"1.0,2,3",
		"0255,0,0",
		"#12345",
		"#ggg",
		"sneaker red",
		"",
		"   ",
	}

	for _, in := range inputs {
		got := n.Resolve(in)
		if got.Resolved() {
			t.Errorf("Resolve(%q) unexpectedly resolved to %q", in, got.Value)
		}
		if got.Value != in || got.Input != in {
			t.Errorf("Resolve(%q) value = %q, want input echoed", in, got.Value)
		}
		if got.Hex != "" {
			t.Errorf("Resolve(%q) hex = %q, want empty", in, got.Hex)
		}
	}
}

func TestResolveNames(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	tests := []struct {
		input   string
		want    string
		wantHex string
	}{
		{"crimson", "crimson", "#DC143C"},
		{"CRIMSON", "crimson", "#DC143C"},
		{"  Đen ", "đen", "#000000"},
		{"Xanh Navy", "xanh navy", "#000080"},
		{norm.NFD.String("trắng"), "trắng", "#FFFFFF"},
		{"gold", "gold", "#FFD700"},
	}

	for _, tt := range tests {
		got := n.Resolve(tt.input)
		if got.Value != tt.want || got.Hex != tt.wantHex || !got.Exact() {
			t.Errorf("Resolve(%q) = %q %s (%s), want %q %s exact", tt.input, got.Value, got.Hex, got.Match, tt.want, tt.wantHex)
		}
	}
}

func TestResolveDuplicateHexFirstRegisteredWins(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	got := n.Resolve("#ffd700")
	if got.Value != "vàng gold" {
		t.Errorf("Expected the first registered entry for #FFD700, got %q", got.Value)
	}
	if got.Entry.Hex != "#FFD700" {
		t.Errorf("Expected entry hex #FFD700, got %q", got.Entry.Hex)
	}
}

func TestResolveNearest(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	got := n.Resolve("#FE0101")
	if got.Match != MatchNearest {
		t.Fatalf("Expected nearest match, got %s", got.Match)
	}
	if got.Value != "đỏ" {
		t.Errorf("Expected đỏ, got %q", got.Value)
	}
	if got.Hex != "#FE0101" {
		t.Errorf("Expected input hex kept, got %q", got.Hex)
	}
	if math.Abs(got.Distance-math.Sqrt(3)) > 1e-9 {
		t.Errorf("Expected distance sqrt(3), got %v", got.Distance)
	}
}

func blackWhitePalette(t *testing.T) *Palette {
	t.Helper()
	p, err := NewPalette([]Entry{
		{Name: "black", Hex: "#000000"},
		{Name: "white", Hex: "#FFFFFF"},
	})
	if err != nil {
		t.Fatalf("NewPalette() error = %v", err)
	}
	return p
}

func TestResolveDistancePolicy(t *testing.T) {
	p := blackWhitePalette(t)

	bounded := newTestNamer(t, p, DefaultMaxDistance)
	got := bounded.Resolve("#808080")
	if got.Resolved() {
		t.Errorf("Expected grey to stay unresolved with limit 50, got %q", got.Value)
	}
	if got.Value != "#808080" || got.Hex != "#808080" {
		t.Errorf("Expected the input back, got value %q hex %q", got.Value, got.Hex)
	}

	unbounded := newTestNamer(t, p, Unbounded)
	got = unbounded.Resolve("#808080")
	if got.Match != MatchNearest || got.Value != "white" {
		t.Errorf("Expected nearest white when unbounded, got %q (%s)", got.Value, got.Match)
	}

	exactOnly := newTestNamer(t, p, 0)
	if got := exactOnly.Resolve("#010101"); got.Resolved() {
		t.Errorf("Expected no nearest matches with limit 0, got %q", got.Value)
	}
	if got := exactOnly.Resolve("#000"); !got.Exact() {
		t.Errorf("Expected exact match with limit 0, got %s", got.Match)
	}
}

func TestResolveNearestTieFirstWins(t *testing.T) {
	p, err := NewPalette([]Entry{
		{Name: "first", Hex: "#000000"},
		{Name: "second", Hex: "#020000"},
	})
	if err != nil {
		t.Fatalf("NewPalette() error = %v", err)
	}
	n := newTestNamer(t, p, DefaultMaxDistance)

	if got := n.Resolve("#010000"); got.Value != "first" {
		t.Errorf("Expected tie to go to the first entry, got %q", got.Value)
	}
}

func TestResolveIdempotentPassthrough(t *testing.T) {
	n := newTestNamer(t, blackWhitePalette(t), DefaultMaxDistance)

	for _, in := range []string{"#808080", "rgb(100,120,130)", "#777"} {
		first := n.Resolve(in)
		if first.Resolved() {
			t.Fatalf("Resolve(%q) unexpectedly resolved", in)
		}
		again := n.Resolve(first.Hex)
		if again.Resolved() || again.Hex != first.Hex || again.Value != first.Hex {
			t.Errorf("Resolve(%q) drifted: %+v", first.Hex, again)
		}
	}

	text := n.Resolve("not a colour")
	if again := n.Resolve(text.Value); !reflect.DeepEqual(text, again) {
		t.Errorf("text passthrough drifted: %+v vs %+v", text, again)
	}
}

func TestResolveRGB(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	got := n.ResolveRGB(RGB{R: 255, G: 255, B: 255})
	if got.Value != "trắng" || !got.Exact() || got.Input != "#FFFFFF" {
		t.Errorf("ResolveRGB(white) = %+v", got)
	}
}

func TestClassify(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		input string
		want  string
	}{
		{"đen", "named"},
		{"#abc", "hex"},
		{"ABCDEF", "hex"},
		{"rgb(1,2,3)", "rgb"},
		{"1 2 3", "rgb"},
		{"hello", "text"},
		{"", "text"},
	}

	for _, tt := range tests {
		var got string
		switch p.Classify(tt.input).(type) {
		case NamedInput:
			got = "named"
		case HexInput:
			got = "hex"
		case RGBInput:
			got = "rgb"
		case TextInput:
			got = "text"
		}
		if got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestResolveInputText(t *testing.T) {
	n := newTestNamer(t, DefaultPalette(), DefaultMaxDistance)

	got := n.ResolveInput(TextInput{Text: "mystery"})
	if got.Resolved() || got.Value != "mystery" {
		t.Errorf("ResolveInput(text) = %+v", got)
	}
	if got := n.ResolveInput(nil); got.Resolved() || got.Value != "" {
		t.Errorf("ResolveInput(nil) = %+v", got)
	}
}

func TestNewNamerValidation(t *testing.T) {
	if _, err := NewNamer(nil, DefaultNamerConfig()); err == nil {
		t.Error("Expected error for nil palette")
	}
	for _, d := range []float64{-1, math.NaN()} {
		if _, err := NewNamer(DefaultPalette(), NamerConfig{MaxDistance: d}); err == nil {
			t.Errorf("Expected error for max distance %v", d)
		}
	}
	if _, err := NewNamer(DefaultPalette(), NamerConfig{MaxDistance: Unbounded}); err != nil {
		t.Errorf("Unexpected error for unbounded distance: %v", err)
	}
}

func TestMatchKindString(t *testing.T) {
	tests := map[MatchKind]string{
		MatchNone:    "none",
		MatchNearest: "nearest",
		MatchExact:   "exact",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("MatchKind(%d).String() = %q, want %q", m, got, want)
		}
	}
}
