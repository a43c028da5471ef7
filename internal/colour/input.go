package colour

import "strings"

// Input is a classified colour input. The concrete type is one of
// NamedInput, HexInput, RGBInput or TextInput.
type Input interface {
	// Raw returns the text the input was classified from.
	Raw() string
	isInput()
}

// NamedInput is text that matched a palette name.
type NamedInput struct {
	Text  string
	Entry Entry
}

// HexInput is a "#RGB" or "#RRGGBB" colour, '#' optional.
type HexInput struct {
	Text string
	RGB  RGB
}

// RGBInput is an "rgb(r,g,b)", "r,g,b" or "r g b" colour.
type RGBInput struct {
	Text string
	RGB  RGB
}

// TextInput is anything that could not be recognised as a colour.
type TextInput struct {
	Text string
}

func (in NamedInput) Raw() string { return in.Text }
func (in HexInput) Raw() string   { return in.Text }
func (in RGBInput) Raw() string   { return in.Text }
func (in TextInput) Raw() string  { return in.Text }

func (NamedInput) isInput() {}
func (HexInput) isInput()   {}
func (RGBInput) isInput()   {}
func (TextInput) isInput()  {}

// Classify sorts raw text into an Input. Palette names are tried first, then
// hex, then RGB triples.
func (p *Palette) Classify(raw string) Input {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TextInput{Text: raw}
	}

	if e, ok := p.Lookup(s); ok {
		return NamedInput{Text: raw, Entry: e}
	}
	if rgb, ok := parseHexInput(s); ok {
		return HexInput{Text: raw, RGB: rgb}
	}
	if rgb, ok := parseRGBInput(s); ok {
		return RGBInput{Text: raw, RGB: rgb}
	}
	return TextInput{Text: raw}
}

func parseHexInput(s string) (RGB, bool) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 3 && len(h) != 6 {
		return RGB{}, false
	}
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return RGB{}, false
		}
	}
	rgb, err := ParseHex(h)
	return rgb, err == nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// parseRGBInput accepts "rgb(r,g,b)" and bare "r,g,b" or "r g b". Channels
// are unsigned decimal integers in 0-255 and the separators must be either all
// commas (optionally padded with spaces) or all whitespace.
func parseRGBInput(s string) (RGB, bool) {
	body := s
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb") {
		rest := strings.TrimSpace(s[3:])
		if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
			return RGB{}, false
		}
		body = rest[1 : len(rest)-1]
	}

	var fields []string
	if strings.Contains(body, ",") {
		fields = strings.Split(body, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
	} else {
		fields = strings.Fields(body)
	}
	if len(fields) != 3 {
		return RGB{}, false
	}

	var ch [3]uint8
	for i, f := range fields {
		v, ok := parseChannel(f)
		if !ok {
			return RGB{}, false
		}
		ch[i] = v
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// parseChannel parses one to three ASCII digits. Signs are rejected.
func parseChannel(s string) (uint8, bool) {
	if len(s) == 0 || len(s) > 3 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n > 255 {
		return 0, false
	}
	return uint8(n), true
}
