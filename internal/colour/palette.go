package colour

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/unicode/norm"
)

// Entry is a named reference colour.
type Entry struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	rgb  RGB
}

// RGB returns the entry colour.
func (e Entry) RGB() RGB {
	return e.rgb
}

// Palette is an immutable, ordered table of named colours. When several
// entries share a hex value (or a name), the first one registered wins.
type Palette struct {
	entries []Entry
	byName  map[string]int
	byRGB   map[uint32]int
}

// NewPalette builds a palette from one or more ordered groups of entries.
// Hex values are normalised to "#RRGGBB"; an unparsable hex is an error.
func NewPalette(groups ...[]Entry) (*Palette, error) {
	p := &Palette{
		byName: make(map[string]int),
		byRGB:  make(map[uint32]int),
	}

	for _, group := range groups {
		for _, e := range group {
			name := strings.TrimSpace(e.Name)
			if name == "" {
				return nil, fmt.Errorf("palette entry with hex %q has no name", e.Hex)
			}
			rgb, err := ParseHex(e.Hex)
			if err != nil {
				return nil, fmt.Errorf("palette entry %q: %w", name, err)
			}

			key := FoldName(name)
			if _, dup := p.byName[key]; dup {
				continue
			}

			idx := len(p.entries)
			p.entries = append(p.entries, Entry{Name: name, Hex: rgb.Hex(), rgb: rgb})
			p.byName[key] = idx
			if _, seen := p.byRGB[rgb.key()]; !seen {
				p.byRGB[rgb.key()] = idx
			}
		}
	}

	if len(p.entries) == 0 {
		return nil, fmt.Errorf("palette has no entries")
	}
	return p, nil
}

// DefaultPalette returns the built-in reference palette: Vietnamese common
// names followed by the CSS named colours.
func DefaultPalette() *Palette {
	p, err := NewPalette(vietnameseEntries, cssEntries())
	if err != nil {
		// Both tables are static; failure here is a programming error.
		panic(fmt.Sprintf("colour: invalid built-in palette: %v", err))
	}
	return p
}

// cssEntries converts the CSS named colour table into palette entries, in
// alphabetical order.
func cssEntries() []Entry {
	entries := make([]Entry, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		entries = append(entries, Entry{Name: name, Hex: RGB{R: c.R, G: c.G, B: c.B}.Hex()})
	}
	return entries
}

// FoldName normalises a colour name for comparison: trimmed, NFC and lower
// case, so precomposed and combining Vietnamese spellings compare equal.
func FoldName(name string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the entries in registration order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// All returns an iterator over the entries in registration order.
func (p *Palette) All() func(func(int, Entry) bool) {
	return func(yield func(int, Entry) bool) {
		for i, e := range p.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Lookup finds an entry by name, ignoring case.
func (p *Palette) Lookup(name string) (Entry, bool) {
	idx, ok := p.byName[FoldName(name)]
	if !ok {
		return Entry{}, false
	}
	return p.entries[idx], true
}

// LookupRGB returns the first registered entry with exactly this colour.
func (p *Palette) LookupRGB(c RGB) (Entry, bool) {
	idx, ok := p.byRGB[c.key()]
	if !ok {
		return Entry{}, false
	}
	return p.entries[idx], true
}

// NameForHex is a case-insensitive reverse lookup from hex to name.
func (p *Palette) NameForHex(hex string) (string, bool) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", false
	}
	e, ok := p.LookupRGB(rgb)
	return e.Name, ok
}

// Nearest returns the entry closest to c by Euclidean RGB distance, and that
// distance. Ties go to the earlier entry.
func (p *Palette) Nearest(c RGB) (Entry, float64) {
	best := 0
	bestDist := math.MaxFloat64
	for i, e := range p.entries {
		d := c.Distance(e.rgb)
		if d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return p.entries[best], bestDist
}
