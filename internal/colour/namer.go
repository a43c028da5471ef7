package colour

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	// DefaultMaxDistance is the default nearest-match cutoff in RGB units.
	DefaultMaxDistance = 50.0
)

// Unbounded disables the nearest-match cutoff: the nearest entry is always
// returned.
var Unbounded = math.Inf(1)

// MatchKind describes how a Resolution was reached.
type MatchKind int

const (
	// MatchNone means no palette entry was accepted.
	MatchNone MatchKind = iota
	// MatchNearest means the nearest entry was within the distance limit.
	MatchNearest
	// MatchExact means the input named or equalled a palette entry.
	MatchExact
)

// String returns the string representation of the match kind.
func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchNearest:
		return "nearest"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m MatchKind) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Resolution is the outcome of naming a colour. It is always structurally
// valid; Match reports whether a name was actually found.
type Resolution struct {
	// Input is the raw text that was resolved.
	Input string
	// Value is the palette name when resolved, otherwise Input unchanged.
	Value string
	// Hex is the normalised colour of the input, empty when the input was
	// not a colour.
	Hex string
	// Match is the kind of match found.
	Match MatchKind
	// Distance is the RGB distance to the nearest palette entry.
	Distance float64
	// Entry is the chosen palette entry, zero when unresolved.
	Entry Entry
}

// Resolved reports whether a palette name was found.
func (r Resolution) Resolved() bool {
	return r.Match != MatchNone
}

// Exact reports whether the input named or equalled a palette entry.
func (r Resolution) Exact() bool {
	return r.Match == MatchExact
}

// resolutionJSON is the wire form of a Resolution.
type resolutionJSON struct {
	Input      string    `json:"input"`
	Value      string    `json:"value"`
	Hex        string    `json:"hex,omitempty"`
	Match      MatchKind `json:"match"`
	Unresolved bool      `json:"unresolved"`
	Distance   float64   `json:"distance"`
	PaletteHex string    `json:"palette_hex,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Resolution) MarshalJSON() ([]byte, error) {
	return json.Marshal(resolutionJSON{
		Input:      r.Input,
		Value:      r.Value,
		Hex:        r.Hex,
		Match:      r.Match,
		Unresolved: !r.Resolved(),
		Distance:   math.Round(r.Distance*100) / 100,
		PaletteHex: r.Entry.Hex,
	})
}

// NamerConfig holds configuration for colour naming.
type NamerConfig struct {
	// MaxDistance is the largest RGB distance accepted for a nearest match.
	// Use Unbounded to always accept the nearest entry.
	MaxDistance float64
}

// DefaultNamerConfig returns the default namer configuration.
func DefaultNamerConfig() NamerConfig {
	return NamerConfig{MaxDistance: DefaultMaxDistance}
}

// Validate validates the namer configuration.
func (c NamerConfig) Validate() error {
	if math.IsNaN(c.MaxDistance) || c.MaxDistance < 0 {
		return fmt.Errorf("max distance must be a non-negative number, got %v", c.MaxDistance)
	}
	return nil
}

// Namer resolves colours to names from a read-only palette. It holds no
// mutable state and is safe for concurrent use.
type Namer struct {
	palette     *Palette
	maxDistance float64
}

// NewNamer creates a Namer over p.
func NewNamer(p *Palette, cfg NamerConfig) (*Namer, error) {
	if p == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Namer{palette: p, maxDistance: cfg.MaxDistance}, nil
}

// Palette returns the palette the namer resolves against.
func (n *Namer) Palette() *Palette {
	return n.palette
}

// MaxDistance returns the nearest-match cutoff.
func (n *Namer) MaxDistance() float64 {
	return n.maxDistance
}

// Classify sorts raw text into an Input using the namer's palette.
func (n *Namer) Classify(raw string) Input {
	return n.palette.Classify(raw)
}

// Resolve names raw, which may be a palette name, a hex colour or an RGB
// triple. It never fails: unrecognised input comes back unresolved.
func (n *Namer) Resolve(raw string) Resolution {
	return n.ResolveInput(n.Classify(raw))
}

// ResolveInput names an already classified input.
func (n *Namer) ResolveInput(in Input) Resolution {
	switch v := in.(type) {
	case NamedInput:
		return Resolution{
			Input: v.Text,
			Value: v.Entry.Name,
			Hex:   v.Entry.Hex,
			Match: MatchExact,
			Entry: v.Entry,
		}
	case HexInput:
		return n.resolveColour(v.Text, v.RGB)
	case RGBInput:
		return n.resolveColour(v.Text, v.RGB)
	default:
		raw := ""
		if in != nil {
			raw = in.Raw()
		}
		return Resolution{Input: raw, Value: raw, Match: MatchNone}
	}
}

// ResolveRGB names a colour value directly.
func (n *Namer) ResolveRGB(c RGB) Resolution {
	return n.resolveColour(c.Hex(), c)
}

func (n *Namer) resolveColour(raw string, c RGB) Resolution {
	if e, ok := n.palette.LookupRGB(c); ok {
		return Resolution{Input: raw, Value: e.Name, Hex: c.Hex(), Match: MatchExact, Entry: e}
	}

	e, dist := n.palette.Nearest(c)
	if dist <= n.maxDistance {
		return Resolution{Input: raw, Value: e.Name, Hex: c.Hex(), Match: MatchNearest, Distance: dist, Entry: e}
	}
	return Resolution{Input: raw, Value: raw, Hex: c.Hex(), Match: MatchNone, Distance: dist}
}
