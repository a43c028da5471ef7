package colour

import "fmt"

// NamedSwatch is a swatch with the name its colour resolved to.
type NamedSwatch struct {
	Swatch
	Name  string    `json:"name"`
	Match MatchKind `json:"match"`
}

// Analyser samples dominant colours and names each of them.
type Analyser struct {
	sampler *Sampler
	namer   *Namer
}

// NewAnalyser composes a sampler and a namer.
func NewAnalyser(sampler *Sampler, namer *Namer) (*Analyser, error) {
	if sampler == nil || namer == nil {
		return nil, fmt.Errorf("analyser needs both a sampler and a namer")
	}
	return &Analyser{sampler: sampler, namer: namer}, nil
}

// Analyse samples r and resolves a name for every swatch. Unresolved swatches
// carry their hex as the name.
func (a *Analyser) Analyse(r Raster) []NamedSwatch {
	swatches := a.sampler.Sample(r)
	named := make([]NamedSwatch, len(swatches))
	for i, s := range swatches {
		res := a.namer.ResolveRGB(s.RGB())
		named[i] = NamedSwatch{Swatch: s, Name: res.Value, Match: res.Match}
	}
	return named
}
