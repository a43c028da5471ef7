package colour

import (
	"errors"
	"fmt"
	"sort"

	"github.com/disintegration/imaging"
)

// ErrInvalidOptions is returned when sampler options are out of range.
var ErrInvalidOptions = errors.New("invalid sampler options")

// Options configures dominant colour sampling.
type Options struct {
	// MaxSwatches caps the number of swatches returned.
	MaxSwatches int `json:"max_swatches"`

	// QuantisationStep is the bucket size per channel (1-255). Larger values
	// merge more colours together.
	QuantisationStep int `json:"quantisation_step"`

	// SampleStride inspects every Nth pixel in row-major order.
	SampleStride int `json:"sample_stride"`

	// AlphaThreshold excludes pixels whose alpha is below it.
	AlphaThreshold int `json:"alpha_threshold"`

	// ExcludeNearWhite drops pixels whose R, G and B all exceed
	// NearWhiteThreshold, which is usually the photo background.
	ExcludeNearWhite   bool `json:"exclude_near_white"`
	NearWhiteThreshold int  `json:"near_white_threshold"`

	// MaxDimension bounds the longest side before sampling. Zero disables
	// downscaling.
	MaxDimension int `json:"max_dimension"`
}

// DefaultOptions returns the default sampler options.
func DefaultOptions() Options {
	return Options{
		MaxSwatches:        6,
		QuantisationStep:   20,
		SampleStride:       1,
		AlphaThreshold:     128,
		ExcludeNearWhite:   false,
		NearWhiteThreshold: 240,
		MaxDimension:       200,
	}
}

// Validate validates the sampler options.
func (o Options) Validate() error {
	if o.MaxSwatches < 1 {
		return fmt.Errorf("%w: max swatches must be at least 1, got %d", ErrInvalidOptions, o.MaxSwatches)
	}
	if o.QuantisationStep < 1 || o.QuantisationStep > 255 {
		return fmt.Errorf("%w: quantisation step must be between 1 and 255, got %d", ErrInvalidOptions, o.QuantisationStep)
	}
	if o.SampleStride < 1 {
		return fmt.Errorf("%w: sample stride must be at least 1, got %d", ErrInvalidOptions, o.SampleStride)
	}
	if o.AlphaThreshold < 0 || o.AlphaThreshold > 255 {
		return fmt.Errorf("%w: alpha threshold must be between 0 and 255, got %d", ErrInvalidOptions, o.AlphaThreshold)
	}
	if o.NearWhiteThreshold < 0 || o.NearWhiteThreshold > 255 {
		return fmt.Errorf("%w: near-white threshold must be between 0 and 255, got %d", ErrInvalidOptions, o.NearWhiteThreshold)
	}
	if o.MaxDimension < 0 {
		return fmt.Errorf("%w: max dimension cannot be negative, got %d", ErrInvalidOptions, o.MaxDimension)
	}
	return nil
}

// Swatch is a representative colour and how often it was observed.
type Swatch struct {
	Hex        string  `json:"hex"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RGB returns the swatch colour.
func (s Swatch) RGB() RGB {
	rgb, _ := ParseHex(s.Hex)
	return rgb
}

// Sampler reduces a raster to a small ranked set of dominant colours.
type Sampler struct {
	opts Options
}

// NewSampler creates a Sampler after validating opts.
func NewSampler(opts Options) (*Sampler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Sampler{opts: opts}, nil
}

// Options returns the options the sampler was created with.
func (s *Sampler) Options() Options {
	return s.opts
}

// Sample is shorthand for NewSampler(opts) followed by Sample.
func Sample(r Raster, opts Options) ([]Swatch, error) {
	s, err := NewSampler(opts)
	if err != nil {
		return nil, err
	}
	return s.Sample(r), nil
}

// bucket is a quantised colour and its pixel count. Buckets are kept in the
// order they were first seen so equal counts rank first-seen first.
type bucket struct {
	rgb   RGB
	count int
}

// Sample returns at most MaxSwatches swatches sorted by descending count.
// An empty raster, or one where every pixel is excluded, yields an empty
// slice.
func (s *Sampler) Sample(r Raster) []Swatch {
	if isEmpty(r) {
		return []Swatch{}
	}

	r = s.downscale(r)

	width, height := r.Width(), r.Height()
	total := width * height
	step := s.opts.QuantisationStep

	index := make(map[uint32]int)
	var buckets []bucket
	sampled := 0

	for i := 0; i < total; i += s.opts.SampleStride {
		px := r.NRGBAAt(i%width, i/width)
		if int(px.A) < s.opts.AlphaThreshold {
			continue
		}
		if s.opts.ExcludeNearWhite && s.isNearWhite(px.R, px.G, px.B) {
			continue
		}

		q := RGB{R: quantise(px.R, step), G: quantise(px.G, step), B: quantise(px.B, step)}
		k := q.key()
		if idx, ok := index[k]; ok {
			buckets[idx].count++
		} else {
			index[k] = len(buckets)
			buckets = append(buckets, bucket{rgb: q, count: 1})
		}
		sampled++
	}

	if sampled == 0 {
		return []Swatch{}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].count > buckets[j].count
	})

	n := min(len(buckets), s.opts.MaxSwatches)
	swatches := make([]Swatch, n)
	for i, b := range buckets[:n] {
		swatches[i] = Swatch{
			Hex:        b.rgb.Hex(),
			Count:      b.count,
			Percentage: float64(b.count) / float64(sampled) * 100,
		}
	}
	return swatches
}

func (s *Sampler) isNearWhite(r, g, b uint8) bool {
	t := s.opts.NearWhiteThreshold
	return int(r) > t && int(g) > t && int(b) > t
}

// downscale shrinks r so its longest side is at most MaxDimension,
// preserving the aspect ratio.
func (s *Sampler) downscale(r Raster) Raster {
	limit := s.opts.MaxDimension
	if limit <= 0 || (r.Width() <= limit && r.Height() <= limit) {
		return r
	}
	return FromImage(imaging.Fit(AsImage(r), limit, limit, imaging.Box))
}
