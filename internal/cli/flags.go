package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/huepick/internal/colour"
	"github.com/jmylchreest/huepick/internal/config"
)

// distanceValue is a pflag.Value for the namer distance limit. It accepts a
// non-negative number or "none".
type distanceValue struct {
	d *float64
}

var _ pflag.Value = (*distanceValue)(nil)

func newDistanceValue(def float64, p *float64) *distanceValue {
	*p = def
	return &distanceValue{d: p}
}

func (v *distanceValue) String() string {
	if v.d == nil {
		return ""
	}
	return config.FormatMaxDistance(*v.d)
}

func (v *distanceValue) Set(s string) error {
	d, err := config.ParseMaxDistance(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *distanceValue) Type() string {
	return "distance"
}

// samplerFlags binds the sampler options to a command. Only flags the user
// sets override the configured values.
type samplerFlags struct {
	opts colour.Options
}

func (f *samplerFlags) register(fs *pflag.FlagSet) {
	def := colour.DefaultOptions()
	fs.IntVarP(&f.opts.MaxSwatches, "max", "n", def.MaxSwatches, "maximum number of swatches")
	fs.IntVar(&f.opts.QuantisationStep, "step", def.QuantisationStep, "quantisation step per channel (1-255)")
	fs.IntVar(&f.opts.SampleStride, "stride", def.SampleStride, "inspect every Nth pixel")
	fs.IntVar(&f.opts.AlphaThreshold, "alpha", def.AlphaThreshold, "skip pixels with alpha below this (0-255)")
	fs.BoolVar(&f.opts.ExcludeNearWhite, "exclude-white", def.ExcludeNearWhite, "skip near-white background pixels")
	fs.IntVar(&f.opts.NearWhiteThreshold, "white-threshold", def.NearWhiteThreshold, "channel value above which a pixel is near-white")
	fs.IntVar(&f.opts.MaxDimension, "max-dimension", def.MaxDimension, "downscale so the longest side is at most this (0 disables)")
}

// resolve overlays the flags the user changed onto base.
func (f *samplerFlags) resolve(fs *pflag.FlagSet, base colour.Options) colour.Options {
	out := base
	overlay := map[string]func(){
		"max":             func() { out.MaxSwatches = f.opts.MaxSwatches },
		"step":            func() { out.QuantisationStep = f.opts.QuantisationStep },
		"stride":          func() { out.SampleStride = f.opts.SampleStride },
		"alpha":           func() { out.AlphaThreshold = f.opts.AlphaThreshold },
		"exclude-white":   func() { out.ExcludeNearWhite = f.opts.ExcludeNearWhite },
		"white-threshold": func() { out.NearWhiteThreshold = f.opts.NearWhiteThreshold },
		"max-dimension":   func() { out.MaxDimension = f.opts.MaxDimension },
	}
	for name, apply := range overlay {
		if fs.Changed(name) {
			apply()
		}
	}
	return out
}

// maxDistance returns the distance flag when set, otherwise the configured one.
func maxDistance(cmd *cobra.Command, flag, configured float64) float64 {
	if cmd.Flags().Changed("max-distance") {
		return flag
	}
	return configured
}

// previewEnabled reports whether ANSI previews should be written to w: they
// must be requested and w must be a terminal.
func previewEnabled(w io.Writer, requested bool) bool {
	if !requested {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (valid: %v)", format, allowed)
}
