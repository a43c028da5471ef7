package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huepick/internal/colour"
	"github.com/jmylchreest/huepick/internal/image"
	"github.com/jmylchreest/huepick/internal/util/imagecache"
)

type sampleFlags struct {
	sampler     samplerFlags
	maxDistance float64
	names       bool
	format      string
	output      string
	preview     bool
	cache       bool
}

// sampleResult is the JSON form of one analysed image.
type sampleResult struct {
	Source   string               `json:"source"`
	Width    int                  `json:"width"`
	Height   int                  `json:"height"`
	Swatches []colour.NamedSwatch `json:"swatches"`
}

func newSampleCmd(a *app) *cobra.Command {
	f := &sampleFlags{}
	cmd := &cobra.Command{
		Use:   "sample <image|directory|url>",
		Short: "Extract the dominant colours of an image",
		Long: `Extract the dominant colours of a product photo.

Pixels are quantised into buckets and the most frequent buckets are reported
with their share of the sampled pixels. Transparent pixels are always
skipped; near-white background pixels can be skipped too.

Supported image formats: JPEG, PNG, GIF, WebP, BMP

Examples:
  # Six dominant colours of a photo
  huepick sample shoe.jpg

  # Named swatches, ignoring the white studio background
  huepick sample --names --exclude-white shoe.jpg

  # Three coarse swatches as a table with terminal previews
  huepick sample -n 3 --step 40 --format table --preview shoe.png

  # Every image in a directory as JSON
  huepick sample --format json ./catalogue/

  # A remote product photo, cached for later runs
  huepick sample --cache https://cdn.example.com/shoes/123.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, a, f, args[0])
		},
	}

	fs := cmd.Flags()
	f.sampler.register(fs)
	fs.Var(newDistanceValue(colour.DefaultMaxDistance, &f.maxDistance), "max-distance", `largest RGB distance for a nearest-name match ("none" for no limit)`)
	fs.BoolVar(&f.names, "names", false, "show palette names next to hex values")
	fs.StringVarP(&f.format, "format", "f", "hex", "output format (hex, table, json)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.preview, "preview", false, "show colour previews when writing to a terminal")
	fs.BoolVar(&f.cache, "cache", false, "cache downloaded images (HUEPICK_CACHE_DIR or the user cache directory)")
	return cmd
}

func runSample(cmd *cobra.Command, a *app, f *sampleFlags, target string) error {
	if err := checkFormat(f.format, "hex", "table", "json"); err != nil {
		return err
	}
	if err := image.ValidateImagePath(target); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	opts := f.sampler.resolve(cmd.Flags(), a.cfg.Sampler)
	sampler, err := colour.NewSampler(opts)
	if err != nil {
		return err
	}
	namer, err := colour.NewNamer(a.palette, colour.NamerConfig{
		MaxDistance: maxDistance(cmd, f.maxDistance, a.cfg.MaxDistance),
	})
	if err != nil {
		return err
	}
	analyser, err := colour.NewAnalyser(sampler, namer)
	if err != nil {
		return err
	}

	paths, err := image.ResolveImagePaths(target)
	if err != nil {
		return err
	}

	loaderOpts := image.SmartLoaderOptions{
		Timeout:           a.cfg.FetchTimeout,
		AllowPrivateHosts: a.cfg.AllowPrivateURLs,
		MaxPixels:         a.cfg.MaxPixels,
	}
	if f.cache || a.cfg.CacheDir != "" {
		cache, err := imagecache.New(a.cfg.CacheDir)
		if err != nil {
			return err
		}
		a.logger.Debug("image cache enabled", "dir", cache.Dir())
		loaderOpts.Cache = cache
	}
	loader := image.NewSmartLoader(loaderOpts)

	results := make([]sampleResult, 0, len(paths))
	for _, path := range paths {
		a.logger.Debug("loading image", "path", path)
		raster, err := loader.Load(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
		swatches := analyser.Analyse(raster)
		a.logger.Debug("sampled image",
			"path", path,
			"width", raster.Width(),
			"height", raster.Height(),
			"swatches", len(swatches))
		results = append(results, sampleResult{
			Source:   path,
			Width:    raster.Width(),
			Height:   raster.Height(),
			Swatches: swatches,
		})
	}

	preview := f.output == "" && previewEnabled(cmd.OutOrStdout(), f.preview)

	var out string
	switch f.format {
	case "json":
		var b strings.Builder
		var v any = results
		if len(results) == 1 {
			v = results[0]
		}
		if err := writeJSON(&b, v); err != nil {
			return err
		}
		out = b.String()
	default:
		var b strings.Builder
		for i, r := range results {
			if len(results) > 1 {
				if i > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "# %s (%dx%d)\n", r.Source, r.Width, r.Height)
			}
			if f.format == "table" {
				b.WriteString(formatSwatchTable(r.Swatches, preview))
			} else {
				b.WriteString(formatSwatchHex(r.Swatches, f.names, preview))
			}
		}
		out = b.String()
	}

	if err := writeOutput(cmd, f.output, out); err != nil {
		return err
	}
	if f.output != "" {
		a.logger.Info("wrote swatches", "path", f.output, "images", len(results))
	}
	return nil
}

// formatSwatchHex writes one swatch per line, most frequent first.
func formatSwatchHex(swatches []colour.NamedSwatch, names, preview bool) string {
	var b strings.Builder
	for _, s := range swatches {
		if preview {
			b.WriteString(colour.FormatSwatch(s.Swatch, 4))
		} else {
			b.WriteString(s.Hex)
		}
		if names {
			b.WriteString("  ")
			b.WriteString(s.Name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatSwatchTable renders swatches with their names, counts and shares.
func formatSwatchTable(swatches []colour.NamedSwatch, preview bool) string {
	headers := []string{"#", "Hex", "Name", "Match", "Count", "Share"}
	if preview {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers...)
	offset := len(headers) - 6
	table.AlignRight(offset, offset+4, offset+5)

	for i, s := range swatches {
		row := []string{
			strconv.Itoa(i + 1),
			s.Hex,
			s.Name,
			s.Match.String(),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f%%", s.Percentage),
		}
		if preview {
			row = append([]string{colour.ColourPreview(s.RGB(), 4)}, row...)
		}
		table.AddRow(row...)
	}
	return table.Render()
}
