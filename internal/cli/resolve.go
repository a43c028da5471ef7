package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huepick/internal/colour"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		distance float64
		format   string
		preview  bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <colour>...",
		Short: "Resolve colour names, hex codes or RGB triples to palette names",
		Long: `Resolve each argument to a palette name.

An argument may be a palette name (case-insensitive), a hex code with or
without '#' in 3 or 6 digit form, or an RGB triple such as "rgb(255,0,0)",
"255,0,0" or "255 0 0". Colours without an exact palette entry take the
nearest one within --max-distance. Anything else is echoed unchanged.

Examples:
  huepick resolve '#000' 'rgb(255, 215, 0)' 'Xanh Navy'
  huepick resolve --max-distance none --format table 123456
  huepick resolve --format json FE0101`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "table", "json"); err != nil {
				return err
			}
			namer, err := colour.NewNamer(a.palette, colour.NamerConfig{
				MaxDistance: maxDistance(cmd, distance, a.cfg.MaxDistance),
			})
			if err != nil {
				return err
			}

			results := make([]colour.Resolution, len(args))
			for i, arg := range args {
				results[i] = namer.Resolve(arg)
				a.logger.Debug("resolved colour",
					"input", arg,
					"value", results[i].Value,
					"match", results[i].Match)
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(w, results)
			case "table":
				_, err := fmt.Fprint(w, formatResolutionTable(results, previewEnabled(w, preview)))
				return err
			default:
				var b strings.Builder
				for _, r := range results {
					b.WriteString(r.Value)
					b.WriteString("\n")
				}
				_, err := fmt.Fprint(w, b.String())
				return err
			}
		},
	}

	fs := cmd.Flags()
	fs.Var(newDistanceValue(colour.DefaultMaxDistance, &distance), "max-distance", `largest RGB distance for a nearest-name match ("none" for no limit)`)
	fs.StringVarP(&format, "format", "f", "text", "output format (text, table, json)")
	fs.BoolVar(&preview, "preview", false, "show colour previews when writing to a terminal")
	return cmd
}

func formatResolutionTable(results []colour.Resolution, preview bool) string {
	headers := []string{"Input", "Name", "Hex", "Match", "Distance"}
	if preview {
		headers = append(headers, "")
	}
	table := NewTable(headers...)
	table.AlignRight(4)

	for _, r := range results {
		dist := ""
		if r.Hex != "" {
			dist = strconv.FormatFloat(r.Distance, 'f', 2, 64)
		}
		row := []string{r.Input, r.Value, r.Hex, r.Match.String(), dist}
		if preview {
			cell := ""
			if rgb, err := colour.ParseHex(r.Hex); err == nil {
				cell = colour.ColourPreview(rgb, 4)
			}
			row = append(row, cell)
		}
		table.AddRow(row...)
	}
	return table.Render()
}
