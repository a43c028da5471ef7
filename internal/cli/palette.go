package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huepick/internal/colour"
)

func newPaletteCmd(a *app) *cobra.Command {
	var (
		format  string
		preview bool
		search  string
	)
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List the reference palette",
		Long: `List the named colours used for resolution, in lookup order.

Vietnamese shop names come first, followed by the CSS/SVG colour names.
When two entries share a hex value the earlier one is the name reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, "table", "json"); err != nil {
				return err
			}

			entries := filterEntries(a.palette, search)
			w := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(w, entries)
			}

			show := previewEnabled(w, preview)
			headers := []string{"Name", "Hex", "RGB"}
			if show {
				headers = append(headers, "")
			}
			table := NewTable(headers...)
			for _, e := range entries {
				row := []string{e.Name, e.Hex, e.RGB().String()}
				if show {
					row = append(row, colour.ColourPreviewWithText(e.RGB(), e.Name, 12))
				}
				table.AddRow(row...)
			}
			_, err := fmt.Fprint(w, table.Render())
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour previews when writing to a terminal")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only list entries whose name contains this text")
	return cmd
}

// filterEntries returns the palette entries whose folded name contains
// search. A search starting with '#' is a hex code and returns the entry that
// owns that colour. An empty search returns every entry.
func filterEntries(p *colour.Palette, search string) []colour.Entry {
	search = colour.FoldName(search)
	if strings.HasPrefix(search, "#") {
		if name, ok := p.NameForHex(search); ok {
			e, _ := p.Lookup(name)
			return []colour.Entry{e}
		}
		return []colour.Entry{}
	}

	entries := make([]colour.Entry, 0, p.Len())
	p.All()(func(_ int, e colour.Entry) bool {
		if search == "" || strings.Contains(colour.FoldName(e.Name), search) {
			entries = append(entries, e)
		}
		return true
	})
	return entries
}
