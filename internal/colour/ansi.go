package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns a solid ANSI truecolour block for c.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return background(c) + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a colour block with centred text whose
// colour contrasts with the block.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bg := RGBToColor(c)
	white, black := RGB{R: 255, G: 255, B: 255}, RGB{}
	fg := white
	if ContrastRatio(bg, RGBToColor(black)) > ContrastRatio(bg, RGBToColor(white)) {
		fg = black
	}

	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	pad := width - len(runes)
	left := pad / 2
	label := strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", pad-left)

	return background(c) + foreground(fg) + label + ansiReset
}

// FormatSwatch formats a swatch as a preview block followed by its hex and
// share of the sampled pixels.
func FormatSwatch(s Swatch, width int) string {
	return fmt.Sprintf("%s %s %6.2f%%", ColourPreview(s.RGB(), width), s.Hex, s.Percentage)
}

func background(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

func foreground(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}
