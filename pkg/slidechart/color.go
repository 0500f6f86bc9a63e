package slidechart

import (
	"regexp"
	"strings"
)

// DefaultColor is substituted when a palette has no usable colors.
const DefaultColor = "#2563EB"

// DefaultPalette is the chart palette used when the host theme supplies none.
var DefaultPalette = Palette{"#2563EB", "#F97316", "#34D399", "#FBBF24", "#C084FC", "#F472B6"}

var (
	hex6Pattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	hex3Pattern = regexp.MustCompile(`^#[0-9a-fA-F]{3}$`)
)

// NormalizeHex returns value in #RRGGBB uppercase form. The leading '#' is
// optional and 3-digit forms are expanded. Anything else yields fallback.
func NormalizeHex(value, fallback string) string {
	if value == "" {
		return fallback
	}
	prefixed := value
	if !strings.HasPrefix(prefixed, "#") {
		prefixed = "#" + prefixed
	}
	if hex6Pattern.MatchString(prefixed) {
		return strings.ToUpper(prefixed)
	}
	if hex3Pattern.MatchString(prefixed) {
		var b strings.Builder
		b.WriteByte('#')
		for _, c := range prefixed[1:] {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		return strings.ToUpper(b.String())
	}
	return fallback
}

// IsHex reports whether value is a 3- or 6-digit hex color.
func IsHex(value string) bool {
	return NormalizeHex(value, "") != ""
}

// Palette is an ordered list of fallback colors.
type Palette []string

// Resolved returns the palette with every entry canonicalized and invalid
// entries dropped. An empty result is replaced by DefaultColor.
func (p Palette) Resolved() Palette {
	out := make(Palette, 0, len(p))
	for _, c := range p {
		if n := NormalizeHex(c, ""); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return Palette{DefaultColor}
	}
	return out
}

// At returns the color at index i, cycling through the palette.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return DefaultColor
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}
