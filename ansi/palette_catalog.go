package ansi

import (
	"sort"
	"strings"
)

// PaletteDefault mirrors the package defaults.
var PaletteDefault = Palette{
	Fatal:     BrightRed,
	Error:     Red,
	Warn:      BrightYellow,
	Info:      BrightGreen,
	Debug:     Green,
	Trace:     Blue,
	Test:      Magenta,
	Category:  Cyan,
	Timestamp: Faint,
	Location:  Faint,
	Message:   Bold,
}

// PaletteGruvbox uses the gruvbox dark 256-colour approximations.
var PaletteGruvbox = Palette{
	Fatal:     "\x1b[1;38;5;167m",
	Error:     "\x1b[38;5;167m",
	Warn:      "\x1b[38;5;214m",
	Info:      "\x1b[38;5;142m",
	Debug:     "\x1b[38;5;108m",
	Trace:     "\x1b[38;5;109m",
	Test:      "\x1b[38;5;175m",
	Category:  "\x1b[38;5;208m",
	Timestamp: "\x1b[38;5;245m",
	Location:  "\x1b[38;5;243m",
	Message:   "\x1b[38;5;223m",
}

// PaletteNord uses the nord frost and aurora colours.
var PaletteNord = Palette{
	Fatal:     "\x1b[1;38;5;167m",
	Error:     "\x1b[38;5;167m",
	Warn:      "\x1b[38;5;222m",
	Info:      "\x1b[38;5;150m",
	Debug:     "\x1b[38;5;110m",
	Trace:     "\x1b[38;5;67m",
	Test:      "\x1b[38;5;139m",
	Category:  "\x1b[38;5;116m",
	Timestamp: "\x1b[38;5;60m",
	Location:  "\x1b[38;5;60m",
	Message:   "\x1b[38;5;255m",
}

// PaletteDracula uses the dracula accent colours.
var PaletteDracula = Palette{
	Fatal:     "\x1b[1;38;5;203m",
	Error:     "\x1b[38;5;203m",
	Warn:      "\x1b[38;5;228m",
	Info:      "\x1b[38;5;84m",
	Debug:     "\x1b[38;5;117m",
	Trace:     "\x1b[38;5;61m",
	Test:      "\x1b[38;5;212m",
	Category:  "\x1b[38;5;141m",
	Timestamp: "\x1b[38;5;61m",
	Location:  "\x1b[38;5;103m",
	Message:   "\x1b[38;5;231m",
}

// PaletteSolarizedDark uses the solarized accent colours.
var PaletteSolarizedDark = Palette{
	Fatal:     "\x1b[1;38;5;160m",
	Error:     "\x1b[38;5;160m",
	Warn:      "\x1b[38;5;136m",
	Info:      "\x1b[38;5;64m",
	Debug:     "\x1b[38;5;37m",
	Trace:     "\x1b[38;5;33m",
	Test:      "\x1b[38;5;125m",
	Category:  "\x1b[38;5;61m",
	Timestamp: "\x1b[38;5;240m",
	Location:  "\x1b[38;5;240m",
	Message:   "\x1b[38;5;254m",
}

// PaletteSynthwave84 is loud on purpose.
var PaletteSynthwave84 = Palette{
	Fatal:     "\x1b[1;38;5;197m",
	Error:     "\x1b[38;5;197m",
	Warn:      "\x1b[38;5;220m",
	Info:      "\x1b[38;5;51m",
	Debug:     "\x1b[38;5;213m",
	Trace:     "\x1b[38;5;99m",
	Test:      "\x1b[38;5;201m",
	Category:  "\x1b[38;5;207m",
	Timestamp: "\x1b[38;5;98m",
	Location:  "\x1b[38;5;98m",
	Message:   "\x1b[1;38;5;231m",
}

// PaletteMonochrome keeps emphasis but drops colour, for amber and green
// serial terminals.
var PaletteMonochrome = Palette{
	Fatal:     Bold,
	Error:     Bold,
	Warn:      Bold,
	Info:      "\x1b[22m",
	Debug:     "\x1b[22m",
	Trace:     "\x1b[2m",
	Test:      "\x1b[4m",
	Category:  "\x1b[4m",
	Timestamp: "\x1b[2m",
	Location:  "\x1b[2m",
	Message:   "\x1b[22m",
}

var namedPalettes = map[string]*Palette{
	"default":        &PaletteDefault,
	"gruvbox":        &PaletteGruvbox,
	"nord":           &PaletteNord,
	"dracula":        &PaletteDracula,
	"solarized-dark": &PaletteSolarizedDark,
	"synthwave-84":   &PaletteSynthwave84,
	"monochrome":     &PaletteMonochrome,
}

var paletteAliases = map[string]string{
	"doom-gruvbox":  "gruvbox",
	"doomgruvbox":   "gruvbox",
	"doom-dracula":  "dracula",
	"doomdracula":   "dracula",
	"doom-nord":     "nord",
	"doomnord":      "nord",
	"solarizeddark": "solarized-dark",
	"synthwave84":   "synthwave-84",
	"mono":          "monochrome",
}

// PaletteByName resolves a built-in palette by its canonical name.
// Names are case-insensitive and support compatibility aliases; unknown names
// resolve to PaletteDefault.
func PaletteByName(name string) *Palette {
	normalized := normalizePaletteName(name)
	if normalized == "" {
		return &PaletteDefault
	}
	if canonical, ok := paletteAliases[normalized]; ok {
		normalized = canonical
	}
	if palette, ok := namedPalettes[normalized]; ok && palette != nil {
		return palette
	}
	return &PaletteDefault
}

// AvailablePaletteNames returns canonical built-in palette names in sorted order.
func AvailablePaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for name := range namedPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizePaletteName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if strings.HasPrefix(s, "palette-") {
		s = strings.TrimPrefix(s, "palette-")
	} else if strings.HasPrefix(s, "palette") {
		s = strings.TrimPrefix(s, "palette")
		s = strings.TrimLeft(s, "-")
	}
	return s
}
