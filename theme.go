package agenda

import (
	"sort"
	"strings"
)

// RGB is an 8-bit colour triple.
type RGB [3]int

// Styles groups the colours a page is drawn with.
type Styles struct {
	Grid       RGB
	Header     RGB
	PageNumber RGB
}

// Theme provides named styles for agenda pages.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

// gray returns the RGB triple for a 0..1 gray level.
func gray(level float64) RGB {
	v := int(level*255 + 0.5)
	return RGB{v, v, v}
}

var builtinThemes = map[string]Theme{
	"graph-paper": theme{name: "graph-paper", styles: Styles{
		Grid:       gray(0.85),
		Header:     RGB{0, 0, 0},
		PageNumber: RGB{0, 0, 0},
	}},
	"faint": theme{name: "faint", styles: Styles{
		Grid:       gray(0.93),
		Header:     RGB{40, 40, 40},
		PageNumber: RGB{120, 120, 120},
	}},
	"engineering": theme{name: "engineering", styles: Styles{
		Grid:       RGB{186, 224, 196},
		Header:     RGB{20, 60, 30},
		PageNumber: RGB{20, 60, 30},
	}},
	"blueprint": theme{name: "blueprint", styles: Styles{
		Grid:       RGB{190, 210, 235},
		Header:     RGB{16, 42, 90},
		PageNumber: RGB{16, 42, 90},
	}},
	"sepia": theme{name: "sepia", styles: Styles{
		Grid:       RGB{226, 212, 186},
		Header:     RGB{94, 62, 30},
		PageNumber: RGB{94, 62, 30},
	}},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme(), true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the light gray graph-paper theme.
func DefaultTheme() Theme {
	return builtinThemes["graph-paper"]
}
