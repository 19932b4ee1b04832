package pdf

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"pkt.systems/agenda"
)

// ErrInvalidConfig reports a configuration that would produce a malformed
// document.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds agenda rendering settings.
type Config struct {
	// Start is the first day rendered; the zero value means today in
	// Timezone.
	Start    civil.Date
	Timezone string

	PageSize           string
	GridSpacing        float64
	GridLineWidth      float64
	HeaderFontSize     float64
	TopMargin          float64
	PageNumbers        bool
	PageNumberFontSize float64
	PageNumberMargin   float64

	// GridLayer puts the grid on its own optional content layer so it can
	// be hidden in the viewer.
	GridLayer     bool
	OpenLayerPane bool

	Title          string
	Theme          agenda.Theme
	FontCandidates []FontCandidate
	FallbackFont   string
}

// headerInset is the distance between the bottom of the header band and the
// header baseline.
const headerInset = 30

const defaultPageSize = "A4"

// DefaultConfig returns a baseline configuration.
func DefaultConfig() Config {
	return Config{
		Timezone:           agenda.DefaultTimezone,
		PageSize:           defaultPageSize,
		GridSpacing:        20,
		GridLineWidth:      0.2,
		HeaderFontSize:     40,
		TopMargin:          100,
		PageNumbers:        true,
		PageNumberFontSize: 10,
		PageNumberMargin:   20,
		Theme:              agenda.DefaultTheme(),
		FontCandidates:     DefaultFontCandidates(),
		FallbackFont:       FallbackFont,
	}
}

// Page sizes in points, keyed the way fpdf resolves them.
var pageSizes = map[string][2]float64{
	"a3":     {841.89, 1190.55},
	"a4":     {595.28, 841.89},
	"a5":     {420.94, 595.28},
	"letter": {612, 792},
	"legal":  {612, 1008},
}

// Geometry is the fixed page layout shared by every page of a document. The
// origin is the bottom-left corner.
type Geometry struct {
	Width          float64
	Height         float64
	Spacing        float64
	LineWidth      float64
	TopMargin      float64
	HeaderOffset   float64
	HeaderFontSize float64
	FooterMargin   float64
	PageNumberSize float64
}

// Geometry derives the page layout from the configuration.
func (c Config) Geometry() (Geometry, error) {
	size, ok := pageSizes[strings.ToLower(strings.TrimSpace(c.PageSize))]
	if !ok {
		return Geometry{}, fmt.Errorf("%w: unsupported page size %q", ErrInvalidConfig, c.PageSize)
	}
	return Geometry{
		Width:          size[0],
		Height:         size[1],
		Spacing:        c.GridSpacing,
		LineWidth:      c.GridLineWidth,
		TopMargin:      c.TopMargin,
		HeaderOffset:   c.TopMargin - headerInset,
		HeaderFontSize: c.HeaderFontSize,
		FooterMargin:   c.PageNumberMargin,
		PageNumberSize: c.PageNumberFontSize,
	}, nil
}

// Validate reports the first setting that cannot produce a well-formed page.
func (c Config) Validate() error {
	g, err := c.Geometry()
	if err != nil {
		return err
	}
	switch {
	case c.GridSpacing <= 0:
		return fmt.Errorf("%w: grid spacing must be positive, got %v", ErrInvalidConfig, c.GridSpacing)
	case c.GridLineWidth <= 0:
		return fmt.Errorf("%w: grid line width must be positive, got %v", ErrInvalidConfig, c.GridLineWidth)
	case c.HeaderFontSize <= 0:
		return fmt.Errorf("%w: header font size must be positive, got %v", ErrInvalidConfig, c.HeaderFontSize)
	case c.TopMargin <= headerInset:
		return fmt.Errorf("%w: top margin must exceed %d, got %v", ErrInvalidConfig, headerInset, c.TopMargin)
	case c.TopMargin >= g.Height:
		return fmt.Errorf("%w: top margin %v exceeds page height %v", ErrInvalidConfig, c.TopMargin, g.Height)
	case c.PageNumbers && c.PageNumberFontSize <= 0:
		return fmt.Errorf("%w: page number font size must be positive, got %v", ErrInvalidConfig, c.PageNumberFontSize)
	case c.PageNumbers && (c.PageNumberMargin <= 0 || c.PageNumberMargin >= g.Height):
		return fmt.Errorf("%w: page number margin out of range, got %v", ErrInvalidConfig, c.PageNumberMargin)
	case c.Theme == nil:
		return fmt.Errorf("%w: theme is nil", ErrInvalidConfig)
	case strings.TrimSpace(c.FallbackFont) == "":
		return fmt.Errorf("%w: fallback font is empty", ErrInvalidConfig)
	case !isCoreFont(c.FallbackFont):
		return fmt.Errorf("%w: fallback font %q is not a core PDF font", ErrInvalidConfig, c.FallbackFont)
	}
	if !c.Start.IsZero() && !c.Start.IsValid() {
		return fmt.Errorf("%w: start date %s", ErrInvalidConfig, c.Start)
	}
	return nil
}

func isCoreFont(name string) bool {
	switch name {
	case "Courier", "Helvetica", "Times":
		return true
	default:
		return false
	}
}
