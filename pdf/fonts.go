package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"seehuhn.de/go/sfnt"
)

// FallbackFont is the core PDF font used when no candidate registers. Every
// PDF reader ships it.
const FallbackFont = "Helvetica"

// FontCandidate names a TrueType font and where to find it on disk.
type FontCandidate struct {
	Name string
	Path string
}

// Font is the resolved font every string of a document is drawn with.
type Font struct {
	Family string
	Path   string
	Core   bool
}

// DefaultFontCandidates returns the Unicode-capable fonts tried in order.
func DefaultFontCandidates() []FontCandidate {
	return []FontCandidate{
		{Name: "DejaVuSans", Path: "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"},
		{Name: "FreeSans", Path: "/usr/share/fonts/truetype/freefont/FreeSans.ttf"},
		{Name: "Arial", Path: "/usr/share/fonts/truetype/msttcorefonts/Arial.ttf"},
		{Name: "Arial", Path: "Arial.ttf"},
	}
}

// FontRegistrar is the part of a document that accepts embedded fonts.
// *fpdf.Fpdf satisfies it.
type FontRegistrar interface {
	AddUTF8FontFromBytes(familyStr, styleStr string, utf8Bytes []byte)
	Error() error
	ClearError()
}

var errNotTrueType = errors.New("font has no TrueType outlines")

// ResolveFont registers the first candidate that loads and returns it. When
// every candidate fails the fallback core font is returned; failures are
// logged and never returned.
func ResolveFont(reg FontRegistrar, candidates []FontCandidate, fallback string, log *zap.Logger) Font {
	if log == nil {
		log = zap.NewNop()
	}
	if fallback == "" {
		fallback = FallbackFont
	}
	for _, c := range candidates {
		if c.Name == "" || c.Path == "" {
			continue
		}
		if err := registerFont(reg, c); err != nil {
			log.Debug("font candidate skipped",
				zap.String("font", c.Name),
				zap.String("path", c.Path),
				zap.Error(err))
			continue
		}
		log.Debug("font registered", zap.String("font", c.Name), zap.String("path", c.Path))
		return Font{Family: c.Name, Path: c.Path}
	}
	log.Info("no candidate font available, using core font", zap.String("font", fallback))
	return Font{Family: fallback, Core: true}
}

// validateFont rejects data fpdf cannot embed.
var validateFont = validateTrueType

func validateTrueType(data []byte) error {
	parsed, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	// fpdf only embeds glyf outlines.
	if !parsed.IsGlyf() {
		return errNotTrueType
	}
	return nil
}

func registerFont(reg FontRegistrar, c FontCandidate) (err error) {
	registering := false
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if !registering {
			err = fmt.Errorf("parse font: %v", r)
			return
		}
		reg.ClearError()
		err = fmt.Errorf("register font: %v", r)
	}()

	info, err := os.Stat(c.Path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	if err := validateFont(data); err != nil {
		return err
	}

	registering = true
	reg.AddUTF8FontFromBytes(c.Name, "", data)
	if regErr := reg.Error(); regErr != nil {
		reg.ClearError()
		return fmt.Errorf("register font: %w", regErr)
	}
	return nil
}
