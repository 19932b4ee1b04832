package pdf

import (
	"github.com/go-pdf/fpdf"
	"pkt.systems/agenda"
)

// Canvas is a page drawing surface with its origin at the bottom-left
// corner. Each AddPage commits the previous page.
type Canvas interface {
	AddPage()
	SetLineWidth(width float64)
	SetStrokeColor(c agenda.RGB)
	SetTextColor(c agenda.RGB)
	Line(x1, y1, x2, y2 float64)
	SetFont(family string, size float64)
	StringWidth(s string) float64
	Text(x, y float64, s string)
	// BeginLayer starts drawing into a named optional content group that
	// viewers can show or hide; EndLayer returns to the page itself.
	BeginLayer(name string)
	EndLayer()
}

// fpdfCanvas adapts fpdf's top-left origin to Canvas.
type fpdfCanvas struct {
	pdf       *fpdf.Fpdf
	height    float64
	translate func(string) string
	layers    map[string]int
}

func newFPDFCanvas(doc *fpdf.Fpdf, font Font) Canvas {
	_, h := doc.GetPageSize()
	c := &fpdfCanvas{
		pdf:       doc,
		height:    h,
		translate: func(s string) string { return s },
		layers:    make(map[string]int),
	}
	if font.Core {
		// Core fonts are cp1252; accented weekdays need translating.
		c.translate = doc.UnicodeTranslatorFromDescriptor("")
	}
	return c
}

func (c *fpdfCanvas) AddPage() { c.pdf.AddPage() }

func (c *fpdfCanvas) SetLineWidth(width float64) { c.pdf.SetLineWidth(width) }

func (c *fpdfCanvas) SetStrokeColor(rgb agenda.RGB) {
	c.pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
}

func (c *fpdfCanvas) SetTextColor(rgb agenda.RGB) {
	c.pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.height-y1, x2, c.height-y2)
}

func (c *fpdfCanvas) SetFont(family string, size float64) {
	c.pdf.SetFont(family, "", size)
}

func (c *fpdfCanvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.translate(s))
}

func (c *fpdfCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, c.height-y, c.translate(s))
}

func (c *fpdfCanvas) BeginLayer(name string) {
	id, ok := c.layers[name]
	if !ok {
		id = c.pdf.AddLayer(name, true)
		c.layers[name] = id
	}
	c.pdf.BeginLayer(id)
}

func (c *fpdfCanvas) EndLayer() { c.pdf.EndLayer() }
