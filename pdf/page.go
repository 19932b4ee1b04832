package pdf

import (
	"strconv"

	"pkt.systems/agenda"
)

// Line is a segment in page coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// GridLines returns the grid for a page: vertical lines every Spacing points
// across the full width and horizontal lines from the bottom edge up to the
// header band. The result depends only on g.
func GridLines(g Geometry) []Line {
	if g.Spacing <= 0 {
		return nil
	}
	stopY := g.Height - g.TopMargin
	lines := make([]Line, 0, int(g.Width/g.Spacing)+int(stopY/g.Spacing)+2)
	// Multiply instead of accumulating so coordinates never drift.
	for i := 0; ; i++ {
		x := float64(i) * g.Spacing
		if x > g.Width {
			break
		}
		lines = append(lines, Line{X1: x, Y1: 0, X2: x, Y2: g.Height})
	}
	for i := 0; ; i++ {
		y := float64(i) * g.Spacing
		if y > stopY {
			break
		}
		lines = append(lines, Line{X1: 0, Y1: y, X2: g.Width, Y2: y})
	}
	return lines
}

// DrawGrid strokes the grid in a hairline of the given colour.
func DrawGrid(c Canvas, g Geometry, color agenda.RGB) {
	c.SetLineWidth(g.LineWidth)
	c.SetStrokeColor(color)
	for _, l := range GridLines(g) {
		c.Line(l.X1, l.Y1, l.X2, l.Y2)
	}
}

// CenterX returns the left edge that centers a run of width textW on a page
// of width pageW.
func CenterX(pageW, textW float64) float64 {
	return (pageW - textW) / 2
}

// DrawHeader draws text centered horizontally, HeaderOffset below the top of
// the page, and returns its left edge.
func DrawHeader(c Canvas, g Geometry, family, text string) float64 {
	c.SetFont(family, g.HeaderFontSize)
	x := CenterX(g.Width, c.StringWidth(text))
	c.Text(x, g.Height-g.HeaderOffset, text)
	return x
}

// DrawPageNumber draws the 1-based page ordinal centered at the footer
// margin.
func DrawPageNumber(c Canvas, g Geometry, family string, n int) {
	label := strconv.Itoa(n)
	c.SetFont(family, g.PageNumberSize)
	c.Text(CenterX(g.Width, c.StringWidth(label)), g.FooterMargin, label)
}

// GridLayer names the optional content group holding the grid.
const GridLayer = "grid"

type pageStyle struct {
	font        Font
	styles      agenda.Styles
	pageNumbers bool
	gridLayer   bool
}

// drawPage renders one agenda page onto the current canvas page: grid first,
// then header, then the optional page number.
func drawPage(c Canvas, g Geometry, st pageStyle, header string, n int) {
	if st.gridLayer {
		c.BeginLayer(GridLayer)
	}
	DrawGrid(c, g, st.styles.Grid)
	if st.gridLayer {
		c.EndLayer()
	}
	c.SetTextColor(st.styles.Header)
	DrawHeader(c, g, st.font.Family, header)
	if st.pageNumbers {
		c.SetTextColor(st.styles.PageNumber)
		DrawPageNumber(c, g, st.font.Family, n)
	}
}
