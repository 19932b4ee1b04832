// Package pdf renders daily agendas to PDF.
//
// Each day from the start date through December 31 gets one A4 page: a light
// grid below a header band, the Spanish date centered in the band, and an
// optional page number centered at the foot of the page.
//
// Example:
//
//	cfg := pdf.DefaultConfig()
//	cfg.GridSpacing = 20
//	cfg.HeaderFontSize = 40
//
//	res, err := pdf.RenderFile("Agenda_2025.pdf", pdf.RenderRequest{
//		Config:  cfg,
//		Options: []pdf.Option{pdf.WithLogger(logger)},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Pages, "pages")
//
// Fonts are tried from a list of TrueType candidates; when none loads the
// core Helvetica font is used instead.
package pdf
