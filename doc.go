// Package agenda holds the calendar side of the daily agenda generator.
//
// It computes the range of days an agenda covers, formats each day as a
// Spanish header and names the colour themes the PDF renderer draws with.
// Rendering lives in the pdf subpackage.
//
// Example:
//
//	today := agenda.Today(agenda.SystemClock, agenda.DefaultTimezone)
//	for _, day := range agenda.YearRange(today).Dates() {
//		fmt.Println(agenda.FormatSpanish(day))
//	}
//
// Dates are civil.Date values; advancing a day is pure calendar arithmetic
// and never touches a time zone.
package agenda
