package main

import (
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"github.com/muesli/reflow/truncate"
	"pkt.systems/agenda"
)

const defaultListWidth = 80

// printPlan writes one line per page, "<page>  <date>  <header>", cut to
// width.
func printPlan(w io.Writer, r agenda.Range, width int) {
	if width <= 0 {
		width = defaultListWidth
	}
	digits := len(fmt.Sprint(r.Len()))
	r.Each(func(i int, day civil.Date) {
		line := fmt.Sprintf("%*d  %s  %s", digits, i+1, day, agenda.FormatSpanish(day))
		fmt.Fprintln(w, truncate.StringWithTail(line, uint(width), "…"))
	})
}
