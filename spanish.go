package agenda

import (
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Indexed Monday=0.
var spanishWeekdays = [7]string{
	"Lunes",
	"Martes",
	"Miércoles",
	"Jueves",
	"Viernes",
	"Sábado",
	"Domingo",
}

// Indexed January=1 via month-1.
var spanishMonths = [12]string{
	"Enero",
	"Febrero",
	"Marzo",
	"Abril",
	"Mayo",
	"Junio",
	"Julio",
	"Agosto",
	"Septiembre",
	"Octubre",
	"Noviembre",
	"Diciembre",
}

// SpanishWeekday returns the Spanish name of a weekday.
func SpanishWeekday(w time.Weekday) string {
	// time.Weekday counts from Sunday.
	return spanishWeekdays[(int(w)+6)%7]
}

// SpanishMonth returns the Spanish name of a month.
func SpanishMonth(m time.Month) string {
	return spanishMonths[(int(m)-1+12)%12]
}

// FormatSpanish renders d as "<Weekday> <Day> <Month> <Year>", for example
// "Jueves 28 Agosto 2025".
func FormatSpanish(d civil.Date) string {
	var b strings.Builder
	b.Grow(32)
	b.WriteString(SpanishWeekday(d.In(time.UTC).Weekday()))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(d.Day))
	b.WriteByte(' ')
	b.WriteString(SpanishMonth(d.Month))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(d.Year))
	return b.String()
}
