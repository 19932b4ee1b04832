package agenda

import (
	"time"

	"cloud.google.com/go/civil"
)

// DefaultTimezone is the reference zone used to decide what "today" is.
const DefaultTimezone = "Europe/Paris"

// Clock returns the current instant.
type Clock func() time.Time

// SystemClock reads the wall clock.
var SystemClock Clock = time.Now

// Range is a closed interval of calendar days.
type Range struct {
	Start civil.Date
	End   civil.Date
}

// Today returns the current date in the named zone. When the zone cannot be
// loaded the local system date is used.
func Today(clock Clock, tz string) civil.Date {
	d, _ := TodayIn(clock, tz)
	return d
}

// TodayIn is Today that also reports why the zone lookup failed. The date is
// always usable; a non-nil error means it is the local system date.
func TodayIn(clock Clock, tz string) (civil.Date, error) {
	if clock == nil {
		clock = SystemClock
	}
	now := clock()
	loc, err := LoadLocation(tz)
	if err != nil {
		return civil.DateOf(now.Local()), err
	}
	return civil.DateOf(now.In(loc)), nil
}

// LoadLocation resolves a zone name, treating an empty name as the default
// reference zone.
func LoadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	return time.LoadLocation(tz)
}

// EndOfYear returns December 31 of d's year.
func EndOfYear(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: time.December, Day: 31}
}

// YearRange returns the days from start through December 31 of start's year.
func YearRange(start civil.Date) Range {
	return Range{Start: start, End: EndOfYear(start)}
}

// Len reports the number of days in the range. A start after the end yields
// zero.
func (r Range) Len() int {
	n := r.End.DaysSince(r.Start) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Empty reports whether the range holds no days.
func (r Range) Empty() bool {
	return r.Len() == 0
}

// Dates returns every day of the range in increasing order.
func (r Range) Dates() []civil.Date {
	n := r.Len()
	dates := make([]civil.Date, 0, n)
	r.Each(func(_ int, d civil.Date) {
		dates = append(dates, d)
	})
	return dates
}

// Each calls fn for every day of the range with its zero-based index.
func (r Range) Each(fn func(i int, d civil.Date)) {
	n := r.Len()
	current := r.Start
	for i := 0; i < n; i++ {
		fn(i, current)
		current = current.AddDays(1)
	}
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}
