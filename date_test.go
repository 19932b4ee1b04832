package agenda

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestYearRangeLength(t *testing.T) {
	cases := []struct {
		name  string
		start civil.Date
		want  int
	}{
		{"dec31", civil.Date{Year: 2025, Month: time.December, Day: 31}, 1},
		{"dec30", civil.Date{Year: 2025, Month: time.December, Day: 30}, 2},
		{"jan1-common", civil.Date{Year: 2025, Month: time.January, Day: 1}, 365},
		{"jan1-leap", civil.Date{Year: 2024, Month: time.January, Day: 1}, 366},
		{"aug28", civil.Date{Year: 2025, Month: time.August, Day: 28}, 126},
		{"feb29", civil.Date{Year: 2024, Month: time.February, Day: 29}, 307},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := YearRange(tc.start)
			if got := r.Len(); got != tc.want {
				t.Fatalf("YearRange(%s).Len() = %d, want %d", tc.start, got, tc.want)
			}
			if got := len(r.Dates()); got != tc.want {
				t.Fatalf("len(Dates()) = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRangeDatesContiguous(t *testing.T) {
	r := YearRange(civil.Date{Year: 2024, Month: time.February, Day: 27})
	dates := r.Dates()
	if dates[0] != r.Start {
		t.Fatalf("first date %s, want %s", dates[0], r.Start)
	}
	if last := dates[len(dates)-1]; last != r.End {
		t.Fatalf("last date %s, want %s", last, r.End)
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].DaysSince(dates[i-1]) != 1 {
			t.Fatalf("gap between %s and %s", dates[i-1], dates[i])
		}
	}
	if dates[2] != (civil.Date{Year: 2024, Month: time.February, Day: 29}) {
		t.Fatalf("expected leap day at index 2, got %s", dates[2])
	}
}

func TestRangeStartAfterEndIsEmpty(t *testing.T) {
	r := Range{
		Start: civil.Date{Year: 2025, Month: time.December, Day: 31},
		End:   civil.Date{Year: 2025, Month: time.December, Day: 30},
	}
	if !r.Empty() || r.Len() != 0 {
		t.Fatalf("expected empty range, got len %d", r.Len())
	}
	called := false
	r.Each(func(int, civil.Date) { called = true })
	if called {
		t.Fatalf("Each visited a day of an empty range")
	}
	if got := r.Dates(); len(got) != 0 {
		t.Fatalf("expected no dates, got %v", got)
	}
}

func TestRangeEachIndexes(t *testing.T) {
	r := YearRange(civil.Date{Year: 2025, Month: time.December, Day: 29})
	var idx []int
	r.Each(func(i int, _ civil.Date) { idx = append(idx, i) })
	if len(idx) != 3 || idx[0] != 0 || idx[1] != 1 || idx[2] != 2 {
		t.Fatalf("unexpected indexes %v", idx)
	}
}

func TestTodayUsesReferenceZone(t *testing.T) {
	if _, err := LoadLocation(DefaultTimezone); err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	// 23:30 UTC on Dec 31 is already Jan 1 in Paris.
	clock := func() time.Time {
		return time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)
	}
	got := Today(clock, DefaultTimezone)
	want := civil.Date{Year: 2025, Month: time.January, Day: 1}
	if got != want {
		t.Fatalf("Today = %s, want %s", got, want)
	}
	if n := YearRange(got).Len(); n != 365 {
		t.Fatalf("expected 365 days from %s, got %d", got, n)
	}
}

func TestTodayFallsBackToLocal(t *testing.T) {
	instant := time.Date(2025, time.August, 28, 12, 0, 0, 0, time.UTC)
	got := Today(func() time.Time { return instant }, "Nowhere/Atlantis")
	want := civil.DateOf(instant.Local())
	if got != want {
		t.Fatalf("Today fallback = %s, want %s", got, want)
	}
}

func TestTodayInReportsZoneFailure(t *testing.T) {
	instant := time.Date(2025, time.August, 28, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return instant }
	got, err := TodayIn(clock, "Nowhere/Atlantis")
	if err == nil {
		t.Fatalf("expected zone lookup error")
	}
	if want := civil.DateOf(instant.Local()); got != want {
		t.Fatalf("TodayIn fallback = %s, want %s", got, want)
	}
	if _, err := LoadLocation(DefaultTimezone); err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	if _, err := TodayIn(clock, ""); err != nil {
		t.Fatalf("default zone: %v", err)
	}
}

func TestEndOfYear(t *testing.T) {
	got := EndOfYear(civil.Date{Year: 2031, Month: time.March, Day: 5})
	if got != (civil.Date{Year: 2031, Month: time.December, Day: 31}) {
		t.Fatalf("EndOfYear = %s", got)
	}
}
