package agenda

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// ErrInvalidDate reports a start date that is not a real calendar day.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD date and rejects days that do not exist,
// such as 2025-02-30.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	if !d.IsValid() {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
