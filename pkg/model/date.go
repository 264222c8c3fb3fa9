package model

import (
	"fmt"
	"time"
)

// Date is an ISO calendar date (YYYY-MM-DD) used as a map key throughout
// the core, so it is a plain comparable string wrapper rather than
// time.Time (which is not guaranteed comparable with ==).
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates s is a well-formed ISO date and returns it as a Date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", &ValidationError{Field: "date", Reason: fmt.Sprintf("invalid date %q: %v", s, err)}
	}
	return Date(s), nil
}

// Time parses d back into a time.Time (UTC, midnight).
func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		// Date values are only ever constructed via ParseDate, so this
		// would indicate a model-build invariant violation.
		panic(fmt.Sprintf("model: invalid Date %q escaped validation: %v", d, err))
	}
	return t
}

// Weekday returns the lowercase three-letter weekday abbreviation.
func (d Date) Weekday() string {
	switch d.Time().Weekday() {
	case time.Monday:
		return "mon"
	case time.Tuesday:
		return "tue"
	case time.Wednesday:
		return "wed"
	case time.Thursday:
		return "thu"
	case time.Friday:
		return "fri"
	case time.Saturday:
		return "sat"
	default:
		return "sun"
	}
}

// ISOWeek returns the (year, week) pair per ISO 8601, packed into a single
// comparable int as year*100+week so it can key a map directly.
func (d Date) ISOWeek() int {
	year, week := d.Time().ISOWeek()
	return year*100 + week
}

// Month returns a comparable (year, month) key.
func (d Date) Month() int {
	t := d.Time()
	return int(t.Year())*100 + int(t.Month())
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}
