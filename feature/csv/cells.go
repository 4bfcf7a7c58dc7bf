package csv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
// Example with pivot=20 in year 2026: "47" -> 1947 (not 2047), "25" -> 2025.
var TwoDigitYearPivot = 20

// Pre-compiled regex for numeric validation (avoids recompilation on each call)
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Date layouts split by year format for proper 2-digit year handling
var (
	// 2-digit year layouts - require pivot year adjustment
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	// 4-digit year layouts - no adjustment needed
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// Date is a CSV cell holding a calendar date in any of the accepted layouts.
// The zero value marshals to an empty cell.
type Date struct {
	time.Time
}

// UnmarshalCSV parses the cell. Empty cells produce the zero Date.
func (d *Date) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

// MarshalCSV writes the date in ISO form.
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format("2006-01-02"), nil
}

// ParseDate tries the known layouts in order. Two-digit years landing more
// than TwoDigitYearPivot years in the future are shifted back a century.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() > time.Now().Year()+TwoDigitYearPivot {
			t = t.AddDate(-100, 0, 0)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// Decimal is a CSV cell holding a numeric value that may carry thousands
// separators or a leading currency sign. Empty cells parse to zero.
type Decimal float64

// UnmarshalCSV parses the cell after stripping separators and signs.
func (d *Decimal) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}

	cleaned := strings.NewReplacer(",", "", "$", "", "€", "", "£", "", " ", "").Replace(s)
	if !numericRegex.MatchString(cleaned) {
		return fmt.Errorf("not a numeric value: %q", s)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", s, err)
	}
	*d = Decimal(v)
	return nil
}

// MarshalCSV writes the value with minimal digits.
func (d Decimal) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(d), 'f', -1, 64), nil
}
