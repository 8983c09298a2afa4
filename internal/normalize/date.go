package normalize

import (
	"strings"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

// ISODate is the canonical layout used for storage and comparison.
const ISODate = "2006-01-02"

// dateLayouts is the ordered list of accepted input formats. The first layout
// that parses wins, so day-month-year forms take priority over month-day-year.
var dateLayouts = []string{
	"2-Jan-06",         // 17-Jun-24
	"2-Jan-2006",       // 17-Jun-2024
	"2-1-2006",         // 17-06-2024
	"2.1.2006",         // 17.06.2024
	"2/1/2006",         // 17/06/2024
	"2006-1-2",         // 2024-06-17
	"1/2/2006",         // 06/17/2024
	"January 2, 2006",  // June 17, 2024
	"Jan 2, 2006",      // Jun 17, 2024
	"2 January 2006",   // 17 June 2024
	"2 Jan 2006",       // 17 Jun 2024
}

// ParseDate interprets an arbitrary text token as a calendar date and returns
// it in canonical YYYY-MM-DD form. The second return value is false when no
// accepted format matches; callers treat that as a recoverable validation
// failure.
func ParseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == entity.UnknownField {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISODate), true
		}
	}
	return "", false
}

// FormatDateForDisplay renders a canonical date as DD-MM-YYYY. Input that is
// not canonical is returned unchanged.
func FormatDateForDisplay(iso string) string {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		return iso
	}
	return t.Format("02-01-2006")
}

// ValidateDateRange reports whether from and to are both canonical dates with
// from <= to.
func ValidateDateRange(from, to string) bool {
	f, err := time.Parse(ISODate, from)
	if err != nil {
		return false
	}
	t, err := time.Parse(ISODate, to)
	if err != nil {
		return false
	}
	return !f.After(t)
}
