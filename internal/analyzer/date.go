package analyzer

import (
	"regexp"
	"strings"
	"time"
)

const canonicalDate = "2006-01-02"

// datetimeRe matches a full timestamp whose date part can be taken
// directly, e.g. "2025-02-04 00:00:00".
var datetimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// knownDateFormats is the ordered list of statement date layouts tried
// before falling back to the generic parser. First successful parse wins.
var knownDateFormats = []string{
	"02-01-2006",      // DD-MM-YYYY
	"02/01/2006",      // DD/MM/YYYY
	"02-Jan-06",       // 01-Feb-25
	"02-Jan-2006",     // 01-Feb-2025
	"02 - Jan - 2006", // 01 - Feb - 2025
	"2006-01-02",      // already canonical
}

// flexibleFormats is the permissive fallback, month-first for ambiguous
// numeric dates.
var flexibleFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"02.01.2006",
	"01/02/06",
}

// dayFirstFormats resolves ambiguous numeric dates day-first. Used for
// statement-period derivation, where DD/MM dominates.
var dayFirstFormats = []string{
	"02/01/2006",
	"02-01-2006",
	"02/01/06",
	"02-01-06",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"02-Jan-06",
	"2006-01-02",
	"2006/01/02",
}

// NormalizeDate turns heterogeneous date text into canonical YYYY-MM-DD.
// Unparseable input passes through unchanged rather than erroring; empty
// input returns nil.
func NormalizeDate(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if datetimeRe.MatchString(s) {
		if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
			out := t.Format(canonicalDate)
			return &out
		}
	}

	for _, layout := range knownDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			t = fixTwoDigitYear(t)
			out := t.Format(canonicalDate)
			return &out
		}
	}

	if t, ok := parseWith(flexibleFormats, s); ok {
		out := t.Format(canonicalDate)
		return &out
	}

	// Unparsed passthrough: keep the original text for downstream display.
	return &s
}

// ParseDayFirst parses a date string preferring day-first resolution of
// ambiguous numeric forms.
func ParseDayFirst(raw string) (time.Time, bool) {
	return parseWith(dayFirstFormats, strings.TrimSpace(raw))
}

// parseLoose parses dates already passed through NormalizeDate: canonical
// first, then whatever the flexible list can make of an unparsed
// passthrough.
func parseLoose(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if t, err := time.Parse(canonicalDate, s); err == nil {
		return t, true
	}
	if t, ok := parseWith(flexibleFormats, s); ok {
		return t, true
	}
	return parseWith(dayFirstFormats, s)
}

func parseWith(layouts []string, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fixTwoDigitYear(t), true
		}
	}
	return time.Time{}, false
}

// fixTwoDigitYear shifts years parsed from two-digit layouts into the
// 2000s. Go maps "25" to year 25, not 2025.
func fixTwoDigitYear(t time.Time) time.Time {
	if t.Year() < 100 {
		return t.AddDate(2000, 0, 0)
	}
	return t
}
