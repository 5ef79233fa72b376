package analyzer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Leading ISO-style date shape. Amount cells matching this are date
	// strings that leaked into a numeric column and must not parse.
	isoDatePrefixRe = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}`)
	// Trailing or embedded Cr./Dr. markers, word-bounded.
	crDrMarkerRe = regexp.MustCompile(`(?i)\b(Cr\.?|Dr\.?)\b`)
)

// amountPlaceholders are cell values that mean "no amount".
var amountPlaceholders = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"n/a":  true,
	"-":    true,
}

// ParseAmount parses monetary text into a float, or nil when the cell is
// empty, a placeholder, a date leak, or unparseable. Currency symbols and
// thousands separators are stripped; "(X)" is read as -X.
func ParseAmount(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if amountPlaceholders[strings.ToLower(s)] {
		return nil
	}
	if isoDatePrefixRe.MatchString(s) {
		return nil
	}

	replacer := strings.NewReplacer(",", "", "₹", "", "$", "", "€", "", "£", "")
	s = replacer.Replace(s)
	s = strings.TrimSpace(crDrMarkerRe.ReplaceAllString(s, ""))

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
