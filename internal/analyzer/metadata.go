package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Labeled-field extractors for statement header text. Per field the
// patterns run in order and the first match wins; fields are independent.
// Patterns with a capture group keep group 1, the rest keep the whole
// match.
var (
	accountNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:account|a/c|acct)\s*(?:no|num|number)?\s*[:.]?\s*(\d{9,18})\b`),
		regexp.MustCompile(`(?i)\b(\d{3,5}(?:-\d{2,5}){2,})\b`),
		regexp.MustCompile(`(?i)\b(?:ind[o]\s*)?(\d{11})\b`),
	}
	accountHolderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:account\s*name|account\s*holder|customer\s*name|name)\s*:?\s*([A-Z][A-Z\s.&,']+)\s*(?:account|bank|address|statement)`),
		regexp.MustCompile(`(?i)(?:^|\n)\s*([A-Z][A-Z\s.&,']+)\s+(?:A/C|Account|No)\s*:`),
		regexp.MustCompile(`(?i)(\b[A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b\s*\d{6,}`),
	}
	bankNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:bank\s*name|issued\s*by|bank)\s*:?\s*([A-Z][A-Z\s,.]+)\b`),
		regexp.MustCompile(`(?i)\b(STATE BANK OF INDIA|HDFC BANK|ICICI BANK|AXIS BANK|PUNJAB NATIONAL BANK|YES BANK|KOTAK MAHINDRA BANK|UNION BANK OF INDIA|CANARA BANK|INDIAN BANK|INDUSIND BANK|FEDERAL BANK|RBL BANK|BANDHAN BANK|IDFC FIRST BANK)\b`),
		regexp.MustCompile(`(?i)BANK NAME\s*:\s*([A-Z\s&.]+)`),
	}
	branchPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:branch\s*name|branch)\s*:?\s*([A-Z][A-Z\s,.-]+)\b`),
		regexp.MustCompile(`(?i)BRANCH\s*:\s*([A-Z\s&.]+)`),
	}
	ifscPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b([A-Z]{4}0[A-Z0-9]{6})\b`),
		regexp.MustCompile(`(?i)(?:IFSC\s*Code|IFSC)\s*[:.]?\s*([A-Z]{4}0[A-Z0-9]{6})\b`),
	}
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:\+91[-\s]?)?[6-9]\d{9}\b`),
		regexp.MustCompile(`(?i)(?:tel|phone|mobile|ph\.?)\s*[:.]?\s*(\+?\d[\d\s-]{7,}\d)\b`),
	}
	emailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}\b`),
	}
)

// Date shapes recognized inside free statement text for period derivation.
var periodDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{4})\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4})\b`),
	regexp.MustCompile(`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`),
}

// ExtractMetadata pulls account details out of the statement's unstructured
// header text. Missing fields stay nil; the statement period is derived
// from every recognizable date in the blob.
func ExtractMetadata(blob string) models.AccountMetadata {
	meta := models.AccountMetadata{}
	meta.AccountNumber = firstMatch(accountNumberPatterns, blob)
	meta.AccountHolder = firstMatch(accountHolderPatterns, blob)
	meta.BankName = firstMatch(bankNamePatterns, blob)
	meta.Branch = firstMatch(branchPatterns, blob)
	meta.IFSCCode = firstMatch(ifscPatterns, blob)
	meta.Phone = firstMatch(phonePatterns, blob)
	meta.Email = firstMatch(emailPatterns, blob)
	meta.StatementPeriod = periodFromBlob(blob)
	return meta
}

func firstMatch(patterns []*regexp.Regexp, blob string) *string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(blob)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		return strPtr(strings.TrimSpace(value))
	}
	return nil
}

func periodFromBlob(blob string) models.StatementPeriod {
	var dates []time.Time
	for _, re := range periodDatePatterns {
		for _, m := range re.FindAllStringSubmatch(blob, -1) {
			if t, ok := ParseDayFirst(m[1]); ok {
				dates = append(dates, t)
			}
		}
	}
	return PeriodFromDates(dates)
}

// PeriodFromDateStrings derives a statement period from a table's date
// column, resolving ambiguous numeric dates day-first.
func PeriodFromDateStrings(values []string) models.StatementPeriod {
	var dates []time.Time
	for _, v := range values {
		if t, ok := ParseDayFirst(v); ok {
			dates = append(dates, t)
		}
	}
	return PeriodFromDates(dates)
}

// PeriodFromDates reduces parsed dates to a period. Two or more distinct
// dates give a from/to range, exactly one gives a single date, none gives
// an empty period.
func PeriodFromDates(dates []time.Time) models.StatementPeriod {
	seen := map[time.Time]bool{}
	distinct := dates[:0:0]
	for _, d := range dates {
		d = d.Truncate(24 * time.Hour)
		if !seen[d] {
			seen[d] = true
			distinct = append(distinct, d)
		}
	}
	if len(distinct) == 0 {
		return models.StatementPeriod{}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i].Before(distinct[j]) })
	if len(distinct) == 1 {
		return models.StatementPeriod{Date: strPtr(distinct[0].Format(canonicalDate))}
	}
	return models.StatementPeriod{
		From: strPtr(distinct[0].Format(canonicalDate)),
		To:   strPtr(distinct[len(distinct)-1].Format(canonicalDate)),
	}
}
