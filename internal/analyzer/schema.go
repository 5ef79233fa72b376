package analyzer

import "strings"

// Header detection defaults: scan at most the first 20 rows and require at
// least 2 cells matching the header vocabulary.
const (
	DefaultHeaderScanRows  = 20
	DefaultHeaderThreshold = 2
)

// headerKeywords is the vocabulary used to recognize a header row. Cells
// are cleaned with CleanColumnName before the substring check.
var headerKeywords = []string{
	"date",
	"transaction_date",
	"value_date",
	"description",
	"narration",
	"remark",
	"particulars",
	"credit",
	"debit",
	"balance",
	"amount",
	"txn_type",
	"type",
	"chq_no",
	"cheque_number",
	"withdrawals",
	"deposits",
}

// Keyword lists for resolving semantic column roles. Order matters:
// FindColumn tries every keyword for an exact match before any keyword is
// tried as a substring.
var (
	dateColumnKeywords      = []string{"date", "txn_date", "transaction_date", "value_date"}
	creditColumnKeywords    = []string{"credit", "cr", "credit_amount", "received", "deposit", "cr_amount", "deposits"}
	debitColumnKeywords     = []string{"debit", "dr", "debit_amount", "withdraw", "paid", "dr_amount", "withdrawals"}
	amountColumnKeywords    = []string{"amount", "transaction_amount", "value"}
	narrationColumnKeywords = []string{"narration", "description", "remark", "details", "particulars", "transaction_details"}
	balanceColumnKeywords   = []string{"balance", "closing_balance", "available_balance", "current_balance"}
	accountColumnKeywords   = []string{"account", "acc_no", "account_number"}
)

// CleanColumnName normalizes a raw column label into an identifier:
// trimmed, lowercased, with spaces, dots, slashes and dashes collapsed to
// underscores.
func CleanColumnName(col string) string {
	col = strings.ToLower(strings.TrimSpace(col))
	replacer := strings.NewReplacer(
		" ", "_",
		".", "",
		"/", "_",
		"\\", "_",
		"-", "_",
	)
	return replacer.Replace(col)
}

// DetectHeaderRow scans the first maxRows rows and returns the index of
// the first row where at least threshold cells contain a header keyword.
// Falls back to index 0 when no row qualifies.
func DetectHeaderRow(rows [][]string, maxRows, threshold int) int {
	if maxRows > len(rows) {
		maxRows = len(rows)
	}
	for i := 0; i < maxRows; i++ {
		matches := 0
		for _, cell := range rows[i] {
			cleaned := CleanColumnName(cell)
			if cleaned == "" {
				continue
			}
			for _, kw := range headerKeywords {
				if strings.Contains(cleaned, kw) {
					matches++
					break
				}
			}
		}
		if matches >= threshold {
			return i
		}
	}
	return 0
}

// FindColumn resolves a semantic role against the available column labels.
// Pass one tries every keyword as an exact case-insensitive match; only if
// the whole list misses does pass two retry each keyword as a substring.
// Returns the original label of the first hit, or "" if none matched.
func FindColumn(keywords, columns []string) string {
	normalized := make([]string, len(columns))
	for i, col := range columns {
		normalized[i] = strings.ToLower(strings.TrimSpace(col))
	}

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		for i, col := range normalized {
			if col == kw {
				return columns[i]
			}
		}
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		for i, col := range normalized {
			if strings.Contains(col, kw) {
				return columns[i]
			}
		}
	}
	return ""
}

// columnRoles maps semantic roles to original column labels for one
// source. An empty label means the role is unresolved.
type columnRoles struct {
	date      string
	narration string
	credit    string
	debit     string
	amount    string
	balance   string
	account   string
}

// resolveRoles computes the role map for a set of column labels. The
// amount role is resolved only against columns whose name does not
// mention "date", so date columns never masquerade as amounts.
func resolveRoles(columns []string) columnRoles {
	nonDate := make([]string, 0, len(columns))
	for _, col := range columns {
		if !strings.Contains(strings.ToLower(col), "date") {
			nonDate = append(nonDate, col)
		}
	}
	return columnRoles{
		date:      FindColumn(dateColumnKeywords, columns),
		narration: FindColumn(narrationColumnKeywords, columns),
		credit:    FindColumn(creditColumnKeywords, columns),
		debit:     FindColumn(debitColumnKeywords, columns),
		amount:    FindColumn(amountColumnKeywords, nonDate),
		balance:   FindColumn(balanceColumnKeywords, columns),
		account:   FindColumn(accountColumnKeywords, columns),
	}
}

// valid reports whether the role map satisfies the source preconditions:
// date and narration resolved, plus at least one amount-bearing column.
func (r columnRoles) valid() bool {
	if r.date == "" || r.narration == "" {
		return false
	}
	return r.credit != "" || r.debit != "" || r.amount != ""
}
