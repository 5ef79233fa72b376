package analyzer

import "testing"

func TestCleanColumnName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Date  ", "date"},
		{"Txn Date", "txn_date"},
		{"Chq. No", "chq_no"},
		{"Dr/Cr", "dr_cr"},
		{"Value-Date", "value_date"},
		{"Withdrawal Amt.", "withdrawal_amt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanColumnName(tt.input); got != tt.want {
				t.Errorf("CleanColumnName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectHeaderRow(t *testing.T) {
	rows := [][]string{
		{"Some Bank Ltd", ""},
		{"Customer: John", ""},
		{"Date", "Narration", "Debit", "Credit", "Balance"},
		{"01/04/2024", "UPI/X", "100", "", "900"},
	}

	if got := DetectHeaderRow(rows, DefaultHeaderScanRows, DefaultHeaderThreshold); got != 2 {
		t.Errorf("DetectHeaderRow = %d, want 2", got)
	}
}

func TestDetectHeaderRowFallback(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"c", "d"},
	}
	if got := DetectHeaderRow(rows, DefaultHeaderScanRows, DefaultHeaderThreshold); got != 0 {
		t.Errorf("DetectHeaderRow = %d, want fallback 0", got)
	}
}

func TestFindColumnExactBeatsSubstring(t *testing.T) {
	// "value_date" contains "date" as a substring, but the exact match on
	// a later column must win the first pass.
	columns := []string{"value_date_details", "date"}
	if got := FindColumn(dateColumnKeywords, columns); got != "date" {
		t.Errorf("FindColumn = %q, want %q", got, "date")
	}
}

func TestFindColumnSubstringFallback(t *testing.T) {
	columns := []string{"txn_date_col", "narration_text"}
	if got := FindColumn(dateColumnKeywords, columns); got != "txn_date_col" {
		t.Errorf("FindColumn = %q, want %q", got, "txn_date_col")
	}
}

func TestResolveRolesExcludesDateFromAmount(t *testing.T) {
	// A "value_date" column must never be picked as the amount column
	// even though it contains the keyword "value".
	roles := resolveRoles([]string{"value_date", "narration", "amount"})
	if roles.amount != "amount" {
		t.Errorf("amount role = %q, want %q", roles.amount, "amount")
	}
	if roles.date != "value_date" {
		t.Errorf("date role = %q, want %q", roles.date, "value_date")
	}
}

func TestRolesValid(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    bool
	}{
		{"credit and debit", []string{"date", "narration", "credit", "debit"}, true},
		{"amount only", []string{"date", "narration", "amount"}, true},
		{"no amount source", []string{"date", "narration"}, false},
		{"no narration", []string{"date", "credit"}, false},
		{"no date", []string{"narration", "amount"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRoles(tt.columns).valid(); got != tt.want {
				t.Errorf("valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
