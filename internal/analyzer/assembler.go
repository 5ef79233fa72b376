package analyzer

import (
	"math"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// rowOutcome is the result of assembling one data row: either a
// transaction or an explicit skip with a reason. Skips are counted, never
// fatal.
type rowOutcome struct {
	txn        *models.Transaction
	skipReason string
}

// rowCells indexes a data row by the resolved roles of its table. Missing
// cells read as "".
type rowCells struct {
	roles   columnRoles
	columns map[string]int
	cells   []string
}

func newRowCells(roles columnRoles, header, cells []string) rowCells {
	columns := make(map[string]int, len(header))
	for i, col := range header {
		if _, dup := columns[col]; !dup {
			columns[col] = i
		}
	}
	return rowCells{roles: roles, columns: columns, cells: cells}
}

func (r rowCells) get(label string) string {
	if label == "" {
		return ""
	}
	i, ok := r.columns[label]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// assembleRow turns one data row into a transaction. Direction comes from
// whichever amount-bearing column carries a value: an explicit credit or
// debit wins over a signed general amount. Rows with no amount in any
// column are skipped, as are rows with neither narration nor amount.
func assembleRow(row rowCells) rowOutcome {
	credit := ParseAmount(row.get(row.roles.credit))
	debit := ParseAmount(row.get(row.roles.debit))
	general := ParseAmount(row.get(row.roles.amount))

	if credit == nil && debit == nil && general == nil {
		return rowOutcome{skipReason: "no amount"}
	}

	var txnType *string
	var amount *float64
	switch {
	case credit != nil && *credit > 0:
		txnType = strPtr("CREDIT")
		amount = credit
	case debit != nil && *debit > 0:
		txnType = strPtr("DEBIT")
		amount = debit
	case general != nil:
		if *general >= 0 {
			txnType = strPtr("CREDIT")
		} else {
			txnType = strPtr("DEBIT")
		}
		amount = f64Ptr(math.Abs(*general))
	}

	narration := strings.TrimSpace(row.get(row.roles.narration))
	if narration == "" && amount == nil {
		return rowOutcome{skipReason: "empty row"}
	}

	txn := models.Transaction{
		TransactionDate: NormalizeDate(row.get(row.roles.date)),
		TransactionType: txnType,
		Amount:          amount,
		Narration:       narration,
		Balance:         ParseAmount(row.get(row.roles.balance)),
		NarrationFacets: AnalyzeNarration(narration),
	}
	if acc := strings.TrimSpace(row.get(row.roles.account)); acc != "" {
		txn.Account = strPtr(acc)
	}
	txn.ConfidenceScore = ScoreTransaction(&txn)
	return rowOutcome{txn: &txn}
}
