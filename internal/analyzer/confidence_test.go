package analyzer

import (
	"testing"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func completeTransaction() models.Transaction {
	txn := models.Transaction{
		TransactionDate: strPtr("2025-01-05"),
		TransactionType: strPtr("DEBIT"),
		Amount:          f64Ptr(450.50),
		Narration:       "UPI PAYMENT TO JANE DOE",
		Balance:         f64Ptr(12000),
		NarrationFacets: models.NewNarrationFacets(),
	}
	txn.Receiver.Name = strPtr("JANE DOE")
	return txn
}

func TestScoreTransactionComplete(t *testing.T) {
	txn := completeTransaction()
	if got := ScoreTransaction(&txn); got != 1.0 {
		t.Errorf("score = %v, want 1.0", got)
	}
}

func TestScoreTransactionPenalties(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Transaction)
		want   float64
	}{
		{"missing date", func(txn *models.Transaction) { txn.TransactionDate = nil }, 0.75},
		{"unparsed date text", func(txn *models.Transaction) { txn.TransactionDate = strPtr("5th Jan") }, 0.75},
		{"missing amount", func(txn *models.Transaction) { txn.Amount = nil }, 0.75},
		{"zero amount", func(txn *models.Transaction) { txn.Amount = f64Ptr(0) }, 0.75},
		{"empty narration", func(txn *models.Transaction) { txn.Narration = "" }, 0.85},
		{"short narration", func(txn *models.Transaction) { txn.Narration = "UPI" }, 0.95},
		{"missing type", func(txn *models.Transaction) { txn.TransactionType = nil }, 0.90},
		{"no receiver", func(txn *models.Transaction) { txn.Receiver.Name = nil }, 0.90},
		{"missing balance", func(txn *models.Transaction) { txn.Balance = nil }, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := completeTransaction()
			tt.mutate(&txn)
			if got := ScoreTransaction(&txn); got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreTransactionClampedAtZero(t *testing.T) {
	txn := models.Transaction{NarrationFacets: models.NewNarrationFacets()}
	got := ScoreTransaction(&txn)
	if got != 0.10 {
		// All penalties: 0.25+0.25+0.15+0.10+0.10+0.05 leaves 0.10.
		t.Errorf("score = %v, want 0.10", got)
	}
	if got < 0 || got > 1 {
		t.Errorf("score %v outside [0,1]", got)
	}
}

func TestSummarizeConfidence(t *testing.T) {
	high := completeTransaction()
	high.ConfidenceScore = ScoreTransaction(&high)

	low := completeTransaction()
	low.TransactionDate = nil
	low.ConfidenceScore = ScoreTransaction(&low)

	summary := SummarizeConfidence([]models.Transaction{high, low})
	if summary.TotalTransactions != 2 {
		t.Errorf("total = %d, want 2", summary.TotalTransactions)
	}
	if summary.HighConfidenceTxns != 1 {
		t.Errorf("high confidence = %d, want 1", summary.HighConfidenceTxns)
	}
	if summary.OverallScore != 0.88 {
		t.Errorf("overall = %v, want 0.88", summary.OverallScore)
	}
}

func TestSummarizeConfidenceEmpty(t *testing.T) {
	summary := SummarizeConfidence(nil)
	if summary.OverallScore != 0.0 || summary.TotalTransactions != 0 || summary.HighConfidenceTxns != 0 {
		t.Errorf("summary = %+v, want zeroes", summary)
	}
}
