package analyzer

import (
	"testing"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func insightTxn(merchant, date string, amount float64) models.Transaction {
	txn := models.Transaction{
		TransactionDate: strPtr(date),
		Amount:          f64Ptr(amount),
		NarrationFacets: models.NewNarrationFacets(),
	}
	if merchant != "" {
		txn.Merchant = strPtr(merchant)
	}
	return txn
}

func TestBuildMerchantInsights(t *testing.T) {
	txns := []models.Transaction{
		insightTxn("AMAZON", "2024-05-05", 100),
		insightTxn("AMAZON", "2024-06-05", 300),
		insightTxn("", "2024-05-10", 50),
	}

	insights := BuildMerchantInsights(txns)
	if len(insights) != 2 {
		t.Fatalf("got %d groups, want 2", len(insights))
	}

	amazon, ok := insights["AMAZON"]
	if !ok {
		t.Fatal("missing AMAZON group")
	}
	if amazon.DisplayName != "Amazon" {
		t.Errorf("display_name = %q, want Amazon", amazon.DisplayName)
	}
	if amazon.Count != 2 {
		t.Errorf("count = %d, want 2", amazon.Count)
	}
	if amazon.AvgAmount == nil || *amazon.AvgAmount != 200 {
		t.Errorf("avg = %v, want 200", amazon.AvgAmount)
	}
	if amazon.MedianAmount == nil || *amazon.MedianAmount != 200 {
		t.Errorf("median = %v, want 200", amazon.MedianAmount)
	}
	if amazon.StdAmount == nil || *amazon.StdAmount != 141.42 {
		t.Errorf("std = %v, want 141.42", amazon.StdAmount)
	}
	if amazon.FirstSeen == nil || *amazon.FirstSeen != "2024-05-05" {
		t.Errorf("first_seen = %v, want 2024-05-05", amazon.FirstSeen)
	}
	if amazon.LastSeen == nil || *amazon.LastSeen != "2024-06-05" {
		t.Errorf("last_seen = %v, want 2024-06-05", amazon.LastSeen)
	}
	if len(amazon.CommonDays) != 1 || amazon.CommonDays[0] != 5 {
		t.Errorf("common_days = %v, want [5]", amazon.CommonDays)
	}

	unknown, ok := insights["UNKNOWN"]
	if !ok {
		t.Fatal("missing UNKNOWN group")
	}
	if unknown.Count != 1 {
		t.Errorf("unknown count = %d, want 1", unknown.Count)
	}
	if unknown.StdAmount != nil {
		t.Errorf("unknown std = %v, want nil for single sample", *unknown.StdAmount)
	}
	if len(unknown.CommonDays) != 0 {
		t.Errorf("unknown common_days = %v, want empty", unknown.CommonDays)
	}
}

func TestMerchantKeyFallbacks(t *testing.T) {
	withName := models.Transaction{NarrationFacets: models.NewNarrationFacets()}
	withName.Receiver.Name = strPtr("JANE DOE")

	withAccount := models.Transaction{NarrationFacets: models.NewNarrationFacets()}
	withAccount.Receiver.Account = strPtr("123456789012")

	insights := BuildMerchantInsights([]models.Transaction{withName, withAccount})
	if _, ok := insights["JANE DOE"]; !ok {
		t.Error("missing group keyed by receiver name")
	}
	if _, ok := insights["123456789012"]; !ok {
		t.Error("missing group keyed by receiver account")
	}
}

func TestBuildMerchantInsightsNoAmounts(t *testing.T) {
	txn := models.Transaction{NarrationFacets: models.NewNarrationFacets()}
	insights := BuildMerchantInsights([]models.Transaction{txn})

	unknown := insights["UNKNOWN"]
	if unknown.AvgAmount != nil || unknown.MedianAmount != nil || unknown.StdAmount != nil {
		t.Errorf("amount stats = %v/%v/%v, want all nil", unknown.AvgAmount, unknown.MedianAmount, unknown.StdAmount)
	}
	if unknown.FirstSeen != nil || unknown.LastSeen != nil {
		t.Errorf("first/last seen = %v/%v, want nil", unknown.FirstSeen, unknown.LastSeen)
	}
}
