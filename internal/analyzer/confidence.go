package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// HighConfidenceThreshold splits transactions into high- and
// low-confidence buckets for the summary.
const HighConfidenceThreshold = 0.85

var canonicalDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ScoreTransaction computes a completeness score for one transaction:
// start at 1.0 and subtract a fixed penalty per missing or degraded
// field. The result is rounded to two decimals and clamped to [0, 1].
func ScoreTransaction(txn *models.Transaction) float64 {
	score := 1.0

	if txn.TransactionDate == nil || !canonicalDateRe.MatchString(*txn.TransactionDate) {
		score -= 0.25
	}
	if txn.Amount == nil || *txn.Amount <= 0 {
		score -= 0.25
	}
	if txn.Narration == "" {
		score -= 0.15
	} else if len(strings.TrimSpace(txn.Narration)) < 5 {
		score -= 0.05
	}
	if txn.TransactionType == nil {
		score -= 0.10
	}
	if txn.Receiver.Name == nil && txn.Receiver.Account == nil && txn.Receiver.VPA == nil {
		score -= 0.10
	}
	if txn.Balance == nil {
		score -= 0.05
	}

	return clampScore(round2(score))
}

// SummarizeConfidence aggregates per-transaction scores. An empty slice
// yields a zero overall score.
func SummarizeConfidence(txns []models.Transaction) models.ConfidenceSummary {
	summary := models.ConfidenceSummary{TotalTransactions: len(txns)}
	if len(txns) == 0 {
		return summary
	}

	total := 0.0
	for _, txn := range txns {
		total += txn.ConfidenceScore
		if txn.ConfidenceScore >= HighConfidenceThreshold {
			summary.HighConfidenceTxns++
		}
	}
	summary.OverallScore = round2(total / float64(len(txns)))
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
