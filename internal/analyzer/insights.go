package analyzer

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// unknownMerchantKey groups transactions with no identifiable
// counterparty.
const unknownMerchantKey = "UNKNOWN"

var titleCaser = cases.Title(language.English)

// BuildMerchantInsights aggregates transactions per counterparty. The
// grouping key is the merchant when classified, else the receiver name,
// else the receiver account, else UNKNOWN.
func BuildMerchantInsights(txns []models.Transaction) map[string]models.MerchantInsight {
	groups := map[string][]models.Transaction{}
	for _, txn := range txns {
		groups[merchantKey(txn)] = append(groups[merchantKey(txn)], txn)
	}

	insights := make(map[string]models.MerchantInsight, len(groups))
	for key, group := range groups {
		insights[key] = summarizeGroup(key, group)
	}
	return insights
}

func merchantKey(txn models.Transaction) string {
	switch {
	case txn.Merchant != nil:
		return *txn.Merchant
	case txn.Receiver.Name != nil:
		return *txn.Receiver.Name
	case txn.Receiver.Account != nil:
		return *txn.Receiver.Account
	default:
		return unknownMerchantKey
	}
}

func summarizeGroup(key string, group []models.Transaction) models.MerchantInsight {
	insight := models.MerchantInsight{
		DisplayName: titleCaser.String(strings.ToLower(key)),
		Count:       len(group),
		CommonDays:  []int{},
	}

	var amounts []float64
	var dates []time.Time
	dayCounts := map[int]int{}
	for _, txn := range group {
		if txn.Amount != nil {
			amounts = append(amounts, *txn.Amount)
		}
		if txn.TransactionDate == nil {
			continue
		}
		if t, ok := parseLoose(*txn.TransactionDate); ok {
			dates = append(dates, t)
			dayCounts[t.Day()]++
		}
	}

	if len(amounts) > 0 {
		insight.AvgAmount = f64Ptr(round2(mean(amounts)))
		insight.MedianAmount = f64Ptr(round2(median(amounts)))
	}
	if len(amounts) > 1 {
		insight.StdAmount = f64Ptr(round2(sampleStd(amounts)))
	}

	if len(dates) > 0 {
		first, last := dates[0], dates[0]
		for _, d := range dates[1:] {
			if d.Before(first) {
				first = d
			}
			if d.After(last) {
				last = d
			}
		}
		insight.FirstSeen = strPtr(first.Format(canonicalDate))
		insight.LastSeen = strPtr(last.Format(canonicalDate))
	}

	for day, n := range dayCounts {
		if n > 1 {
			insight.CommonDays = append(insight.CommonDays, day)
		}
	}
	sort.Ints(insight.CommonDays)

	return insight
}

func mean(vals []float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// sampleStd is the sample standard deviation (n-1 denominator).
func sampleStd(vals []float64) float64 {
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}
