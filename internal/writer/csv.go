// Package writer exports analysis results to CSV.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// CSVWriter writes analyzed transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the analysis result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write writes the analysis result in CSV format to the given writer.
// Account metadata goes first as commented rows when IncludeHeader is
// set.
func (w *CSVWriter) Write(out io.Writer, result *models.AnalysisResult) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		writeMeta := func(label string, value *string) {
			if value != nil && *value != "" {
				writer.Write([]string{"# " + label, *value})
			}
		}
		writeMeta("Account Holder", result.AccountInfo.AccountHolder)
		writeMeta("Account Number", result.AccountInfo.AccountNumber)
		writeMeta("Bank", result.AccountInfo.BankName)
		writeMeta("Branch", result.AccountInfo.Branch)
		writeMeta("IFSC", result.AccountInfo.IFSCCode)
		if period := formatPeriod(result.AccountInfo.StatementPeriod); period != "" {
			writer.Write([]string{"# Statement Period", period})
		}
	}

	header := []string{"Date", "Type", "Amount", "Narration", "Balance", "Merchant", "Category", "Confidence"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range result.Transactions {
		row := []string{
			strOrEmpty(txn.TransactionDate),
			strOrEmpty(txn.TransactionType),
			formatAmount(txn.Amount),
			txn.Narration,
			formatAmount(txn.Balance),
			strOrEmpty(txn.Merchant),
			strings.Join(txn.Category, "|"),
			strconv.FormatFloat(txn.ConfidenceScore, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatPeriod(p models.StatementPeriod) string {
	switch {
	case p.From != nil && p.To != nil:
		return *p.From + " to " + *p.To
	case p.Date != nil:
		return *p.Date
	}
	return ""
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	return strconv.FormatFloat(*amount, 'f', 2, 64)
}
