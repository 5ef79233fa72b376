// Package analyzer implements the bank statement analysis pipeline:
// schema detection, value normalization, narration classification,
// transaction assembly, confidence scoring, metadata extraction and
// merchant aggregation.
package analyzer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/extractor"
	"github.com/insightdelivered/statement-analyzer/internal/models"
	"github.com/insightdelivered/statement-analyzer/internal/verify"
)

// metadataScanRows caps how many leading spreadsheet rows are flattened
// into the metadata text blob.
const metadataScanRows = 30

const (
	msgMissingColumns  = "Missing critical columns (Date, Narration, and at least one of Credit/Debit/Amount)."
	msgNoTables        = "No structured transaction tables could be extracted from the PDF."
	msgUnsupportedType = "Unsupported file type"
	msgFileNotFound    = "File not found or invalid path."
	msgTabularFailed   = "Failed to analyze Excel/CSV bank statement"
	msgDocumentFailed  = "Failed to analyze PDF bank statement"
)

// Analyzer runs the statement analysis pipeline. The verification client
// is carried so callers can act on the pending inputs each analysis
// produces; the pipeline itself never invokes it.
type Analyzer struct {
	log      *slog.Logger
	verifier *verify.Client
}

// New returns an analyzer logging to log. verifier may be a disabled
// client.
func New(log *slog.Logger, verifier *verify.Client) *Analyzer {
	return &Analyzer{log: log, verifier: verifier}
}

// Verifier exposes the injected verification client.
func (a *Analyzer) Verifier() *verify.Client { return a.verifier }

// AnalyzeFile analyzes a statement file, dispatching on its extension.
// It always returns a complete response envelope, plus the account/IFSC
// pairs that qualified for external verification.
func (a *Analyzer) AnalyzeFile(path string) (models.Response, []verify.Input) {
	if _, err := os.Stat(path); err != nil {
		return badRequest(msgFileNotFound, models.NewAnalysisResult()), nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".xlsx", ".xls":
		return a.AnalyzeTabular(path)
	case ".pdf":
		return a.AnalyzeDocument(path)
	default:
		a.log.Warn("unsupported file type", "path", path, "ext", ext)
		return badRequest(msgUnsupportedType, models.NewAnalysisResult()), nil
	}
}

// AnalyzeTabular analyzes a CSV or Excel statement.
func (a *Analyzer) AnalyzeTabular(path string) (models.Response, []verify.Input) {
	rows, err := extractor.ReadTabular(path)
	if err != nil {
		a.log.Error("tabular read failed", "path", path, "error", err)
		return internalError(msgTabularFailed, err), nil
	}

	meta := ExtractMetadata(flattenRows(rows, metadataScanRows))
	if len(rows) == 0 {
		result := models.NewAnalysisResult()
		result.AccountInfo = meta
		return badRequest(msgMissingColumns, result), nil
	}

	headerIdx := DetectHeaderRow(rows, DefaultHeaderScanRows, DefaultHeaderThreshold)
	header, kept := projectHeader(rows[headerIdx])
	roles := resolveRoles(header)
	a.log.Debug("resolved columns", "path", path, "header_row", headerIdx, "columns", header)

	if !roles.valid() {
		a.log.Warn("missing critical columns",
			"path", path, "date", roles.date, "narration", roles.narration,
			"credit", roles.credit, "debit", roles.debit, "amount", roles.amount)
		result := models.NewAnalysisResult()
		result.AccountInfo = meta
		return badRequest(msgMissingColumns, result), nil
	}

	result := models.NewAnalysisResult()
	var dateValues []string
	var pending []verify.Input
	for _, raw := range rows[headerIdx+1:] {
		row := newRowCells(roles, header, projectCells(raw, kept))
		outcome := assembleRow(row)
		if outcome.txn == nil {
			a.log.Debug("skipping row", "reason", outcome.skipReason)
			result.SkippedRows++
			continue
		}
		result.Transactions = append(result.Transactions, *outcome.txn)
		dateValues = append(dateValues, row.get(roles.date))
		pending = appendPending(pending, outcome.txn)
	}

	if period := PeriodFromDateStrings(dateValues); period != (models.StatementPeriod{}) {
		meta.StatementPeriod = period
	}
	result.AccountInfo = meta
	finishResult(&result)

	a.logPending(pending)
	return success(fmt.Sprintf("%d transactions parsed from Excel/CSV", len(result.Transactions)), result), pending
}

// AnalyzeDocument analyzes a PDF statement: extract page text, rebuild
// tables, then run each table through the same row pipeline. Tables
// whose columns cannot be resolved are skipped, not fatal.
func (a *Analyzer) AnalyzeDocument(path string) (models.Response, []verify.Input) {
	pages, err := extractor.ExtractPages(path)
	if err != nil {
		a.log.Warn("PDF extraction failed", "path", path, "error", err)
		resp := badRequest(msgNoTables, models.NewAnalysisResult())
		resp.Errors = []string{err.Error()}
		return resp, nil
	}

	meta := ExtractMetadata(strings.Join(pages, "\n"))

	tables := extractor.BuildTables(pages)
	if len(tables) == 0 {
		a.log.Warn("no tables found in PDF", "path", path)
		result := models.NewAnalysisResult()
		result.AccountInfo = meta
		return badRequest(msgNoTables, result), nil
	}

	result := models.NewAnalysisResult()
	result.AccountInfo = meta
	var pending []verify.Input
	for i, table := range tables {
		header := cleanHeader(table.Header)
		roles := resolveRoles(header)
		if !roles.valid() {
			a.log.Debug("skipping table with missing critical columns",
				"table", i, "date", roles.date, "narration", roles.narration)
			continue
		}
		for _, raw := range table.Rows {
			row := newRowCells(roles, header, raw)
			outcome := assembleRow(row)
			if outcome.txn == nil {
				a.log.Debug("skipping row", "table", i, "reason", outcome.skipReason)
				result.SkippedRows++
				continue
			}
			result.Transactions = append(result.Transactions, *outcome.txn)
			pending = appendPending(pending, outcome.txn)
		}
	}
	finishResult(&result)

	a.logPending(pending)
	return success(fmt.Sprintf("%d transactions parsed from PDF", len(result.Transactions)), result), pending
}

// finishResult fills in the aggregates derived from the transaction list.
func finishResult(result *models.AnalysisResult) {
	summary := SummarizeConfidence(result.Transactions)
	result.ConfidenceSummary = &summary
	result.MerchantInsights = BuildMerchantInsights(result.Transactions)
}

// appendPending queues a transaction for external account verification
// when both a counterparty account and a bank peer were extracted.
func appendPending(pending []verify.Input, txn *models.Transaction) []verify.Input {
	if txn.Receiver.Account == nil || txn.BankPeer == nil {
		return pending
	}
	return append(pending, verify.Input{
		AccountNumber: *txn.Receiver.Account,
		IFSCCode:      *txn.BankPeer,
	})
}

func (a *Analyzer) logPending(pending []verify.Input) {
	if len(pending) > 0 {
		a.log.Info("transactions eligible for account verification",
			"count", len(pending), "enabled", a.verifier.Enabled())
	}
}

// projectHeader cleans the header labels and drops unnamed columns,
// returning the kept labels and their source indices.
func projectHeader(raw []string) ([]string, []int) {
	var header []string
	var kept []int
	for i, label := range raw {
		cleaned := CleanColumnName(label)
		if cleaned == "" || strings.HasPrefix(cleaned, "unnamed") {
			continue
		}
		header = append(header, cleaned)
		kept = append(kept, i)
	}
	return header, kept
}

func projectCells(raw []string, kept []int) []string {
	cells := make([]string, len(kept))
	for i, src := range kept {
		if src < len(raw) {
			cells[i] = raw[src]
		}
	}
	return cells
}

// flattenRows joins the leading rows of a sheet into one text blob for
// metadata extraction.
func flattenRows(rows [][]string, maxRows int) string {
	if maxRows > len(rows) {
		maxRows = len(rows)
	}
	var parts []string
	for _, row := range rows[:maxRows] {
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				parts = append(parts, cell)
			}
		}
	}
	return strings.Join(parts, " ")
}

func cleanHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, label := range raw {
		header[i] = CleanColumnName(label)
	}
	return header
}

func success(message string, result models.AnalysisResult) models.Response {
	return models.Response{
		Success:    1,
		StatusCode: models.StatusSuccess,
		Message:    message,
		Result:     result,
	}
}

func badRequest(message string, result models.AnalysisResult) models.Response {
	return models.Response{
		StatusCode: models.StatusBadRequest,
		Message:    message,
		Result:     result,
	}
}

func internalError(message string, err error) models.Response {
	return models.Response{
		StatusCode: models.StatusInternalServerError,
		Message:    message,
		Result:     models.NewAnalysisResult(),
		Errors:     []string{err.Error()},
	}
}
