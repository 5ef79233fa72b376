// Package models defines the data model shared by the statement analysis
// pipeline and the HTTP/CLI surfaces.
package models

// Status codes carried inside the response envelope. They double as the
// HTTP status of the response.
const (
	StatusSuccess             = 200
	StatusBadRequest          = 400
	StatusInternalServerError = 500
)

// RawTable is one table reconstructed from a document: a header row plus
// data rows of text cells. Cells may be empty.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Receiver holds counterparty details pulled out of a narration.
type Receiver struct {
	Name    *string `json:"name"`
	Account *string `json:"account"`
	VPA     *string `json:"vpa"`
}

// NarrationFacets is the structured decomposition of a free-text narration.
// All fields are optional; Category and Remarks are never nil so they
// marshal as [] rather than null.
type NarrationFacets struct {
	PaymentMethod        *string  `json:"payment_method"`
	UPIID                *string  `json:"upi_id"`
	TransactionReference *string  `json:"transaction_reference"`
	Receiver             Receiver `json:"receiver_details"`
	BankPeer             *string  `json:"bank_peer"`
	Merchant             *string  `json:"merchant"`
	Category             []string `json:"category"`
	Remarks              []string `json:"remarks"`
	PaymentGateway       *string  `json:"payment_gateway"`
}

// NewNarrationFacets returns facets with empty (non-nil) slice fields.
func NewNarrationFacets() NarrationFacets {
	return NarrationFacets{
		Category: []string{},
		Remarks:  []string{},
	}
}

// Transaction is one extracted statement row. Amount is always a
// non-negative magnitude; direction lives in TransactionType. A
// TransactionDate that failed to normalize keeps its original text.
type Transaction struct {
	TransactionDate *string  `json:"transaction_date"`
	TransactionType *string  `json:"transaction_type"`
	Amount          *float64 `json:"amount"`
	Narration       string   `json:"narration"`
	Balance         *float64 `json:"balance"`
	Account         *string  `json:"account"`
	NarrationFacets
	ConfidenceScore float64 `json:"confidence_score"`
}

// StatementPeriod is the date range covered by a statement. Zero, one or
// both bounds may be known; a single known date is reported as Date.
type StatementPeriod struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
	Date *string `json:"date,omitempty"`
}

// AccountMetadata holds account and bank details found in statement
// header text.
type AccountMetadata struct {
	AccountNumber   *string         `json:"account_number"`
	AccountHolder   *string         `json:"account_holder"`
	BankName        *string         `json:"bank_name"`
	Branch          *string         `json:"branch"`
	IFSCCode        *string         `json:"ifsc_code"`
	Phone           *string         `json:"phone"`
	Email           *string         `json:"email"`
	StatementPeriod StatementPeriod `json:"statement_period"`
}

// MerchantInsight is the per-counterparty aggregate over all extracted
// transactions. Amount statistics are nil when no numeric amounts exist;
// StdAmount additionally requires at least two.
type MerchantInsight struct {
	DisplayName  string   `json:"display_name"`
	Count        int      `json:"count"`
	AvgAmount    *float64 `json:"avg_amount"`
	MedianAmount *float64 `json:"median_amount"`
	StdAmount    *float64 `json:"std_amount"`
	FirstSeen    *string  `json:"first_seen"`
	LastSeen     *string  `json:"last_seen"`
	CommonDays   []int    `json:"common_days"`
}

// ConfidenceSummary aggregates per-transaction confidence scores for a
// whole document.
type ConfidenceSummary struct {
	OverallScore       float64 `json:"overall_score"`
	TotalTransactions  int     `json:"total_transactions"`
	HighConfidenceTxns int     `json:"high_confidence_txns"`
}

// AnalysisResult is the payload of a successful (or partially successful)
// analysis.
type AnalysisResult struct {
	AccountInfo       AccountMetadata            `json:"account_info"`
	Transactions      []Transaction              `json:"transactions"`
	ConfidenceSummary *ConfidenceSummary         `json:"confidence_summary,omitempty"`
	MerchantInsights  map[string]MerchantInsight `json:"merchant_insights"`
	SkippedRows       int                        `json:"skipped_rows"`
}

// Response is the envelope returned for every analysis request.
type Response struct {
	Success    int            `json:"success"`
	StatusCode int            `json:"status_code"`
	Message    string         `json:"message"`
	Result     AnalysisResult `json:"result"`
	Errors     []string       `json:"errors,omitempty"`
}

// NewAnalysisResult returns a result whose slice and map fields marshal
// as empty containers rather than null.
func NewAnalysisResult() AnalysisResult {
	return AnalysisResult{
		Transactions:     []Transaction{},
		MerchantInsights: map[string]MerchantInsight{},
	}
}
