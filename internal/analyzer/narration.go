package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Structured narration cascades. These machine-generated formats are
// unambiguous, so the first one that matches short-circuits every generic
// rule below.
var (
	// UPI/<id>/<remark>/<bank>/<ref>
	upiStructuredRe = regexp.MustCompile(`UPI/([^/]+)/([^/]+)/([^/]+)/([^\s/]+)`)
	// VSI/<merchant>/<datetime>/<ref>
	vsiStructuredRe = regexp.MustCompile(`VSI/([^/]+)/([^/]+)/([^\s/]+)`)
	// IMPS/<10+ digit ref>/<name>/<bank>
	impsStructuredRe = regexp.MustCompile(`IMPS/(\d{10,})/([^/]+)/([^/]+)`)
)

// paymentMethodTable maps narration keywords to a payment method tag.
// Entries are ordered most-specific-first; the first group with any
// keyword hit wins.
var paymentMethodTable = []struct {
	method   string
	keywords []string
}{
	{"UPI", []string{"UPI", "IMPS/P2M", "PHONEPE", "GPAY", "PAYTM"}},
	{"IMPS", []string{"IMPS", "IMPS/P2A"}},
	{"NEFT", []string{"NEFT"}},
	{"RTGS", []string{"RTGS"}},
	{"BBPS", []string{"BBPS"}},
	{"CARD", []string{"CARD", "DEBIT CARD", "CREDIT CARD", "POS", "VPA/MMT", "VPA/MMS"}},
	{"CASH", []string{"CASH DEP", "CASH WDL"}},
	{"CHEQUE", []string{"CHQ", "CHEQUE", "CQ", "CLR"}},
	{"DIVIDEND", []string{"DIVIDEND", "DIV"}},
	{"INTEREST", []string{"INT PAID", "INT CR"}},
	{"ECS", []string{"ECS"}},
	{"SALARY", []string{"SALARY"}},
	{"BILL PAY", []string{"BILLPAY"}},
	{"ATM", []string{"ATM"}},
}

// vpaRe matches an email-shaped token, which in payment narrations is a
// UPI handle rather than an email address.
var vpaRe = regexp.MustCompile(`(?i)[A-Z0-9.\-_]+@[A-Z]{2,}`)

// Transaction-reference extractors, tried in order.
var txnRefPatterns = []*regexp.Regexp{
	// Labeled reference: RRN/REF/... followed by 10-25 alphanumerics.
	regexp.MustCompile(`\b(?:RRN|REF|TRF|TXN|UTR|UTR NO|NFS|CMS|ID)\s*[:.]?\s*([A-Z0-9]{10,25})\b`),
	// Bank-code prefixed reference token.
	regexp.MustCompile(`\b((?:YBL|AXI|ICI|KOT|PNB|PYTM|PTM|HDFC|ICICI|YES|SBI)[A-Za-z0-9]{6,25})\b`),
	// Bare long digit run.
	regexp.MustCompile(`\b(\d{10,})\b`),
}

// Receiver relation patterns, tried in order.
var receiverPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:TO|FROM|BY)\s+([A-Z0-9\s.&,\-_']{3,}(?:\s(?:A/C|ACC|AC|ACCOUNT|NO)\s*\d+)?)\b`),
	regexp.MustCompile(`(?:TRANSFER TO|PAYMENT TO)\s+([A-Z\s.&,\-_']{3,})`),
	regexp.MustCompile(`CR BY\s+([A-Z\s.&,\-_']{3,})`),
}

var (
	digitRun6Re  = regexp.MustCompile(`\d{6,}`)
	letterRun3Re = regexp.MustCompile(`[A-Z]{3,}`)
)

// bankKeywords lists peer bank names and abbreviations, full names before
// abbreviations so "HDFC BANK" wins over "HDFC".
var bankKeywords = []string{
	"STATE BANK OF INDIA",
	"HDFC BANK",
	"ICICI BANK",
	"AXIS BANK",
	"YES BANK",
	"KOTAK MAHINDRA BANK",
	"PUNJAB NATIONAL BANK",
	"UNION BANK OF INDIA",
	"CANARA BANK",
	"INDIAN BANK",
	"INDUSIND BANK",
	"FEDERAL BANK",
	"RBL BANK",
	"BANDHAN BANK",
	"IDFC FIRST BANK",
	"BANK OF BARODA",
	"UCO BANK",
	"CENTRAL BANK OF INDIA",
	"SBI",
	"HDFC",
	"ICICI",
	"AXIS",
	"KOTAK",
	"PNB",
	"UNION",
	"CANARA",
	"INDUSIND",
	"BOB",
	"UBI",
	"IOB",
	"BOI",
	"CORP",
}

// merchantEntry ties a narration keyword to merchant, category and
// gateway effects. Every matching keyword contributes its category;
// merchant and gateway are set only by the first match.
type merchantEntry struct {
	keyword  string
	merchant string
	category string
	gateway  string
}

var merchantTable = []merchantEntry{
	{keyword: "AMAZON", merchant: "AMAZON", category: "E-COMMERCE"},
	{keyword: "ZOMATO", merchant: "ZOMATO", category: "FOOD_DELIVERY"},
	{keyword: "SWIGGY", merchant: "SWIGGY", category: "FOOD_DELIVERY"},
	{keyword: "GOOGLE PAY", merchant: "GOOGLE PAY", category: "PAYMENT_APP", gateway: "GOOGLE"},
	{keyword: "PHONEPE", merchant: "PHONEPE", category: "PAYMENT_APP", gateway: "PHONEPE"},
	{keyword: "PAYTM", merchant: "PAYTM", category: "PAYMENT_APP", gateway: "PAYTM"},
	{keyword: "RELIANCE", merchant: "RELIANCE", category: "RETAIL"},
	{keyword: "VODAFONE", merchant: "VODAFONE", category: "TELECOM_BILL"},
	{keyword: "AIRTEL", merchant: "AIRTEL", category: "TELECOM_BILL"},
	{keyword: "JIO", merchant: "JIO", category: "TELECOM_BILL"},
	{keyword: "IRCTC", merchant: "IRCTC", category: "TRAVEL"},
	{keyword: "UBER", merchant: "UBER", category: "TRANSPORT"},
	{keyword: "OLA", merchant: "OLA", category: "TRANSPORT"},
	{keyword: "NETFLIX", merchant: "NETFLIX", category: "SUBSCRIPTION"},
	{keyword: "SPOTIFY", merchant: "SPOTIFY", category: "SUBSCRIPTION"},
	{keyword: "CRED", merchant: "CRED", category: "LOAN_REPAYMENT", gateway: "CRED"},
	{keyword: "ELECTRICITY", category: "UTILITY_BILL"},
	{keyword: "WATER", category: "UTILITY_BILL"},
	{keyword: "GAS", category: "UTILITY_BILL"},
	{keyword: "LOAN EMI", category: "LOAN_REPAYMENT"},
	{keyword: "RENT", category: "HOUSING"},
	{keyword: "SALARY", category: "INCOME"},
	{keyword: "SCHOOL FEES", category: "EDUCATION"},
	{keyword: "INSURANCE", category: "INSURANCE"},
	{keyword: "INVESTMENT", category: "INVESTMENT"},
	{keyword: "SIP", category: "INVESTMENT"},
	{keyword: "MUTUAL FUND", category: "INVESTMENT"},
	{keyword: "FOOD", category: "FOOD_EXPENSE"},
	{keyword: "MEDICAL", category: "HEALTH_EXPENSE"},
	{keyword: "PHARMACY", category: "HEALTH_EXPENSE"},
	{keyword: "CHEMIST", category: "HEALTH_EXPENSE"},
	{keyword: "ECOM", category: "E-COMMERCE"},
	{keyword: "GROCERY", category: "GROCERIES"},
	{keyword: "FUEL", category: "TRANSPORT_FUEL"},
	{keyword: "TAX", category: "TAXES"},
	{keyword: "LOAN DISB", category: "LOAN_DISBURSEMENT"},
}

// remarkTags are appended independently when their substring is present.
var remarkTags = []string{"REFUND", "TRANSFER", "DEBITED", "CREDITED"}

// Fallback numeric extractors for receiver account candidates.
var (
	groupedAccountRe = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4,12}\b`)
	bareAccountRe    = regexp.MustCompile(`\b\d{8,20}\b`)
	prefixedRefRe    = regexp.MustCompile(`(?:UPI|REF|TXN)[\s\-:]*(\d{8,16})`)
	transferRefRe    = regexp.MustCompile(`(?:NEFT|RTGS|IMPS)[\s\-:]*[A-Z]*(\d{8,16})`)
)

// AnalyzeNarration decomposes a free-text narration into payment facets.
// Matching is case-insensitive (the narration is uppercased first); an
// empty narration yields all-null facets.
func AnalyzeNarration(narration string) models.NarrationFacets {
	facets := models.NewNarrationFacets()
	if strings.TrimSpace(narration) == "" {
		return facets
	}
	upper := strings.ToUpper(narration)

	if m := upiStructuredRe.FindStringSubmatch(upper); m != nil {
		facets.PaymentMethod = strPtr("UPI")
		facets.UPIID = strPtr(strings.TrimSpace(m[1]))
		facets.TransactionReference = strPtr(strings.TrimSpace(m[4]))
		facets.BankPeer = strPtr(strings.TrimSpace(m[3]))
		facets.Remarks = append(facets.Remarks, strings.TrimSpace(m[2]))
		return facets
	}

	if m := vsiStructuredRe.FindStringSubmatch(upper); m != nil {
		facets.PaymentMethod = strPtr("CARD")
		facets.Merchant = strPtr(strings.TrimSpace(m[1]))
		facets.TransactionReference = strPtr(strings.TrimSpace(m[3]))
		return facets
	}

	if m := impsStructuredRe.FindStringSubmatch(upper); m != nil {
		facets.PaymentMethod = strPtr("IMPS")
		facets.TransactionReference = strPtr(strings.TrimSpace(m[1]))
		facets.Receiver.Name = strPtr(strings.TrimSpace(m[2]))
		facets.BankPeer = strPtr(strings.TrimSpace(m[3]))
		facets.Remarks = append(facets.Remarks, "IMPS TRANSFER")
		return facets
	}

	// No cascade matched: the generic rules below apply independently.

	for _, group := range paymentMethodTable {
		if containsAny(upper, group.keywords) {
			facets.PaymentMethod = strPtr(group.method)
			break
		}
	}

	if facets.UPIID == nil {
		if m := vpaRe.FindString(upper); m != "" {
			facets.UPIID = strPtr(strings.TrimSpace(m))
			facets.Receiver.VPA = facets.UPIID
		}
	}

	if facets.TransactionReference == nil {
		for _, re := range txnRefPatterns {
			if m := re.FindStringSubmatch(upper); m != nil {
				facets.TransactionReference = strPtr(strings.TrimSpace(m[1]))
				break
			}
		}
	}

	for _, re := range receiverPatterns {
		m := re.FindStringSubmatch(upper)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		// A long digit run with no real words is an account, not a name.
		if digitRun6Re.MatchString(candidate) && !letterRun3Re.MatchString(candidate) {
			facets.Receiver.Account = strPtr(candidate)
		} else {
			facets.Receiver.Name = strPtr(candidate)
		}
		break
	}

	for _, bank := range bankKeywords {
		if strings.Contains(upper, bank) {
			facets.BankPeer = strPtr(bank)
			break
		}
	}

	for _, entry := range merchantTable {
		if !strings.Contains(upper, entry.keyword) {
			continue
		}
		if entry.merchant != "" && facets.Merchant == nil {
			facets.Merchant = strPtr(entry.merchant)
		}
		if entry.category != "" && !containsString(facets.Category, entry.category) {
			facets.Category = append(facets.Category, entry.category)
		}
		if entry.gateway != "" && facets.PaymentGateway == nil {
			facets.PaymentGateway = strPtr(entry.gateway)
		}
	}

	for _, tag := range remarkTags {
		if strings.Contains(upper, tag) && !containsString(facets.Remarks, tag) {
			facets.Remarks = append(facets.Remarks, tag)
		}
	}

	if facets.Receiver.Account == nil {
		if candidates := extractAccountCandidates(upper); len(candidates) > 0 {
			facets.Receiver.Account = strPtr(candidates[0])
		}
	}

	return facets
}

// extractAccountCandidates unions all numeric account-shaped candidates
// and orders them longest-first (longer runs are likelier to be full
// account numbers than partial references).
func extractAccountCandidates(upper string) []string {
	seen := map[string]bool{}

	for _, m := range groupedAccountRe.FindAllString(upper, -1) {
		cleaned := strings.NewReplacer(" ", "", "-", "").Replace(m)
		seen[cleaned] = true
	}
	for _, m := range bareAccountRe.FindAllString(upper, -1) {
		seen[m] = true
	}
	for _, m := range prefixedRefRe.FindAllStringSubmatch(upper, -1) {
		seen[m[1]] = true
	}
	for _, m := range transferRefRe.FindAllStringSubmatch(upper, -1) {
		seen[m[1]] = true
	}

	candidates := make([]string, 0, len(seen))
	for c := range seen {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return candidates
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }

func f64Ptr(v float64) *float64 { return &v }
