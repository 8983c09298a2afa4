package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

// MaxCompanyNameLength bounds company names; anything longer is almost
// certainly OCR noise rather than a name.
const MaxCompanyNameLength = 200

// Result is the outcome of validating a candidate record. Reasons are ordered
// and human-readable; an empty Reasons slice means Valid.
type Result struct {
	Valid   bool
	Reasons []string
}

// Normalized holds the canonical values extracted from a candidate record.
// It is only meaningful when validation succeeded.
type Normalized struct {
	CompanyName string
	InvoiceDate string // YYYY-MM-DD
	TotalAmount float64
}

// NormalizeCandidate validates a candidate record and returns its canonical
// form. Malformed input is the expected case from free-text extraction, so
// every failure is reported as a reason rather than an error.
func NormalizeCandidate(c entity.CandidateRecord) (Normalized, Result) {
	var n Normalized
	var reasons []string

	company := strings.TrimSpace(c.CompanyName)
	switch {
	case company == "" || company == entity.UnknownField:
		reasons = append(reasons, "invalid company name")
	case utf8.RuneCountInString(company) > MaxCompanyNameLength:
		reasons = append(reasons, "company name too long")
	default:
		n.CompanyName = company
	}

	if iso, ok := ParseDate(c.InvoiceDate); ok {
		n.InvoiceDate = iso
	} else {
		reasons = append(reasons, "invalid invoice date")
	}

	if amount, ok := ParseAmount(c.TotalAmount); !ok {
		reasons = append(reasons, "invalid total amount")
	} else if amount < 0 {
		reasons = append(reasons, "total amount must be non-negative")
	} else {
		n.TotalAmount = amount
	}

	return n, Result{Valid: len(reasons) == 0, Reasons: reasons}
}

// Validate checks candidate completeness without returning the canonical
// values.
func Validate(c entity.CandidateRecord) Result {
	_, res := NormalizeCandidate(c)
	return res
}
