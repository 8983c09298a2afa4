package entity

import "time"

// InvoiceRecord is the durable invoice entity. ID and timestamps are assigned
// by the store on insert; InvoiceDate is canonical ISO (YYYY-MM-DD).
type InvoiceRecord struct {
	ID          int64     `json:"id"`
	CompanyName string    `json:"company_name"`
	InvoiceDate string    `json:"invoice_date"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CandidateRecord is the transient, unvalidated draft produced by the
// extraction adapter. Fields are raw LLM output text until normalized.
type CandidateRecord struct {
	CompanyName string `json:"company_name"`
	InvoiceDate string `json:"invoice_date"`
	TotalAmount string `json:"total_amount"`
}

// UnknownField is the documented default substituted for fields the LLM
// reply does not contain.
const UnknownField = "Unknown"

// DefaultCandidate returns a candidate with every field set to the default.
func DefaultCandidate() CandidateRecord {
	return CandidateRecord{
		CompanyName: UnknownField,
		InvoiceDate: UnknownField,
		TotalAmount: UnknownField,
	}
}
