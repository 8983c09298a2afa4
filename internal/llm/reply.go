package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

// Patterns for the labeled-field reply contract established by
// ExtractionPrompt.
var (
	reCompany = regexp.MustCompile(`Company name:\s*([^\n]+?)\s*Invoice date:`)
	reDate    = regexp.MustCompile(`Invoice date:\s*([^\n]+?)\s*Total amount:`)
	reAmount  = regexp.MustCompile(`Total amount:\s*([^\n]+?)(?:\n|$)`)

	reJSONFence = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
)

// ParseReply extracts the three labeled fields from an LLM reply. Fields
// missing from the reply are substituted with the documented default rather
// than failing; separator disambiguation of the amount is left to the
// normalization utilities. JSON-object replies (some models ignore the
// labeled-text instruction) are handled by mapping the schema-validated
// object directly.
func ParseReply(reply string) entity.CandidateRecord {
	if c, ok := parseJSONReply(reply); ok {
		return c
	}

	out := entity.DefaultCandidate()
	if m := reCompany.FindStringSubmatch(reply); m != nil {
		out.CompanyName = strings.TrimSpace(m[1])
	}
	if m := reDate.FindStringSubmatch(reply); m != nil {
		out.InvoiceDate = strings.TrimSpace(m[1])
	}
	if m := reAmount.FindStringSubmatch(reply); m != nil {
		out.TotalAmount = strings.TrimRight(strings.TrimSpace(m[1]), ".")
	}
	return out
}

// parseJSONReply accepts a bare JSON object or one inside a markdown fence,
// validated against the invoice schema. Missing fields keep their defaults.
func parseJSONReply(reply string) (entity.CandidateRecord, bool) {
	doc := strings.TrimSpace(reply)
	if m := reJSONFence.FindStringSubmatch(doc); m != nil {
		doc = m[1]
	}
	if !strings.HasPrefix(doc, "{") {
		return entity.CandidateRecord{}, false
	}
	if err := ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), []byte(doc)); err != nil {
		return entity.CandidateRecord{}, false
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		return entity.CandidateRecord{}, false
	}

	out := entity.DefaultCandidate()
	if v := fieldAsString(m, "company_name"); v != "" {
		out.CompanyName = v
	}
	if v := fieldAsString(m, "invoice_date"); v != "" {
		out.InvoiceDate = v
	}
	if v := fieldAsString(m, "total_amount"); v != "" {
		out.TotalAmount = v
	}
	return out, true
}

func fieldAsString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	default:
		return ""
	}
}
