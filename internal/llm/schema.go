package llm

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. JSON-mode replies are validated against it before their fields
// are trusted.
func BuildInvoiceJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"company_name": map[string]any{"type": "string"},
			"invoice_date": map[string]any{"type": "string"},
			"total_amount": map[string]any{"type": []string{"string", "number"}},
		},
	}
}
