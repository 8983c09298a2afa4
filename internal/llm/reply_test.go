package llm

import "testing"

func TestParseReplyLabeledFields(t *testing.T) {
	reply := "Company name: Acme Corp Invoice date: 17-Jun-24 Total amount: $1,500.50\n"
	c := ParseReply(reply)
	if c.CompanyName != "Acme Corp" {
		t.Fatalf("company = %q", c.CompanyName)
	}
	if c.InvoiceDate != "17-Jun-24" {
		t.Fatalf("date = %q", c.InvoiceDate)
	}
	if c.TotalAmount != "$1,500.50" {
		t.Fatalf("amount = %q", c.TotalAmount)
	}
}

func TestParseReplyMultiline(t *testing.T) {
	reply := "Company name: Acme Corp Invoice date: 2024-06-17 Total amount: 99.00\nThanks!"
	c := ParseReply(reply)
	if c.TotalAmount != "99.00" {
		t.Fatalf("amount = %q", c.TotalAmount)
	}
}

func TestParseReplyMissingFieldsDefaultToUnknown(t *testing.T) {
	c := ParseReply("I could not find any invoice data in this text.")
	if c.CompanyName != "Unknown" || c.InvoiceDate != "Unknown" || c.TotalAmount != "Unknown" {
		t.Fatalf("expected all-Unknown candidate, got %+v", c)
	}
}

func TestParseReplyPartialFields(t *testing.T) {
	// Amount label present but company/date structure broken.
	c := ParseReply("Total amount: 42.00\n")
	if c.TotalAmount != "42.00" {
		t.Fatalf("amount = %q", c.TotalAmount)
	}
	if c.CompanyName != "Unknown" || c.InvoiceDate != "Unknown" {
		t.Fatalf("expected Unknown defaults, got %+v", c)
	}
}

func TestParseReplyJSONObject(t *testing.T) {
	reply := `{"company_name":"Acme Corp","invoice_date":"2024-06-17","total_amount":1500.5}`
	c := ParseReply(reply)
	if c.CompanyName != "Acme Corp" || c.InvoiceDate != "2024-06-17" {
		t.Fatalf("unexpected candidate %+v", c)
	}
	if c.TotalAmount != "1500.5" {
		t.Fatalf("amount = %q", c.TotalAmount)
	}
}

func TestParseReplyJSONFence(t *testing.T) {
	reply := "```json\n{\"company_name\":\"Acme\",\"total_amount\":\"12.00\"}\n```"
	c := ParseReply(reply)
	if c.CompanyName != "Acme" || c.TotalAmount != "12.00" {
		t.Fatalf("unexpected candidate %+v", c)
	}
	// Field absent from the JSON keeps the default.
	if c.InvoiceDate != "Unknown" {
		t.Fatalf("date = %q", c.InvoiceDate)
	}
}

func TestParseReplyJSONWrongTypesFallsBack(t *testing.T) {
	// company_name as a number fails schema validation; the regex path then
	// finds nothing, leaving defaults.
	c := ParseReply(`{"company_name":12}`)
	if c.CompanyName != "Unknown" {
		t.Fatalf("expected Unknown, got %+v", c)
	}
}
