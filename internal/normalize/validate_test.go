package normalize

import (
	"strings"
	"testing"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

func TestValidateWellFormedCandidate(t *testing.T) {
	n, res := NormalizeCandidate(entity.CandidateRecord{
		CompanyName: "  Acme Corp  ",
		InvoiceDate: "17-Jun-24",
		TotalAmount: "$1,500.50",
	})
	if !res.Valid {
		t.Fatalf("expected valid, got reasons %v", res.Reasons)
	}
	if n.CompanyName != "Acme Corp" || n.InvoiceDate != "2024-06-17" || n.TotalAmount != 1500.50 {
		t.Fatalf("unexpected normalized values %+v", n)
	}
}

func TestValidateNegativeAmount(t *testing.T) {
	res := Validate(entity.CandidateRecord{
		CompanyName: "Acme Corp",
		InvoiceDate: "2024-06-17",
		TotalAmount: "-100.00",
	})
	if res.Valid {
		t.Fatal("negative amount must fail validation")
	}
	if len(res.Reasons) == 0 {
		t.Fatal("expected at least one reason")
	}
}

func TestValidateCollectsAllReasons(t *testing.T) {
	res := Validate(entity.DefaultCandidate())
	if res.Valid {
		t.Fatal("default candidate must fail validation")
	}
	if len(res.Reasons) != 3 {
		t.Fatalf("expected 3 reasons, got %v", res.Reasons)
	}
	// Reasons come back in field order: company, date, amount.
	if res.Reasons[0] != "invalid company name" {
		t.Fatalf("unexpected first reason %q", res.Reasons[0])
	}
}

func TestValidateCompanyNameLengthBound(t *testing.T) {
	res := Validate(entity.CandidateRecord{
		CompanyName: strings.Repeat("x", MaxCompanyNameLength+1),
		InvoiceDate: "2024-06-17",
		TotalAmount: "10.00",
	})
	if res.Valid {
		t.Fatal("oversized company name must fail validation")
	}
}

func TestValidateNeverPanicsOnGarbage(t *testing.T) {
	// Free-text extraction output is hostile by default.
	_ = Validate(entity.CandidateRecord{
		CompanyName: "\x00\xff",
		InvoiceDate: "Total amount:",
		TotalAmount: "--..,,",
	})
}
