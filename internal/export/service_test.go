package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/repository"
)

type stubRepo struct {
	recs      []entity.InvoiceRecord
	err       error
	gotFilter repository.SearchFilter
}

func (s *stubRepo) Insert(context.Context, string, string, float64) (int64, error) { return 0, nil }

func (s *stubRepo) Search(_ context.Context, filter repository.SearchFilter) ([]entity.InvoiceRecord, error) {
	s.gotFilter = filter
	return s.recs, s.err
}

func (s *stubRepo) GetAll(context.Context) ([]entity.InvoiceRecord, error) { return s.recs, s.err }

func (s *stubRepo) Delete(context.Context, int64) (bool, error) { return false, nil }

func (s *stubRepo) Statistics(context.Context) (repository.Statistics, error) {
	return repository.Statistics{}, nil
}

func TestExportCSV(t *testing.T) {
	repo := &stubRepo{recs: []entity.InvoiceRecord{
		{ID: 1, CompanyName: "Acme Corp", InvoiceDate: "2024-06-17", TotalAmount: 1500.5},
		{ID: 2, CompanyName: "Beta, Ltd", InvoiceDate: "2024-07-01", TotalAmount: 99},
	}}
	svc := NewService(repo, nil)

	out, err := svc.ExportCSV(context.Background(), repository.SearchFilter{Company: "a"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if repo.gotFilter.Company != "a" {
		t.Fatalf("filter not forwarded: %+v", repo.gotFilter)
	}

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][1] != "Company Name" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "Acme Corp" || rows[1][3] != "1500.50" {
		t.Fatalf("row = %v", rows[1])
	}
	// Comma in the company name must survive the round trip.
	if rows[2][1] != "Beta, Ltd" {
		t.Fatalf("row = %v", rows[2])
	}
}

func TestExportCSVEmptyKeepsHeader(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)
	out, err := svc.ExportCSV(context.Background(), repository.SearchFilter{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(string(out), "ID,Company Name,Invoice Date,Total Amount") {
		t.Fatalf("output = %q", out)
	}
}

func TestExportCSVRepoError(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("boom")}, nil)
	if _, err := svc.ExportCSV(context.Background(), repository.SearchFilter{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestExportXLSX(t *testing.T) {
	repo := &stubRepo{recs: []entity.InvoiceRecord{
		{ID: 7, CompanyName: "Acme Corp", InvoiceDate: "2024-06-17", TotalAmount: 42},
	}}
	svc := NewService(repo, nil)

	out, err := svc.ExportXLSX(context.Background(), repository.SearchFilter{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue("Invoices", "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "Acme Corp" {
		t.Fatalf("B2 = %q", got)
	}
	if header, _ := f.GetCellValue("Invoices", "D1"); header != "Total Amount" {
		t.Fatalf("D1 = %q", header)
	}
}
