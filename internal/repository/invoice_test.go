package repository

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestRepo(t *testing.T) InvoiceRepository {
	t.Helper()
	ctx := context.Background()
	db, dialect, err := Open(ctx, Config{DSN: filepath.Join(t.TempDir(), "invoices.db")}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewInvoiceRepository(db, dialect, nil)
}

func TestInsertAndSearchRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	id, err := repo.Insert(ctx, "Acme Corp", "2024-06-17", 1500.50)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d", id)
	}

	got, err := repo.Search(ctx, SearchFilter{FromDate: "2024-06-01", ToDate: "2024-06-30"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	rec := got[0]
	if rec.ID != id || rec.CompanyName != "Acme Corp" || rec.InvoiceDate != "2024-06-17" || rec.TotalAmount != 1500.50 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", rec)
	}
}

func TestSearchFilters(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	seed := []struct {
		company string
		date    string
		amount  float64
	}{
		{"Acme Corp", "2024-06-17", 100},
		{"Beta Ltd", "2024-07-01", 200},
		{"Acme Corp", "2024-08-05", 50},
	}
	for _, s := range seed {
		if _, err := repo.Insert(ctx, s.company, s.date, s.amount); err != nil {
			t.Fatalf("insert %s: %v", s.company, err)
		}
	}

	// Inclusive date bounds.
	got, err := repo.Search(ctx, SearchFilter{FromDate: "2024-06-17", ToDate: "2024-07-01"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("date range matched %d records", len(got))
	}
	// Newest date first.
	if got[0].InvoiceDate != "2024-07-01" || got[1].InvoiceDate != "2024-06-17" {
		t.Fatalf("wrong order: %q, %q", got[0].InvoiceDate, got[1].InvoiceDate)
	}

	// Company substring match is case-insensitive and combines with dates.
	got, err = repo.Search(ctx, SearchFilter{FromDate: "2024-01-01", ToDate: "2024-12-31", Company: "acme"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("company filter matched %d records", len(got))
	}
	for _, rec := range got {
		if rec.CompanyName != "Acme Corp" {
			t.Fatalf("unexpected company %q", rec.CompanyName)
		}
	}

	// No match is an empty slice, not an error.
	got, err = repo.Search(ctx, SearchFilter{Company: "nobody"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestGetAllOrdersByID(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if _, err := repo.Insert(ctx, "Later Date", "2024-12-01", 10); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(ctx, "Earlier Date", "2024-01-01", 20); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("getall: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0].CompanyName != "Later Date" || got[1].CompanyName != "Earlier Date" {
		t.Fatalf("insertion order not preserved: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	id, err := repo.Insert(ctx, "Acme Corp", "2024-06-17", 100)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	ok, err := repo.Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to report a removed row")
	}

	// Deleting a missing id is not an error, just false.
	ok, err = repo.Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if ok {
		t.Fatal("expected false for missing id")
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("getall: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty table, got %d records", len(got))
	}
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	// Empty table yields zeros.
	stats, err := repo.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalInvoices != 0 || stats.TotalAmount != 0 || stats.UniqueCompanies != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}

	seed := []struct {
		company string
		amount  float64
	}{
		{"Acme Corp", 100},
		{"Beta Ltd", 200},
		{"Acme Corp", 50},
	}
	for _, s := range seed {
		if _, err := repo.Insert(ctx, s.company, "2024-06-17", s.amount); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	stats, err = repo.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalInvoices != 3 {
		t.Fatalf("total invoices = %d", stats.TotalInvoices)
	}
	if stats.TotalAmount != 350 {
		t.Fatalf("total amount = %v", stats.TotalAmount)
	}
	if stats.UniqueCompanies != 2 {
		t.Fatalf("unique companies = %d", stats.UniqueCompanies)
	}
}
