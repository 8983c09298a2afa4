package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
)

// SearchFilter narrows a search. Empty fields are ignored; set fields are
// combined with AND. Dates are canonical YYYY-MM-DD and bounds are inclusive.
type SearchFilter struct {
	FromDate string
	ToDate   string
	Company  string
}

// Statistics summarizes the whole invoice table.
type Statistics struct {
	TotalInvoices   int64
	TotalAmount     float64
	UniqueCompanies int64
}

// InvoiceRepository is the persistence port for validated invoice records.
type InvoiceRepository interface {
	Insert(ctx context.Context, companyName, invoiceDate string, totalAmount float64) (int64, error)
	Search(ctx context.Context, filter SearchFilter) ([]entity.InvoiceRecord, error)
	GetAll(ctx context.Context) ([]entity.InvoiceRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Statistics(ctx context.Context) (Statistics, error)
}

type invoiceRepository struct {
	db      *sql.DB
	dialect string
	logger  *slog.Logger
}

func NewInvoiceRepository(db *sql.DB, dialect string, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{db: db, dialect: dialect, logger: logger}
}

// rebind rewrites ? placeholders to $1..$n for postgres.
func (r *invoiceRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (r *invoiceRepository) Insert(ctx context.Context, companyName, invoiceDate string, totalAmount float64) (int64, error) {
	now := time.Now().UTC()

	if r.dialect == DialectPostgres {
		query := r.rebind(`INSERT INTO invoices (company_name, invoice_date, total_amount, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?) RETURNING id`)
		var id int64
		err := r.db.QueryRowContext(ctx, query, companyName, invoiceDate, totalAmount, now, now).Scan(&id)
		if err != nil {
			r.logger.Error("repo.insert_failed", "company", companyName, "error", err)
			return 0, fmt.Errorf("%w: insert invoice: %v", common.ErrDatabase, err)
		}
		r.logger.Info("repo.insert_ok", "id", id, "company", companyName)
		return id, nil
	}

	query := `INSERT INTO invoices (company_name, invoice_date, total_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, companyName, invoiceDate, totalAmount,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		r.logger.Error("repo.insert_failed", "company", companyName, "error", err)
		return 0, fmt.Errorf("%w: insert invoice: %v", common.ErrDatabase, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert invoice id: %v", common.ErrDatabase, err)
	}
	r.logger.Info("repo.insert_ok", "id", id, "company", companyName)
	return id, nil
}

func (r *invoiceRepository) Search(ctx context.Context, filter SearchFilter) ([]entity.InvoiceRecord, error) {
	query := `SELECT id, company_name, invoice_date, total_amount, created_at, updated_at
		FROM invoices WHERE 1=1`
	args := make([]any, 0, 3)

	if filter.FromDate != "" {
		query += " AND invoice_date >= ?"
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		query += " AND invoice_date <= ?"
		args = append(args, filter.ToDate)
	}
	if filter.Company != "" {
		query += " AND LOWER(company_name) LIKE ?"
		args = append(args, "%"+strings.ToLower(filter.Company)+"%")
	}
	query += " ORDER BY invoice_date DESC, id DESC"

	return r.queryRecords(ctx, r.rebind(query), args...)
}

func (r *invoiceRepository) GetAll(ctx context.Context) ([]entity.InvoiceRecord, error) {
	query := `SELECT id, company_name, invoice_date, total_amount, created_at, updated_at
		FROM invoices ORDER BY id ASC`
	return r.queryRecords(ctx, query)
}

func (r *invoiceRepository) queryRecords(ctx context.Context, query string, args ...any) ([]entity.InvoiceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("repo.query_failed", "error", err)
		return nil, fmt.Errorf("%w: query invoices: %v", common.ErrDatabase, err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]entity.InvoiceRecord, 0)
	for rows.Next() {
		var (
			rec              entity.InvoiceRecord
			date             any
			amount           any
			created, updated any
		)
		if err := rows.Scan(&rec.ID, &rec.CompanyName, &date, &amount, &created, &updated); err != nil {
			return nil, fmt.Errorf("%w: scan invoice row: %v", common.ErrDatabase, err)
		}
		rec.InvoiceDate = coerceDate(date)
		rec.TotalAmount = coerceFloat(amount)
		rec.CreatedAt = coerceTime(created)
		rec.UpdatedAt = coerceTime(updated)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate invoice rows: %v", common.ErrDatabase, err)
	}
	return records, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.rebind("DELETE FROM invoices WHERE id = ?"), id)
	if err != nil {
		r.logger.Error("repo.delete_failed", "id", id, "error", err)
		return false, fmt.Errorf("%w: delete invoice: %v", common.ErrDatabase, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: delete invoice count: %v", common.ErrDatabase, err)
	}
	r.logger.Info("repo.delete_done", "id", id, "deleted", n > 0)
	return n > 0, nil
}

func (r *invoiceRepository) Statistics(ctx context.Context) (Statistics, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total_amount), 0), COUNT(DISTINCT company_name) FROM invoices`
	var (
		stats Statistics
		total any
	)
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalInvoices, &total, &stats.UniqueCompanies)
	if err != nil {
		r.logger.Error("repo.statistics_failed", "error", err)
		return Statistics{}, fmt.Errorf("%w: invoice statistics: %v", common.ErrDatabase, err)
	}
	stats.TotalAmount = coerceFloat(total)
	return stats, nil
}

// Drivers disagree on how DATE, NUMERIC and TIMESTAMP columns scan, so the
// row readers take `any` and coerce.

func coerceDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	case string:
		if len(t) > 10 {
			return t[:10]
		}
		return t
	case []byte:
		return coerceDate(string(t))
	default:
		return ""
	}
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(string(t), 64)
		return f
	default:
		return 0
	}
}

func coerceTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts
			}
		}
		return time.Time{}
	case []byte:
		return coerceTime(string(t))
	default:
		return time.Time{}
	}
}
