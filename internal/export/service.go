// Package export renders stored invoices as CSV or XLSX for download.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/entity"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/repository"
)

// Service is a tiny façade over the invoice repository that produces export
// bytes.
type Service struct {
	repo   repository.InvoiceRepository
	logger *slog.Logger
}

func NewService(repo repository.InvoiceRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

var csvHeader = []string{"ID", "Company Name", "Invoice Date", "Total Amount"}

// ExportCSV writes the filtered invoices as CSV. An empty result still
// produces the header row.
func (s *Service) ExportCSV(ctx context.Context, filter repository.SearchFilter) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, common.WrapError(err, "query invoices")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	for _, r := range recs {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.CompanyName,
			r.InvoiceDate,
			strconv.FormatFloat(r.TotalAmount, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv write: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}

	s.logger.Info("export.csv.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ExportXLSX returns an XLSX workbook for the filtered invoices.
func (s *Service) ExportXLSX(ctx context.Context, filter repository.SearchFilter) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, common.WrapError(err, "query invoices")
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook only carries ours.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{"ID", "Company Name", "Invoice Date", "Total Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.ID)
		write(2, truncate(r.CompanyName, 200))
		write(3, r.InvoiceDate)
		write(4, r.TotalAmount)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 36)
	_ = f.SetColWidth(sheet, "C", "C", 14)
	_ = f.SetColWidth(sheet, "D", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// Records exposes the filtered rows directly for callers that render their
// own output.
func (s *Service) Records(ctx context.Context, filter repository.SearchFilter) ([]entity.InvoiceRecord, error) {
	return s.repo.Search(ctx, filter)
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
