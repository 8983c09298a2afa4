// Command exportcsv writes stored invoices to a CSV or XLSX file, optionally
// filtered by date range and company.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/export"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/normalize"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/repository"
)

func main() {
	from := flag.String("from", "", "start date (inclusive, YYYY-MM-DD)")
	to := flag.String("to", "", "end date (inclusive, YYYY-MM-DD)")
	company := flag.String("company", "", "company name substring filter")
	out := flag.String("o", "invoices.csv", "output file")
	xlsx := flag.Bool("xlsx", false, "write XLSX instead of CSV")
	flag.Parse()

	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log)

	if *from != "" && *to != "" && !normalize.ValidateDateRange(*from, *to) {
		logger.Error("invalid date range", "from", *from, "to", *to)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, dialect, err := repository.Open(ctx, repository.Config{
		DSN:         cfg.Database.DSN,
		DialTimeout: cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close db", "error", cerr)
		}
	}()

	repo := repository.NewInvoiceRepository(db, dialect, logger)
	svc := export.NewService(repo, logger)
	filter := repository.SearchFilter{FromDate: *from, ToDate: *to, Company: *company}

	var data []byte
	if *xlsx {
		data, err = svc.ExportXLSX(ctx, filter)
	} else {
		data, err = svc.ExportCSV(ctx, filter)
	}
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("write output", "path", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *out, "bytes", len(data))
}
