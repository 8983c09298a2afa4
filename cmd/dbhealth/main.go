// Command dbhealth opens the configured database, verifies the schema, and
// prints table statistics.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/common"
	"github.com/VinayakPunj/Invoice-Data-Extractor/internal/repository"
)

func main() {
	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, dialect, err := repository.Open(ctx, repository.Config{
		DSN:         cfg.Database.DSN,
		DialTimeout: cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open db", "dsn", cfg.Database.DSN, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close db", "error", cerr)
		}
	}()

	repo := repository.NewInvoiceRepository(db, dialect, logger)
	stats, err := repo.Statistics(ctx)
	if err != nil {
		logger.Error("statistics query failed", "error", err)
		os.Exit(1)
	}

	logger.Info("db OK", "dialect", dialect)
	fmt.Printf("invoices:  %d\ntotal:     %.2f\ncompanies: %d\n",
		stats.TotalInvoices, stats.TotalAmount, stats.UniqueCompanies)
}
