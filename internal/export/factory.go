package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caiograbovskii/financaspro/internal/config"
	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/export/google"
	"github.com/caiograbovskii/financaspro/internal/export/memory"
)

// Backend names accepted by New.
const (
	MemoryBackend = "memory"
	SheetsBackend = "sheets"
	NoneBackend   = "none"
)

// New builds the ledger writer named by the configuration. The cleanup
// function is never nil.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (LedgerWriter, CleanupFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}
	noop := func() error { return nil }

	switch cfg.ExportBackend {
	case MemoryBackend:
		logger.Info("Initialized in-memory export backend")
		return memory.New(), noop, nil

	case SheetsBackend:
		cli, err := google.NewClient(ctx, google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleCredentialsFile,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("initialize Google Sheets export: %w", err)
		}
		logger.Info("Initialized Google Sheets export backend",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
		return cli, noop, nil

	case NoneBackend:
		logger.Info("Ledger export disabled")
		return discard{}, noop, nil

	default:
		return nil, nil, fmt.Errorf("invalid export backend: %s", cfg.ExportBackend)
	}
}

// discard accepts every transaction without writing it anywhere.
type discard struct{}

func (discard) Append(context.Context, core.Transaction) (string, error) {
	return "", nil
}
