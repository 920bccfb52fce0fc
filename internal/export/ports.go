// Package export defines the outbound ledger export ports and the factory
// that selects a concrete backend from configuration.
package export

import (
	"context"

	"github.com/caiograbovskii/financaspro/internal/core"
)

// LedgerWriter appends one ledger transaction to the export destination,
// returning a backend-specific row reference.
type LedgerWriter interface {
	Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error
