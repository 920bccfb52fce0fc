package storage

import (
	"encoding/json"
	"fmt"

	"github.com/caiograbovskii/financaspro/internal/core"
)

// Transaction sync states. New rows start pending; the worker moves them to
// synced or error after attempting the export.
const (
	SyncPending = "pending"
	SyncSynced  = "synced"
	SyncError   = "error"
)

// PendingSyncTransaction is the minimal payload for sync queue messages.
type PendingSyncTransaction struct {
	ID     string
	UserID string
}

// goalRow and investmentRow hold the JSON-encoded columns before decoding.
type goalRow struct {
	core.Goal
	linkedJSON string
	deadline   string
}

type investmentRow struct {
	core.InvestmentAsset
	historyJSON  string
	purchaseDate string
}

func (r *goalRow) decode() (core.Goal, error) {
	g := r.Goal
	if r.linkedJSON != "" {
		if err := json.Unmarshal([]byte(r.linkedJSON), &g.LinkedInvestmentIDs); err != nil {
			return core.Goal{}, fmt.Errorf("decode linked investment ids for goal %s: %w", g.ID, err)
		}
	}
	if r.deadline != "" {
		d, err := core.ParseDate(r.deadline)
		if err != nil {
			return core.Goal{}, fmt.Errorf("decode deadline for goal %s: %w", g.ID, err)
		}
		g.Deadline = d
	}
	return g, nil
}

func (r *investmentRow) decode() (core.InvestmentAsset, error) {
	inv := r.InvestmentAsset
	if r.historyJSON != "" {
		if err := json.Unmarshal([]byte(r.historyJSON), &inv.History); err != nil {
			return core.InvestmentAsset{}, fmt.Errorf("decode history for investment %s: %w", inv.ID, err)
		}
	}
	if r.purchaseDate != "" {
		d, err := core.ParseDate(r.purchaseDate)
		if err != nil {
			return core.InvestmentAsset{}, fmt.Errorf("decode purchase date for investment %s: %w", inv.ID, err)
		}
		inv.PurchaseDate = d
	}
	return inv, nil
}

func encodeLinked(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode linked investment ids: %w", err)
	}
	return string(b), nil
}

func encodeHistory(history []core.HistoryEntry) (string, error) {
	if history == nil {
		history = []core.HistoryEntry{}
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(b), nil
}
