package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/portfolio"
	"github.com/caiograbovskii/financaspro/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateTransaction(ctx context.Context, t core.Transaction) error
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	CreateGoal(ctx context.Context, g core.Goal) error
	ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	UpdateGoal(ctx context.Context, g core.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	CreateInvestment(ctx context.Context, inv core.InvestmentAsset) error
	ListInvestments(ctx context.Context, userID string) ([]core.InvestmentAsset, error)
	ApplyLifecycle(ctx context.Context, investments []core.InvestmentAsset, removedInvestmentIDs []string, goals []core.Goal, transactions []core.Transaction) error

	GetCategoryConfig(ctx context.Context, userID string) ([]byte, error)
	SaveCategoryConfig(ctx context.Context, userID string, config []byte) error

	Close() error
}

// SyncPublisher announces new ledger transactions to the sync worker.
type SyncPublisher interface {
	PublishLedgerSync(ctx context.Context, id, userID string) error
	Close() error
}

var _ Store = (*storage.SQLiteRepository)(nil)

// FinanceService orchestrates ledger, goal, and investment operations across
// storage and the sync bus. Storage is written first; a failed publish never
// fails the request, the worker's backup sweep picks the row up later.
type FinanceService struct {
	store     Store
	publisher SyncPublisher
	manager   *portfolio.Manager
}

func NewFinanceService(store Store, publisher SyncPublisher) *FinanceService {
	return &FinanceService{
		store:     store,
		publisher: publisher,
		manager:   portfolio.NewManager(),
	}
}

// --- ledger ---

// CreateTransaction validates and saves a ledger entry, then publishes a
// sync message for the export worker.
func (s *FinanceService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.publishSync(ctx, t)
	return t, nil
}

func (s *FinanceService) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.publishSync(ctx, t)
	return nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	return s.store.DeleteTransaction(ctx, id)
}

// --- goals ---

// CreateGoal saves a goal. A goal linked to investments gets its current
// amount derived from them, never from the caller.
func (s *FinanceService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	if err := s.deriveGoalAmount(ctx, &g); err != nil {
		return core.Goal{}, err
	}

	if err := s.store.CreateGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("save goal: %w", err)
	}
	return g, nil
}

// deriveGoalAmount recomputes a linked goal's balance from its investments.
// Unlinked goals keep the caller-provided amount.
func (s *FinanceService) deriveGoalAmount(ctx context.Context, g *core.Goal) error {
	var investments []core.InvestmentAsset
	if g.Linked() {
		var err error
		investments, err = s.store.ListInvestments(ctx, g.UserID)
		if err != nil {
			return fmt.Errorf("list investments: %w", err)
		}
	}
	g.CurrentAmount = g.EffectiveAmount(investments)
	return nil
}

func (s *FinanceService) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

func (s *FinanceService) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	if err := s.deriveGoalAmount(ctx, &g); err != nil {
		return core.Goal{}, err
	}

	if err := s.store.UpdateGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

func (s *FinanceService) DeleteGoal(ctx context.Context, id string) error {
	return s.store.DeleteGoal(ctx, id)
}

// --- investments ---

func (s *FinanceService) ListInvestments(ctx context.Context, userID string) ([]core.InvestmentAsset, error) {
	return s.store.ListInvestments(ctx, userID)
}

// CreateInvestment registers a new asset and persists the mirrored ledger
// entry for its initial contribution.
func (s *FinanceService) CreateInvestment(ctx context.Context, userID, ticker, category string, initialAmount float64) (core.InvestmentAsset, error) {
	investments, goals, err := s.loadPortfolio(ctx, userID)
	if err != nil {
		return core.InvestmentAsset{}, err
	}

	result, err := s.manager.Create(investments, goals, ticker, category, initialAmount, userID)
	if err != nil {
		return core.InvestmentAsset{}, err
	}

	if err := s.applyResult(ctx, result, nil); err != nil {
		return core.InvestmentAsset{}, err
	}
	return result.Investments[len(result.Investments)-1], nil
}

// Contribute adds money to an asset and reconciles linked goals.
func (s *FinanceService) Contribute(ctx context.Context, userID, id string, amount float64) error {
	investments, goals, err := s.loadPortfolio(ctx, userID)
	if err != nil {
		return err
	}

	result, err := s.manager.Contribute(investments, goals, id, amount)
	if err != nil {
		return err
	}
	return s.applyResult(ctx, result, nil)
}

// Redeem takes money out of an asset and reconciles linked goals.
func (s *FinanceService) Redeem(ctx context.Context, userID, id string, amount float64) error {
	investments, goals, err := s.loadPortfolio(ctx, userID)
	if err != nil {
		return err
	}

	result, err := s.manager.Redeem(investments, goals, id, amount)
	if err != nil {
		return err
	}
	return s.applyResult(ctx, result, nil)
}

// EditInvestment renames an asset and corrects its current value. The value
// difference lands in the history as yield or correction; cost basis only
// moves through contributions.
func (s *FinanceService) EditInvestment(ctx context.Context, userID, id, ticker, category string, newCurrentValue float64) error {
	investments, goals, err := s.loadPortfolio(ctx, userID)
	if err != nil {
		return err
	}

	result, err := s.manager.Correct(investments, goals, id, newCurrentValue)
	if err != nil {
		return err
	}

	for i := range result.Investments {
		if result.Investments[i].ID == id {
			if ticker != "" {
				result.Investments[i].Ticker = ticker
			}
			if category != "" {
				result.Investments[i].Category = category
			}
		}
	}
	return s.applyResult(ctx, result, nil)
}

// DeleteInvestment removes an asset. With liquidate the balance is redeemed
// into the ledger first; either way past contributions are solidified as
// expense entries so history stays truthful.
func (s *FinanceService) DeleteInvestment(ctx context.Context, userID, id string, liquidate bool) error {
	investments, goals, err := s.loadPortfolio(ctx, userID)
	if err != nil {
		return err
	}
	ledger, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	result, err := s.manager.Delete(investments, goals, ledger, id, liquidate)
	if err != nil {
		return err
	}
	return s.applyResult(ctx, result, []string{id})
}

func (s *FinanceService) loadPortfolio(ctx context.Context, userID string) ([]core.InvestmentAsset, []core.Goal, error) {
	investments, err := s.store.ListInvestments(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list investments: %w", err)
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list goals: %w", err)
	}
	return investments, goals, nil
}

// applyResult persists a lifecycle outcome atomically and announces the new
// ledger entries to the sync worker.
func (s *FinanceService) applyResult(ctx context.Context, result portfolio.Result, removedIDs []string) error {
	if err := s.store.ApplyLifecycle(ctx, result.Investments, removedIDs, result.Goals, result.Transactions); err != nil {
		return fmt.Errorf("persist lifecycle result: %w", err)
	}
	for _, t := range result.Transactions {
		s.publishSync(ctx, t)
	}
	return nil
}

func (s *FinanceService) publishSync(ctx context.Context, t core.Transaction) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message", "id", t.ID)
		return
	}
	if err := s.publisher.PublishLedgerSync(ctx, t.ID, t.UserID); err != nil {
		// The transaction is saved; the worker's backup sweep will catch it.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", t.ID, "error", err)
	}
}

// --- categories ---

// Categories returns the user's category configuration, migrating legacy
// shapes and falling back to the defaults when nothing is stored.
func (s *FinanceService) Categories(ctx context.Context, userID string) (core.CategoryConfig, error) {
	raw, err := s.store.GetCategoryConfig(ctx, userID)
	if err != nil {
		return core.CategoryConfig{}, fmt.Errorf("load category config: %w", err)
	}
	if raw == nil {
		return core.DefaultCategories(), nil
	}
	return core.MigrateCategoryConfig(raw), nil
}

// SaveCategories stores the configuration for the user.
func (s *FinanceService) SaveCategories(ctx context.Context, userID string, cfg core.CategoryConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode category config: %w", err)
	}
	if err := s.store.SaveCategoryConfig(ctx, userID, raw); err != nil {
		return fmt.Errorf("save category config: %w", err)
	}
	return nil
}

// WeeklyWindows returns the five weekly windows for the month, persisting
// them on first computation so past months keep their original boundaries.
func (s *FinanceService) WeeklyWindows(ctx context.Context, userID string, filter core.DateFilter) ([]core.WeeklyWindow, error) {
	cfg, err := s.Categories(ctx, userID)
	if err != nil {
		return nil, err
	}

	windows, cached := core.WindowsFor(cfg, filter.Year, filter.Month)
	if !cached {
		updated := core.SaveWindows(cfg, filter.Year, filter.Month, windows)
		if err := s.SaveCategories(ctx, userID, updated); err != nil {
			return nil, err
		}
	}
	return windows, nil
}

// SaveWeeklyWindows persists user-edited window boundaries for the month,
// overriding the computed defaults on subsequent reads.
func (s *FinanceService) SaveWeeklyWindows(ctx context.Context, userID string, filter core.DateFilter, windows []core.WeeklyWindow) error {
	cfg, err := s.Categories(ctx, userID)
	if err != nil {
		return err
	}
	updated := core.SaveWindows(cfg, filter.Year, filter.Month, windows)
	return s.SaveCategories(ctx, userID, updated)
}

// Close closes storage and the sync publisher.
func (s *FinanceService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close finance service: %v", errs)
	}
	return nil
}
