// Package portfolio manages the lifecycle of investment assets: creation,
// contributions, redemptions, balance corrections, and deletion. Every
// operation is pure over in-memory snapshots; it returns the updated asset
// and goal sets plus the ledger transactions the caller must persist. If the
// ledger write fails, the caller discards the result and reloads.
package portfolio

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/caiograbovskii/financaspro/internal/core"
)

// History entry descriptions, kept stable because they surface in exports
// and in older persisted records.
const (
	descInitialContribution = "Aporte Inicial"
	descContribution        = "Aporte"
	descRedemption          = "Resgate"
	descYield               = "Rendimento de Saldo"
	descCorrection          = "Correção de Saldo (Negativa)"
)

// Manager applies lifecycle operations. The clock and id generator are
// injectable so tests get deterministic output.
type Manager struct {
	now   func() core.Date
	newID func() string
}

func NewManager() *Manager {
	return &Manager{now: core.Today, newID: uuid.NewString}
}

// Result is the outcome of a lifecycle operation: the full updated
// investment and goal sets, and the new ledger transactions to persist.
// Inputs are never mutated.
type Result struct {
	Investments  []core.InvestmentAsset
	Goals        []core.Goal
	Transactions []core.Transaction
}

// ContributionTitle is the ledger title mirroring money put into a ticker.
// Solidification dedup matches on it, so it must stay stable.
func ContributionTitle(ticker string) string {
	return fmt.Sprintf("Investimento: %s", ticker)
}

// RedemptionTitle is the ledger title mirroring money taken out of a ticker.
func RedemptionTitle(ticker string) string {
	return fmt.Sprintf("Resgate: %s", ticker)
}

// Create registers a new asset. A positive initial amount becomes the first
// contribution history entry and a mirrored expense transaction; zero means
// an empty card with no ledger effect.
func (m *Manager) Create(investments []core.InvestmentAsset, goals []core.Goal, ticker, category string, initialAmount float64, userID string) (Result, error) {
	if ticker == "" {
		return Result{}, core.ErrEmptyTicker
	}
	if initialAmount < 0 {
		return Result{}, fmt.Errorf("initial amount %.2f: %w", initialAmount, core.ErrInvalidAmount)
	}

	today := m.now()
	asset := core.InvestmentAsset{
		ID:           m.newID(),
		Ticker:       ticker,
		Category:     category,
		PurchaseDate: today,
		UserID:       userID,
	}

	var txs []core.Transaction
	if initialAmount > 0 {
		asset.TotalInvested = initialAmount
		asset.CurrentValue = initialAmount
		asset.History = []core.HistoryEntry{{
			ID:          m.newID(),
			Date:        today,
			Amount:      initialAmount,
			Description: descInitialContribution,
			Kind:        core.Contribution,
			UserID:      userID,
		}}
		txs = append(txs, m.mirrorExpense(asset, initialAmount))
	}

	return Result{
		Investments:  append(cloneInvestments(investments), asset),
		Goals:        cloneGoals(goals),
		Transactions: txs,
	}, nil
}

// Contribute adds money to an existing asset, raising both cost basis and
// current value, and mirrors the outflow into the ledger.
func (m *Manager) Contribute(investments []core.InvestmentAsset, goals []core.Goal, id string, amount float64) (Result, error) {
	if amount <= 0 {
		return Result{}, fmt.Errorf("contribution %.2f: %w", amount, core.ErrInvalidAmount)
	}

	updated := cloneInvestments(investments)
	asset := findAsset(updated, id)
	if asset == nil {
		return Result{}, fmt.Errorf("investment %s: %w", id, core.ErrNotFound)
	}

	asset.TotalInvested += amount
	asset.CurrentValue += amount
	asset.History = append(asset.History, core.HistoryEntry{
		ID:          m.newID(),
		Date:        m.now(),
		Amount:      amount,
		Description: descContribution,
		Kind:        core.Contribution,
		UserID:      asset.UserID,
	})

	return Result{
		Investments:  updated,
		Goals:        core.Reconcile(goals, updated),
		Transactions: []core.Transaction{m.mirrorExpense(*asset, amount)},
	}, nil
}

// Redeem takes money out of an asset. The amount must not exceed the current
// value; the withdrawal is recorded as a negative history entry and mirrored
// as ledger income. Cost basis is untouched.
func (m *Manager) Redeem(investments []core.InvestmentAsset, goals []core.Goal, id string, amount float64) (Result, error) {
	if amount <= 0 {
		return Result{}, fmt.Errorf("redemption %.2f: %w", amount, core.ErrInvalidAmount)
	}

	updated := cloneInvestments(investments)
	asset := findAsset(updated, id)
	if asset == nil {
		return Result{}, fmt.Errorf("investment %s: %w", id, core.ErrNotFound)
	}
	if amount > asset.CurrentValue {
		return Result{}, fmt.Errorf("redemption %.2f against balance %.2f: %w", amount, asset.CurrentValue, core.ErrInsufficientBalance)
	}

	asset.CurrentValue = math.Max(0, asset.CurrentValue-amount)
	asset.History = append(asset.History, core.HistoryEntry{
		ID:          m.newID(),
		Date:        m.now(),
		Amount:      -amount,
		Description: descRedemption,
		Kind:        core.Withdrawal,
		UserID:      asset.UserID,
	})

	return Result{
		Investments:  updated,
		Goals:        core.Reconcile(goals, updated),
		Transactions: []core.Transaction{m.mirrorIncome(*asset, amount)},
	}, nil
}

// Correct sets a new current value during an edit. The difference is
// recorded as yield (gain) or correction (loss); cost basis only moves with
// contributions, never here. No ledger transaction is emitted.
func (m *Manager) Correct(investments []core.InvestmentAsset, goals []core.Goal, id string, newCurrentValue float64) (Result, error) {
	if newCurrentValue < 0 {
		return Result{}, fmt.Errorf("current value %.2f: %w", newCurrentValue, core.ErrInvalidAmount)
	}

	updated := cloneInvestments(investments)
	asset := findAsset(updated, id)
	if asset == nil {
		return Result{}, fmt.Errorf("investment %s: %w", id, core.ErrNotFound)
	}

	diff := newCurrentValue - asset.CurrentValue
	if diff != 0 {
		entry := core.HistoryEntry{
			ID:          m.newID(),
			Date:        m.now(),
			Amount:      diff,
			Description: descYield,
			Kind:        core.Yield,
			UserID:      asset.UserID,
		}
		if diff < 0 {
			entry.Description = descCorrection
			entry.Kind = core.Correction
		}
		asset.History = append(asset.History, entry)
		asset.CurrentValue = newCurrentValue
	}

	return Result{
		Investments:  updated,
		Goals:        core.Reconcile(goals, updated),
	}, nil
}

// Delete removes an asset under one of two policies. With liquidate, the
// remaining balance is redeemed first, producing the redemption income
// transaction. Either way the cost history is solidified into the ledger so
// past contributions stay visible, deduplicated against the existing ledger
// on (amount, date, title). Goals lose the id from their link sets and are
// reconciled over the survivors.
func (m *Manager) Delete(investments []core.InvestmentAsset, goals []core.Goal, ledger []core.Transaction, id string, liquidate bool) (Result, error) {
	asset := findAsset(investments, id)
	if asset == nil {
		return Result{}, fmt.Errorf("investment %s: %w", id, core.ErrNotFound)
	}

	var newTxs []core.Transaction
	if liquidate && asset.CurrentValue > 0 {
		newTxs = append(newTxs, m.mirrorIncome(*asset, asset.CurrentValue))
	}

	newTxs = append(newTxs, m.solidify(*asset, ledger)...)

	remaining := make([]core.InvestmentAsset, 0, len(investments)-1)
	for _, inv := range investments {
		if inv.ID != id {
			remaining = append(remaining, cloneAsset(inv))
		}
	}

	pruned := cloneGoals(goals)
	for i := range pruned {
		pruned[i].LinkedInvestmentIDs = removeID(pruned[i].LinkedInvestmentIDs, id)
	}

	return Result{
		Investments:  remaining,
		Goals:        core.Reconcile(pruned, remaining),
		Transactions: newTxs,
	}, nil
}

// solidify turns positive history entries into permanent expense
// transactions, skipping entries the ledger already mirrors.
func (m *Manager) solidify(asset core.InvestmentAsset, ledger []core.Transaction) []core.Transaction {
	title := ContributionTitle(asset.Ticker)

	type key struct {
		amount float64
		date   string
		title  string
	}
	seen := make(map[key]struct{}, len(ledger))
	for _, t := range ledger {
		seen[key{t.Amount, t.Date.String(), t.Title}] = struct{}{}
	}

	var txs []core.Transaction
	for _, h := range asset.History {
		if h.Amount <= 0 {
			continue
		}
		k := key{h.Amount, h.Date.String(), title}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		txs = append(txs, core.Transaction{
			ID:          m.newID(),
			Title:       title,
			Amount:      h.Amount,
			Type:        core.Expense,
			Category:    core.InvestmentCategory,
			Date:        h.Date,
			Description: h.Description,
			UserID:      asset.UserID,
		})
	}
	return txs
}

func (m *Manager) mirrorExpense(asset core.InvestmentAsset, amount float64) core.Transaction {
	return core.Transaction{
		ID:       m.newID(),
		Title:    ContributionTitle(asset.Ticker),
		Amount:   amount,
		Type:     core.Expense,
		Category: core.InvestmentCategory,
		Date:     m.now(),
		UserID:   asset.UserID,
	}
}

func (m *Manager) mirrorIncome(asset core.InvestmentAsset, amount float64) core.Transaction {
	return core.Transaction{
		ID:       m.newID(),
		Title:    RedemptionTitle(asset.Ticker),
		Amount:   amount,
		Type:     core.Income,
		Category: core.RedemptionCategory,
		Date:     m.now(),
		UserID:   asset.UserID,
	}
}

func findAsset(investments []core.InvestmentAsset, id string) *core.InvestmentAsset {
	for i := range investments {
		if investments[i].ID == id {
			return &investments[i]
		}
	}
	return nil
}

func cloneAsset(inv core.InvestmentAsset) core.InvestmentAsset {
	out := inv
	out.History = append([]core.HistoryEntry(nil), inv.History...)
	return out
}

func cloneInvestments(investments []core.InvestmentAsset) []core.InvestmentAsset {
	out := make([]core.InvestmentAsset, len(investments))
	for i, inv := range investments {
		out[i] = cloneAsset(inv)
	}
	return out
}

func cloneGoals(goals []core.Goal) []core.Goal {
	out := make([]core.Goal, len(goals))
	for i, g := range goals {
		out[i] = g
		out[i].LinkedInvestmentIDs = append([]string(nil), g.LinkedInvestmentIDs...)
	}
	return out
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
