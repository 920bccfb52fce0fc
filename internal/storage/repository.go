package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caiograbovskii/financaspro/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- transactions ---

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	return r.createTransaction(ctx, r.db, t)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteRepository) createTransaction(ctx context.Context, db execer, t core.Transaction) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (id, title, amount, type, category, date, payment_method, description, user_id, sync_state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Amount, string(t.Type), t.Category, t.Date.String(),
		t.PaymentMethod, t.Description, t.UserID, SyncPending)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"title", t.Title,
		"amount", t.Amount,
		"type", t.Type,
		"category", t.Category)
	return nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, amount, type, category, date, payment_method, description, user_id
		FROM transactions WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, amount, type, category, date, payment_method, description, user_id
		FROM transactions WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET title = ?, amount = ?, type = ?, category = ?, date = ?, payment_method = ?, description = ?, sync_state = ?
		WHERE id = ?`,
		t.Title, t.Amount, string(t.Type), t.Category, t.Date.String(),
		t.PaymentMethod, t.Description, SyncPending, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res, t.ID)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var txType, date string
	if err := row.Scan(&t.ID, &t.Title, &t.Amount, &txType, &t.Category, &date,
		&t.PaymentMethod, &t.Description, &t.UserID); err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(txType)
	if date != "" {
		d, err := core.ParseDate(date)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("decode date for transaction %s: %w", t.ID, err)
		}
		t.Date = d
	}
	return t, nil
}

// --- goals ---

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) error {
	linked, err := encodeLinked(g.LinkedInvestmentIDs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_amount, current_amount, linked_investment_ids, deadline, reason, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount, g.CurrentAmount, linked, g.Deadline.String(), g.Reason, g.UserID)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal saved", "id", g.ID, "name", g.Name, "target", g.TargetAmount)
	return nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, linked_investment_ids, deadline, reason, user_id
		FROM goals WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var row goalRow
		if err := rows.Scan(&row.ID, &row.Name, &row.TargetAmount, &row.CurrentAmount,
			&row.linkedJSON, &row.deadline, &row.Reason, &row.UserID); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g, err := row.decode()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	return r.updateGoal(ctx, r.db, g)
}

func (r *SQLiteRepository) updateGoal(ctx context.Context, db execer, g core.Goal) error {
	linked, err := encodeLinked(g.LinkedInvestmentIDs)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, target_amount = ?, current_amount = ?, linked_investment_ids = ?, deadline = ?, reason = ?
		WHERE id = ?`,
		g.Name, g.TargetAmount, g.CurrentAmount, linked, g.Deadline.String(), g.Reason, g.ID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res, g.ID)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res, id)
}

// --- investments ---

func (r *SQLiteRepository) CreateInvestment(ctx context.Context, inv core.InvestmentAsset) error {
	return r.upsertInvestment(ctx, r.db, inv)
}

func (r *SQLiteRepository) upsertInvestment(ctx context.Context, db execer, inv core.InvestmentAsset) error {
	history, err := encodeHistory(inv.History)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO investments (id, ticker, category, purchase_date, total_invested, current_value, history, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ticker = excluded.ticker,
			category = excluded.category,
			purchase_date = excluded.purchase_date,
			total_invested = excluded.total_invested,
			current_value = excluded.current_value,
			history = excluded.history`,
		inv.ID, inv.Ticker, inv.Category, inv.PurchaseDate.String(),
		inv.TotalInvested, inv.CurrentValue, history, inv.UserID)
	if err != nil {
		return fmt.Errorf("upsert investment: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListInvestments(ctx context.Context, userID string) ([]core.InvestmentAsset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ticker, category, purchase_date, total_invested, current_value, history, user_id
		FROM investments WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []core.InvestmentAsset
	for rows.Next() {
		var row investmentRow
		if err := rows.Scan(&row.ID, &row.Ticker, &row.Category, &row.purchaseDate,
			&row.TotalInvested, &row.CurrentValue, &row.historyJSON, &row.UserID); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		inv, err := row.decode()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteInvestment(ctx context.Context, id string) error {
	return r.deleteInvestment(ctx, r.db, id)
}

func (r *SQLiteRepository) deleteInvestment(ctx context.Context, db execer, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	return requireRow(res, id)
}

// ApplyLifecycle persists the outcome of a portfolio lifecycle operation in
// a single database transaction: surviving investments are upserted, removed
// ones deleted, reconciled goals updated, and new ledger transactions
// inserted. Either everything lands or nothing does.
func (r *SQLiteRepository) ApplyLifecycle(ctx context.Context, investments []core.InvestmentAsset, removedInvestmentIDs []string, goals []core.Goal, transactions []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, inv := range investments {
		if err := r.upsertInvestment(ctx, tx, inv); err != nil {
			return err
		}
	}
	for _, id := range removedInvestmentIDs {
		if err := r.deleteInvestment(ctx, tx, id); err != nil {
			return err
		}
	}
	for _, g := range goals {
		if err := r.updateGoal(ctx, tx, g); err != nil {
			return err
		}
	}
	for _, t := range transactions {
		if err := r.createTransaction(ctx, tx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lifecycle: %w", err)
	}

	slog.InfoContext(ctx, "Lifecycle result persisted",
		"investments", len(investments),
		"removed", len(removedInvestmentIDs),
		"goals", len(goals),
		"transactions", len(transactions))
	return nil
}

// --- category config ---

// GetCategoryConfig returns the raw stored config JSON for the user, or nil
// when none has been saved yet. Migration of legacy shapes happens in core,
// not here.
func (r *SQLiteRepository) GetCategoryConfig(ctx context.Context, userID string) ([]byte, error) {
	var config string
	err := r.db.QueryRowContext(ctx, `SELECT config FROM categories WHERE user_id = ?`, userID).Scan(&config)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category config: %w", err)
	}
	return []byte(config), nil
}

func (r *SQLiteRepository) SaveCategoryConfig(ctx context.Context, userID string, config []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, config, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET config = excluded.config, updated_at = CURRENT_TIMESTAMP`,
		userID, string(config))
	if err != nil {
		return fmt.Errorf("save category config: %w", err)
	}
	return nil
}

// --- sync queue ---

// GetPendingSyncTransactions returns transactions not yet exported, oldest
// first, up to limit.
func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id FROM transactions
		WHERE sync_state = ? ORDER BY created_at LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan pending sync transaction: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkSynced marks a transaction as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	return r.setSyncState(ctx, id, SyncSynced)
}

// MarkSyncError marks a transaction as having failed export.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	return r.setSyncState(ctx, id, SyncError)
}

func (r *SQLiteRepository) setSyncState(ctx context.Context, id, state string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE transactions SET sync_state = ? WHERE id = ?`, state, id)
	if err != nil {
		return fmt.Errorf("set sync state: %w", err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction sync state updated", "id", id, "sync_state", state)
	return nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s: %w", id, core.ErrNotFound)
	}
	return nil
}
