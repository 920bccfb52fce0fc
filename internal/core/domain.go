package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Ledger categories for transactions mirrored from investment operations.
const (
	InvestmentCategory = "Investimentos"
	RedemptionCategory = "Resgate de Investimento"
)

const (
	Contribution HistoryKind = "contribution"
	Withdrawal   HistoryKind = "withdrawal"
	Yield        HistoryKind = "yield"
	Correction   HistoryKind = "correction"
)

type (
	TransactionType string

	HistoryKind string

	Date struct {
		time.Time
	}

	// Transaction is a single ledger entry. Amount is a non-negative
	// magnitude; direction is carried by Type.
	Transaction struct {
		ID            string          `json:"id"`
		Title         string          `json:"title"`
		Amount        float64         `json:"amount"`
		Type          TransactionType `json:"type"`
		Category      string          `json:"category"`
		Date          Date            `json:"date"`
		PaymentMethod string          `json:"paymentMethod,omitempty"`
		Description   string          `json:"description,omitempty"`
		UserID        string          `json:"userId,omitempty"`
	}

	// Goal tracks savings progress. When LinkedInvestmentIDs is non-empty,
	// CurrentAmount is derived from the linked investments and must not be
	// edited independently.
	Goal struct {
		ID                  string   `json:"id"`
		Name                string   `json:"name"`
		TargetAmount        float64  `json:"targetAmount"`
		CurrentAmount       float64  `json:"currentAmount"`
		LinkedInvestmentIDs []string `json:"linkedInvestmentIds"`
		Deadline            Date     `json:"deadline,omitempty"`
		Reason              string   `json:"reason,omitempty"`
		UserID              string   `json:"userId,omitempty"`
	}

	// HistoryEntry is an append-only record of an investment cash movement.
	// Amount is signed: positive inflow, negative outflow.
	HistoryEntry struct {
		ID          string      `json:"id"`
		Date        Date        `json:"date"`
		Amount      float64     `json:"amount"`
		Description string      `json:"description"`
		Kind        HistoryKind `json:"type"`
		UserID      string      `json:"userId,omitempty"`
	}

	InvestmentAsset struct {
		ID            string         `json:"id"`
		Ticker        string         `json:"ticker"`
		Category      string         `json:"category"`
		PurchaseDate  Date           `json:"purchaseDate,omitempty"`
		TotalInvested float64        `json:"totalInvested"`
		CurrentValue  float64        `json:"currentValue"`
		History       []HistoryEntry `json:"history"`
		UserID        string         `json:"userId,omitempty"`
	}

	// DateFilter selects a calendar month. Month is 1-based.
	DateFilter struct {
		Year  int
		Month time.Month
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("redemption exceeds current value")
	ErrInvalidDate         = errors.New("invalid date")
	ErrEmptyTitle          = errors.New("empty title")
	ErrEmptyCategory       = errors.New("empty category")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrEmptyName           = errors.New("empty name")
	ErrEmptyTicker         = errors.New("empty ticker")
	ErrNotFound            = errors.New("record not found")
)

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date truncated to midnight UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO date string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD with zero padding.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as an ISO string, empty when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Tolerate full timestamps from older records
	if len(s) > 10 {
		s = s[:10]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SameMonth reports whether the date falls in the given month.
func (d Date) SameMonth(year int, month time.Month) bool {
	return d.Time.Year() == year && d.Time.Month() == month
}

// BeforeOrEqual reports whether d is on or before the other date.
func (d Date) BeforeOrEqual(other Date) bool {
	return !d.Time.After(other.Time)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if t.Type != Income && t.Type != Expense {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if g.TargetAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (i InvestmentAsset) Validate() error {
	if len(strings.TrimSpace(i.Ticker)) == 0 {
		return ErrEmptyTicker
	}
	if i.CurrentValue < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Linked reports whether the goal derives its balance from investments.
func (g Goal) Linked() bool {
	return len(g.LinkedInvestmentIDs) > 0
}

// ContributedTotal sums the positive history entries. The stored
// TotalInvested must equal this whenever history is non-empty.
func (i InvestmentAsset) ContributedTotal() float64 {
	var sum float64
	for _, h := range i.History {
		if h.Amount > 0 {
			sum += h.Amount
		}
	}
	return sum
}
