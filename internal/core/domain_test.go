package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{
		Title:    "Mercado",
		Amount:   250.5,
		Type:     Expense,
		Category: "Mercado",
		Date:     NewDate(2024, time.March, 10),
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*Transaction) {}, wantErr: nil},
		{name: "empty title", mutate: func(tr *Transaction) { tr.Title = "  " }, wantErr: ErrEmptyTitle},
		{name: "negative amount", mutate: func(tr *Transaction) { tr.Amount = -1 }, wantErr: ErrInvalidAmount},
		{name: "zero amount allowed", mutate: func(tr *Transaction) { tr.Amount = 0 }, wantErr: nil},
		{name: "bad type", mutate: func(tr *Transaction) { tr.Type = "transfer" }, wantErr: ErrInvalidType},
		{name: "empty category", mutate: func(tr *Transaction) { tr.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "zero date", mutate: func(tr *Transaction) { tr.Date = Date{} }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid
			tt.mutate(&tr)
			err := tr.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	encoded, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `"2024-02-29"` {
		t.Errorf("marshal = %s, want \"2024-02-29\"", encoded)
	}

	var decoded Date
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(d.Time) {
		t.Errorf("round trip = %v, want %v", decoded, d)
	}
}

func TestDate_UnmarshalTolerance(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain date", in: `"2024-03-01"`, want: "2024-03-01"},
		{name: "full timestamp", in: `"2024-03-01T15:04:05Z"`, want: "2024-03-01"},
		{name: "empty string", in: `""`, want: ""},
		{name: "null", in: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if d.String() != tt.want {
				t.Errorf("parsed %s = %q, want %q", tt.in, d.String(), tt.want)
			}
		})
	}
}

func TestInvestmentAsset_ContributedTotal(t *testing.T) {
	inv := InvestmentAsset{
		History: []HistoryEntry{
			{Amount: 1000, Kind: Contribution},
			{Amount: 500, Kind: Contribution},
			{Amount: -300, Kind: Withdrawal},
			{Amount: 120, Kind: Yield},
			{Amount: -50, Kind: Correction},
		},
	}
	// Positive entries only, whatever their kind.
	if got := inv.ContributedTotal(); got != 1620 {
		t.Errorf("ContributedTotal() = %v, want 1620", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{name: "dot separator", in: "12.34", want: 12.34},
		{name: "comma separator", in: "12,34", want: 12.34},
		{name: "integer", in: "1500", want: 1500},
		{name: "zero", in: "0", want: 0},
		{name: "whitespace trimmed", in: " 7,5 ", want: 7.5},
		{name: "negative rejected", in: "-5", wantErr: true},
		{name: "explicit plus rejected", in: "+5", wantErr: true},
		{name: "two separators", in: "1.2.3", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "letters", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGoal_MonthlySuggestion(t *testing.T) {
	today := NewDate(2024, time.March, 15)

	tests := []struct {
		name string
		goal Goal
		want float64
	}{
		{
			name: "five months out",
			goal: Goal{TargetAmount: 6000, CurrentAmount: 1000, Deadline: NewDate(2024, time.August, 1)},
			want: 1000,
		},
		{
			name: "deadline passed returns remaining",
			goal: Goal{TargetAmount: 2000, CurrentAmount: 500, Deadline: NewDate(2024, time.January, 1)},
			want: 1500,
		},
		{
			name: "target reached",
			goal: Goal{TargetAmount: 1000, CurrentAmount: 1200, Deadline: NewDate(2024, time.December, 1)},
			want: 0,
		},
		{
			name: "no deadline",
			goal: Goal{TargetAmount: 1000, CurrentAmount: 0},
			want: -1,
		},
		{
			name: "no target",
			goal: Goal{Deadline: NewDate(2024, time.December, 1)},
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.MonthlySuggestion(today); got != tt.want {
				t.Errorf("MonthlySuggestion() = %v, want %v", got, tt.want)
			}
		})
	}
}
