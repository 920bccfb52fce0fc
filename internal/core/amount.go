package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-entered monetary string to a float64.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Negative values are rejected; signs and semantics are carried by the
// transaction type, never by the amount itself.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return 0, ErrInvalidAmount
		}
	}
	if strings.Count(s, ".") > 1 {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// MonthlySuggestion returns the contribution per month needed to reach the
// goal's target by its deadline, measured in whole calendar months from now.
// A passed deadline returns the full remaining amount; a reached target
// returns 0. Goals without a target or deadline have no suggestion and
// return a negative value.
func (g Goal) MonthlySuggestion(today Date) float64 {
	if g.TargetAmount == 0 || g.Deadline.IsZero() {
		return -1
	}
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining <= 0 {
		return 0
	}
	months := (g.Deadline.Time.Year()-today.Time.Year())*12 +
		int(g.Deadline.Time.Month()) - int(today.Time.Month())
	if months <= 0 {
		return remaining
	}
	return remaining / float64(months)
}
