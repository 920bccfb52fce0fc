package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/caiograbovskii/financaspro/internal/advisor"
	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/log"
)

// dashboardResponse is the composed month view-model.
type dashboardResponse struct {
	KPIs              core.KPISet           `json:"kpis"`
	ExpenseByCategory []core.CategoryAmount `json:"expenseByCategory"`
	Evolution         []core.EvolutionPoint `json:"evolution"`
	Insights          []advisor.Insight     `json:"insights"`
	Score             advisor.HealthScore   `json:"score"`
	DailyQuote        advisor.Quote         `json:"dailyQuote"`
	Weeks             []core.WeeklyWindow   `json:"weeks"`
}

func dashboardKey(userID string, year int, month time.Month) string {
	return fmt.Sprintf("%s%d-%d", dashboardKeyPrefix(userID), year, int(month))
}

// handleDashboard assembles the month view-model from a fresh storage
// snapshot, or serves it from the per-user cache.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	year, month := parseYearMonth(r)

	key := dashboardKey(userID, year, month)
	if cached, ok := s.dashboardCache.Get(key); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	resp, err := s.buildDashboard(r, userID, year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard build failed",
			log.FieldError, err,
			log.FieldUserID, userID,
			log.FieldYear, year,
			log.FieldMonth, int(month))
		respondDomainError(w, err)
		return
	}

	s.dashboardCache.Set(key, resp)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) buildDashboard(r *http.Request, userID string, year int, month time.Month) (dashboardResponse, error) {
	ctx := r.Context()

	transactions, err := s.svc.ListTransactions(ctx, userID)
	if err != nil {
		return dashboardResponse{}, fmt.Errorf("load transactions: %w", err)
	}
	goals, err := s.svc.ListGoals(ctx, userID)
	if err != nil {
		return dashboardResponse{}, fmt.Errorf("load goals: %w", err)
	}
	investments, err := s.svc.ListInvestments(ctx, userID)
	if err != nil {
		return dashboardResponse{}, fmt.Errorf("load investments: %w", err)
	}
	cfg, err := s.svc.Categories(ctx, userID)
	if err != nil {
		return dashboardResponse{}, fmt.Errorf("load categories: %w", err)
	}
	weeks, err := s.svc.WeeklyWindows(ctx, userID, core.DateFilter{Year: year, Month: month})
	if err != nil {
		return dashboardResponse{}, fmt.Errorf("load weekly windows: %w", err)
	}

	today := core.Today()
	filtered := core.FilterByMonth(transactions, year, month)

	report := advisor.Analyze(advisor.Input{
		Transactions: transactions,
		Goals:        goals,
		Investments:  investments,
		Config:       cfg,
		Year:         year,
		Month:        month,
		Seed:         s.advisorSeed,
		Today:        today,
	})
	insights := append(report.Insights,
		advisor.DashboardInsights(transactions, year, month, today)...)

	byCategory := core.ExpenseByCategory(filtered)
	if byCategory == nil {
		byCategory = []core.CategoryAmount{}
	}

	return dashboardResponse{
		KPIs:              core.ComputeKPIs(filtered, investments, goals),
		ExpenseByCategory: byCategory,
		// The net-worth series always trails from today, regardless of
		// the month filter applied to the rest of the view.
		Evolution:         core.BuildEvolution(transactions, investments, today),
		Insights:          insights,
		Score:             report.Score,
		DailyQuote:        report.DailyQuote,
		Weeks:             weeks,
	}, nil
}
