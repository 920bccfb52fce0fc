package http

import (
	"log/slog"
	"net/http"

	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/log"
)

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	cfg, err := s.svc.Categories(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Load categories failed",
			log.FieldError, err, log.FieldUserID, userID)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// handleSaveCategories replaces the provided sections of the user's
// category configuration. Sections absent from the payload keep their
// stored value.
func (s *Server) handleSaveCategories(w http.ResponseWriter, r *http.Request) {
	var incoming core.CategoryConfig
	if err := decodeJSON(r, &incoming); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := requestUserID(r)

	current, err := s.svc.Categories(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Load categories failed",
			log.FieldError, err, log.FieldUserID, userID)
		respondDomainError(w, err)
		return
	}

	if incoming.Expense != nil {
		current.Expense = incoming.Expense
	}
	if incoming.Income != nil {
		current.Income = incoming.Income
	}
	if incoming.Investment != nil {
		current.Investment = incoming.Investment
	}
	// User-edited window boundaries ride along in savedWeeks; months
	// absent from the payload keep their stored windows.
	if incoming.SavedWeeks != nil {
		if current.SavedWeeks == nil {
			current.SavedWeeks = make(map[string][]core.WeeklyWindow)
		}
		for key, windows := range incoming.SavedWeeks {
			current.SavedWeeks[key] = windows
		}
	}

	if err := s.svc.SaveCategories(r.Context(), userID, current); err != nil {
		slog.ErrorContext(r.Context(), "Save categories failed",
			log.FieldError, err, log.FieldUserID, userID)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusOK, current)
}

// weekPayload is one window with its expense rollup. Investment
// contributions are excluded so the total reflects consumption only.
type weekPayload struct {
	core.WeeklyWindow
	Total        float64            `json:"total"`
	Transactions []core.Transaction `json:"transactions"`
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	year, month := parseYearMonth(r)

	windows, err := s.svc.WeeklyWindows(r.Context(), userID, core.DateFilter{Year: year, Month: month})
	if err != nil {
		slog.ErrorContext(r.Context(), "Weekly windows failed",
			log.FieldError, err,
			log.FieldUserID, userID,
			log.FieldYear, year,
			log.FieldMonth, int(month))
		respondDomainError(w, err)
		return
	}

	transactions, err := s.svc.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed",
			log.FieldError, err, log.FieldUserID, userID)
		respondDomainError(w, err)
		return
	}

	payload := make([]weekPayload, 0, len(windows))
	for _, window := range windows {
		weekTxs := core.WeekExpenses(transactions, window)
		if weekTxs == nil {
			weekTxs = []core.Transaction{}
		}
		var total float64
		for _, t := range weekTxs {
			total += t.Amount
		}
		payload = append(payload, weekPayload{
			WeeklyWindow: window,
			Total:        total,
			Transactions: weekTxs,
		})
	}

	respondJSON(w, http.StatusOK, payload)
}

// handleSaveWeeks persists user-edited window boundaries for the month.
func (s *Server) handleSaveWeeks(w http.ResponseWriter, r *http.Request) {
	var windows []core.WeeklyWindow
	if err := decodeJSON(r, &windows); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(windows) == 0 {
		respondError(w, http.StatusBadRequest, "no windows provided")
		return
	}

	userID := requestUserID(r)
	year, month := parseYearMonth(r)

	if err := s.svc.SaveWeeklyWindows(r.Context(), userID, core.DateFilter{Year: year, Month: month}, windows); err != nil {
		slog.ErrorContext(r.Context(), "Save weekly windows failed",
			log.FieldError, err,
			log.FieldUserID, userID,
			log.FieldYear, year,
			log.FieldMonth, int(month))
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusOK, windows)
}
