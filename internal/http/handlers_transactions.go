package http

import (
	"log/slog"
	"net/http"

	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/log"
)

type transactionPage struct {
	Items []core.Transaction `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// handleListTransactions returns the user's transactions, date-descending,
// optionally filtered to a month and paginated.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	transactions, err := s.svc.ListTransactions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed",
			log.FieldError, err, log.FieldUserID, userID)
		respondDomainError(w, err)
		return
	}

	if r.URL.Query().Get("year") != "" || r.URL.Query().Get("month") != "" {
		year, month := parseYearMonth(r)
		transactions = core.FilterByMonth(transactions, year, month)
	}
	transactions = core.SortByDateDesc(transactions)

	page, size := parsePagination(r)
	total := len(transactions)
	lo := (page - 1) * size
	if lo > total {
		lo = total
	}
	hi := lo + size
	if hi > total {
		hi = total
	}
	items := transactions[lo:hi]
	if items == nil {
		items = []core.Transaction{}
	}

	respondJSON(w, http.StatusOK, transactionPage{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := decodeJSON(r, &t); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t.UserID = requestUserID(r)
	t.Title = sanitizeInput(t.Title)
	t.Description = sanitizeInput(t.Description)
	if err := t.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.svc.CreateTransaction(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create transaction failed",
			log.FieldError, err, log.FieldUserID, t.UserID)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(t.UserID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := decodeJSON(r, &t); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t.ID = r.PathValue("id")
	t.UserID = requestUserID(r)
	t.Title = sanitizeInput(t.Title)
	t.Description = sanitizeInput(t.Description)
	if err := t.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.UpdateTransaction(r.Context(), t); err != nil {
		slog.ErrorContext(r.Context(), "Update transaction failed",
			log.FieldError, err, log.FieldRecordID, t.ID)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(t.UserID)
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.svc.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction failed",
			log.FieldError, err, log.FieldRecordID, id)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(requestUserID(r))
	w.WriteHeader(http.StatusNoContent)
}
