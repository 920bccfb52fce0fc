package http

import (
	"log/slog"
	"net/http"

	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/log"
)

type createInvestmentRequest struct {
	Ticker        string     `json:"ticker"`
	Category      string     `json:"category"`
	InitialAmount flexAmount `json:"initialAmount"`
}

type amountRequest struct {
	Amount flexAmount `json:"amount"`
}

type editInvestmentRequest struct {
	Ticker       string     `json:"ticker"`
	Category     string     `json:"category"`
	CurrentValue flexAmount `json:"currentValue"`
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	investments, err := s.svc.ListInvestments(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List investments failed",
			log.FieldError, err, log.FieldUserID, userID)
		respondDomainError(w, err)
		return
	}
	if investments == nil {
		investments = []core.InvestmentAsset{}
	}

	respondJSON(w, http.StatusOK, investments)
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req createInvestmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := requestUserID(r)
	ticker := sanitizeInput(req.Ticker)
	category := sanitizeInput(req.Category)

	created, err := s.svc.CreateInvestment(r.Context(), userID, ticker, category, float64(req.InitialAmount))
	if err != nil {
		slog.ErrorContext(r.Context(), "Create investment failed",
			log.FieldError, err, log.FieldTicker, ticker)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := requestUserID(r)
	id := r.PathValue("id")

	if err := s.svc.Contribute(r.Context(), userID, id, float64(req.Amount)); err != nil {
		slog.ErrorContext(r.Context(), "Contribution failed",
			log.FieldError, err, log.FieldRecordID, id, log.FieldAmount, float64(req.Amount))
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := requestUserID(r)
	id := r.PathValue("id")

	if err := s.svc.Redeem(r.Context(), userID, id, float64(req.Amount)); err != nil {
		slog.ErrorContext(r.Context(), "Redemption failed",
			log.FieldError, err, log.FieldRecordID, id, log.FieldAmount, float64(req.Amount))
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEditInvestment(w http.ResponseWriter, r *http.Request) {
	var req editInvestmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := requestUserID(r)
	id := r.PathValue("id")
	ticker := sanitizeInput(req.Ticker)
	category := sanitizeInput(req.Category)

	if err := s.svc.EditInvestment(r.Context(), userID, id, ticker, category, float64(req.CurrentValue)); err != nil {
		slog.ErrorContext(r.Context(), "Edit investment failed",
			log.FieldError, err, log.FieldRecordID, id)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteInvestment removes an investment. With liquidate=true the
// current value is returned to the ledger as income; either way the
// contribution history is preserved as solidified expense entries.
func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	id := r.PathValue("id")
	liquidate := parseBoolParam(r, "liquidate")

	if err := s.svc.DeleteInvestment(r.Context(), userID, id, liquidate); err != nil {
		slog.ErrorContext(r.Context(), "Delete investment failed",
			log.FieldError, err, log.FieldRecordID, id, "liquidate", liquidate)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(userID)
	w.WriteHeader(http.StatusNoContent)
}
