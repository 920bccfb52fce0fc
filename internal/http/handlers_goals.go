package http

import (
	"log/slog"
	"net/http"

	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/log"
)

// goalPayload decorates a goal with the suggested monthly contribution
// toward its deadline.
type goalPayload struct {
	core.Goal
	MonthlySuggestion float64 `json:"monthlySuggestion"`
}

func goalPayloads(goals []core.Goal, today core.Date) []goalPayload {
	out := make([]goalPayload, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalPayload{
			Goal:              g,
			MonthlySuggestion: g.MonthlySuggestion(today),
		})
	}
	return out
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	goals, err := s.svc.ListGoals(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List goals failed",
			log.FieldError, err, log.FieldUserID, userID)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goalPayloads(goals, core.Today()))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if err := decodeJSON(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	g.UserID = requestUserID(r)
	g.Name = sanitizeInput(g.Name)
	g.Reason = sanitizeInput(g.Reason)
	if err := g.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.svc.CreateGoal(r.Context(), g)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create goal failed",
			log.FieldError, err, log.FieldGoalName, g.Name)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(g.UserID)
	respondJSON(w, http.StatusCreated, goalPayload{
		Goal:              created,
		MonthlySuggestion: created.MonthlySuggestion(core.Today()),
	})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if err := decodeJSON(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	g.ID = r.PathValue("id")
	g.UserID = requestUserID(r)
	g.Name = sanitizeInput(g.Name)
	g.Reason = sanitizeInput(g.Reason)
	if err := g.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.svc.UpdateGoal(r.Context(), g)
	if err != nil {
		slog.ErrorContext(r.Context(), "Update goal failed",
			log.FieldError, err, log.FieldRecordID, g.ID)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(g.UserID)
	respondJSON(w, http.StatusOK, goalPayload{
		Goal:              updated,
		MonthlySuggestion: updated.MonthlySuggestion(core.Today()),
	})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.svc.DeleteGoal(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete goal failed",
			log.FieldError, err, log.FieldRecordID, id)
		respondDomainError(w, err)
		return
	}

	s.invalidateDashboard(requestUserID(r))
	w.WriteHeader(http.StatusNoContent)
}
