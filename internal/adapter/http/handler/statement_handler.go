package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payproc/internal/adapter/http/dto"
	"github.com/iho/payproc/internal/domain"
)

// StatementLineService defines the behavior needed by StatementLineHandler.
type StatementLineService interface {
	SuggestChanges(ctx context.Context, lineID, field string) (domain.ChangeSet, error)
	CreateLineMove(ctx context.Context, lineID string) (*domain.Move, error)
}

// StatementLineHandler handles statement line HTTP requests.
type StatementLineHandler struct {
	statementUC StatementLineService
}

// NewStatementLineHandler creates a new StatementLineHandler.
func NewStatementLineHandler(statementUC StatementLineService) *StatementLineHandler {
	return &StatementLineHandler{statementUC: statementUC}
}

// SuggestChanges returns the field values to propose after an edit of the
// invoice or payment of a line.
func (h *StatementLineHandler) SuggestChanges(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	field := chi.URLParam(r, "field")
	if id == "" || field == "" {
		writeError(w, http.StatusBadRequest, "missing statement line ID or field", "")
		return
	}

	changes, err := h.statementUC.SuggestChanges(r.Context(), id, field)
	if err != nil {
		writeDomainError(w, "failed to suggest changes", err)
		return
	}

	if changes == nil {
		changes = domain.ChangeSet{}
	}

	writeJSON(w, http.StatusOK, dto.ChangeSetResponse{
		LineID:  id,
		Field:   field,
		Changes: changes,
	})
}

// CreateMove creates the move of a statement line.
func (h *StatementLineHandler) CreateMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing statement line ID", "")
		return
	}

	move, err := h.statementUC.CreateLineMove(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to create statement move", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MoveFromDomain(move))
}
