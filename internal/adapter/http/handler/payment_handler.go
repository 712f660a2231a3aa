package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payproc/internal/adapter/http/dto"
	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	ProcessPayments(ctx context.Context, ids []string, group string) (*usecase.TransitionResult, error)
	SucceedPayments(ctx context.Context, ids []string) (*usecase.TransitionResult, error)
	FailPayments(ctx context.Context, ids []string) (*usecase.TransitionResult, error)
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	GetProcessingMove(ctx context.Context, paymentID string) (*domain.Move, error)
}

// PaymentHandler handles payment workflow HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Process moves approved payments to processing.
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	result, err := h.paymentUC.ProcessPayments(r.Context(), req.PaymentIDs, req.Group)
	if err != nil {
		writeDomainError(w, "failed to process payments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransitionFromUseCase(result))
}

// Succeed marks payments as succeeded.
func (h *PaymentHandler) Succeed(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	result, err := h.paymentUC.SucceedPayments(r.Context(), req.PaymentIDs)
	if err != nil {
		writeDomainError(w, "failed to succeed payments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransitionFromUseCase(result))
}

// Fail marks payments as failed.
func (h *PaymentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBatch(w, r)
	if !ok {
		return
	}

	result, err := h.paymentUC.FailPayments(r.Context(), req.PaymentIDs)
	if err != nil {
		writeDomainError(w, "failed to fail payments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransitionFromUseCase(result))
}

// Get retrieves a payment by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	payment, err := h.paymentUC.GetPayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get payment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// GetProcessingMove returns the processing move of a payment.
func (h *PaymentHandler) GetProcessingMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment ID", "")
		return
	}

	move, err := h.paymentUC.GetProcessingMove(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get processing move", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MoveFromDomain(move))
}

func decodeBatch(w http.ResponseWriter, r *http.Request) (*dto.PaymentBatchRequest, bool) {
	var req dto.PaymentBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	if err := req.Normalize(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment batch", err.Error())
		return nil, false
	}

	return &req, true
}
