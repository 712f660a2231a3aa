package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/adapter/http/dto"
	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

type paymentServiceStub struct {
	processFn func(ctx context.Context, ids []string, group string) (*usecase.TransitionResult, error)
	succeedFn func(ctx context.Context, ids []string) (*usecase.TransitionResult, error)
	failFn    func(ctx context.Context, ids []string) (*usecase.TransitionResult, error)
	getFn     func(ctx context.Context, id string) (*domain.Payment, error)
	moveFn    func(ctx context.Context, paymentID string) (*domain.Move, error)
}

func (s *paymentServiceStub) ProcessPayments(ctx context.Context, ids []string, group string) (*usecase.TransitionResult, error) {
	return s.processFn(ctx, ids, group)
}

func (s *paymentServiceStub) SucceedPayments(ctx context.Context, ids []string) (*usecase.TransitionResult, error) {
	return s.succeedFn(ctx, ids)
}

func (s *paymentServiceStub) FailPayments(ctx context.Context, ids []string) (*usecase.TransitionResult, error) {
	return s.failFn(ctx, ids)
}

func (s *paymentServiceStub) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.getFn(ctx, id)
}

func (s *paymentServiceStub) GetProcessingMove(ctx context.Context, paymentID string) (*domain.Move, error) {
	return s.moveFn(ctx, paymentID)
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPaymentHandler_Process_Success(t *testing.T) {
	var (
		gotIDs   []string
		gotGroup string
	)
	h := NewPaymentHandler(&paymentServiceStub{
		processFn: func(ctx context.Context, ids []string, group string) (*usecase.TransitionResult, error) {
			gotIDs, gotGroup = ids, group
			return &usecase.TransitionResult{
				Group: "grp-1",
				Payments: []*domain.Payment{
					{ID: "pay-1", State: domain.PaymentStateProcessing, Amount: decimal.RequireFromString("10")},
				},
			}, nil
		},
	})

	body := `{"payment_ids":["pay-1"],"group":""}`
	req := httptest.NewRequest(http.MethodPost, "/payments/process", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Process(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotIDs) != 1 || gotIDs[0] != "pay-1" || gotGroup != "" {
		t.Fatalf("unexpected input ids=%v group=%q", gotIDs, gotGroup)
	}

	var resp dto.TransitionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Group != "grp-1" || len(resp.Payments) != 1 || resp.Payments[0].State != "processing" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPaymentHandler_Process_InvalidBody(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"payment_ids":`},
		{"empty batch", `{"payment_ids":[]}`},
		{"duplicates", `{"payment_ids":["a","a"]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/payments/process", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Process(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestPaymentHandler_Succeed_InvalidTransition(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{
		succeedFn: func(ctx context.Context, ids []string) (*usecase.TransitionResult, error) {
			return nil, domain.ErrInvalidTransition
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/payments/succeed", strings.NewReader(`{"payment_ids":["pay-1"]}`))
	rec := httptest.NewRecorder()

	h.Succeed(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestPaymentHandler_Fail_Success(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{
		failFn: func(ctx context.Context, ids []string) (*usecase.TransitionResult, error) {
			return &usecase.TransitionResult{Payments: []*domain.Payment{
				{ID: ids[0], State: domain.PaymentStateFailed},
			}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/payments/fail", strings.NewReader(`{"payment_ids":["pay-9"]}`))
	rec := httptest.NewRecorder()

	h.Fail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransitionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Payments[0].ID != "pay-9" || resp.Payments[0].State != "failed" {
		t.Fatalf("unexpected response: %+v", resp.Payments[0])
	}
}

func TestPaymentHandler_Get(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Payment, error) {
			if id != "pay-1" {
				return nil, domain.ErrPaymentNotFound
			}
			return &domain.Payment{ID: id, State: domain.PaymentStateApproved}, nil
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/payments/pay-1", nil), map[string]string{"id": "pay-1"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/payments/nope", nil), map[string]string{"id": "nope"})
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPaymentHandler_GetProcessingMove(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{
		moveFn: func(ctx context.Context, paymentID string) (*domain.Move, error) {
			if paymentID == "pay-draft" {
				return nil, domain.ErrMoveNotFound
			}
			return &domain.Move{ID: "move-1", Origin: paymentID, State: domain.MoveStatePosted}, nil
		},
	})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/payments/pay-1/processing-move", nil), map[string]string{"id": "pay-1"})
	rec := httptest.NewRecorder()
	h.GetProcessingMove(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.MoveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "move-1" || resp.Origin != "pay-1" {
		t.Fatalf("unexpected move: %+v", resp)
	}

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/payments/pay-draft/processing-move", nil), map[string]string{"id": "pay-draft"})
	rec = httptest.NewRecorder()
	h.GetProcessingMove(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPaymentHandler_GetProcessingMove_MissingID(t *testing.T) {
	h := NewPaymentHandler(&paymentServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/payments//processing-move", nil)
	rec := httptest.NewRecorder()
	h.GetProcessingMove(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
