package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// LineResponse represents a move line in API responses.
type LineResponse struct {
	ID                   string           `json:"id"`
	AccountID            string           `json:"account_id"`
	AccountCode          string           `json:"account_code,omitempty"`
	PartyID              string           `json:"party_id,omitempty"`
	Debit                decimal.Decimal  `json:"debit"`
	Credit               decimal.Decimal  `json:"credit"`
	SecondCurrency       string           `json:"second_currency,omitempty"`
	AmountSecondCurrency *decimal.Decimal `json:"amount_second_currency,omitempty"`
	ReconciliationID     string           `json:"reconciliation_id,omitempty"`
}

// LineFromDomain converts a domain line to response.
func LineFromDomain(l *domain.Line) *LineResponse {
	resp := &LineResponse{
		ID:               l.ID,
		PartyID:          l.PartyID(),
		Debit:            l.Debit,
		Credit:           l.Credit,
		SecondCurrency:   l.SecondCurrency,
		ReconciliationID: l.ReconciliationID,
	}
	if l.Account != nil {
		resp.AccountID = l.Account.ID
		resp.AccountCode = l.Account.Code
	}
	if l.AmountSecondCurrency.Valid {
		amount := l.AmountSecondCurrency.Decimal
		resp.AmountSecondCurrency = &amount
	}
	return resp
}

// MoveResponse represents a move in API responses.
type MoveResponse struct {
	ID        string          `json:"id"`
	JournalID string          `json:"journal_id"`
	Origin    string          `json:"origin,omitempty"`
	PeriodID  string          `json:"period_id"`
	Date      string          `json:"date"`
	State     string          `json:"state"`
	Lines     []*LineResponse `json:"lines"`
	CreatedAt time.Time       `json:"created_at"`
	PostedAt  *time.Time      `json:"posted_at,omitempty"`
}

// MoveFromDomain converts a domain move to response.
func MoveFromDomain(m *domain.Move) *MoveResponse {
	lines := make([]*LineResponse, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = LineFromDomain(l)
	}

	return &MoveResponse{
		ID:        m.ID,
		JournalID: m.JournalID,
		Origin:    m.Origin,
		PeriodID:  m.PeriodID,
		Date:      m.Date.Format(time.DateOnly),
		State:     string(m.State),
		Lines:     lines,
		CreatedAt: m.CreatedAt,
		PostedAt:  m.PostedAt,
	}
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID               string          `json:"id"`
	Kind             string          `json:"kind"`
	State            string          `json:"state"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency,omitempty"`
	Date             string          `json:"date"`
	Group            string          `json:"group,omitempty"`
	PartyID          string          `json:"party_id,omitempty"`
	ProcessingMoveID string          `json:"processing_move_id,omitempty"`
	ClearingMoveID   string          `json:"clearing_move_id,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PaymentFromDomain converts a domain payment to response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:        p.ID,
		Kind:      string(p.Kind),
		State:     string(p.State),
		Amount:    p.Amount,
		Date:      p.Date.Format(time.DateOnly),
		Group:     p.Group,
		PartyID:   p.PartyID(),
		UpdatedAt: p.UpdatedAt,
	}
	if p.Journal != nil {
		resp.Currency = p.Journal.Currency
	}
	if p.ProcessingMove != nil {
		resp.ProcessingMoveID = p.ProcessingMove.ID
	}
	if p.ClearingMove != nil {
		resp.ClearingMoveID = p.ClearingMove.ID
	}
	return resp
}

// TransitionResponse is returned by the payment workflow endpoints.
type TransitionResponse struct {
	Group    string             `json:"group,omitempty"`
	Payments []*PaymentResponse `json:"payments"`
}

// TransitionFromUseCase converts a transition result to response.
func TransitionFromUseCase(r *usecase.TransitionResult) *TransitionResponse {
	payments := make([]*PaymentResponse, len(r.Payments))
	for i, p := range r.Payments {
		payments[i] = PaymentFromDomain(p)
	}
	return &TransitionResponse{Group: r.Group, Payments: payments}
}

// ChangeSetResponse carries the suggestions for a statement line edit.
type ChangeSetResponse struct {
	LineID  string           `json:"line_id"`
	Field   string           `json:"field"`
	Changes domain.ChangeSet `json:"changes"`
}

// ConsistencyResponse is the result of a ledger consistency check.
type ConsistencyResponse struct {
	Consistent      bool            `json:"consistent"`
	TotalDebit      decimal.Decimal `json:"total_debit"`
	TotalCredit     decimal.Decimal `json:"total_credit"`
	UnbalancedMoves []string        `json:"unbalanced_moves"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	unbalanced := r.UnbalancedMoves
	if unbalanced == nil {
		unbalanced = []string{}
	}
	return &ConsistencyResponse{
		Consistent:      r.Consistent(),
		TotalDebit:      r.TotalDebit,
		TotalCredit:     r.TotalCredit,
		UnbalancedMoves: unbalanced,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
