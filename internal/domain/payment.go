package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind determines which side the payment lines take.
type PaymentKind string

const (
	PaymentKindPayable    PaymentKind = "payable"
	PaymentKindReceivable PaymentKind = "receivable"
)

// IsValid checks if the kind is known.
func (k PaymentKind) IsValid() bool {
	return k == PaymentKindPayable || k == PaymentKindReceivable
}

// PaymentState is the workflow state of a payment.
type PaymentState string

const (
	PaymentStateDraft      PaymentState = "draft"
	PaymentStateApproved   PaymentState = "approved"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateSucceeded  PaymentState = "succeeded"
	PaymentStateFailed     PaymentState = "failed"
)

var paymentTransitions = map[PaymentState][]PaymentState{
	PaymentStateDraft:      {PaymentStateApproved},
	PaymentStateApproved:   {PaymentStateDraft, PaymentStateProcessing},
	PaymentStateProcessing: {PaymentStateSucceeded, PaymentStateFailed},
	PaymentStateSucceeded:  {PaymentStateFailed},
	PaymentStateFailed:     {PaymentStateSucceeded},
}

// CanTransition reports whether a payment may move from s to target.
func (s PaymentState) CanTransition(target PaymentState) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Payment is an outgoing or incoming payment tracked through processing.
type Payment struct {
	ID      string
	Company *Company
	Journal *PaymentJournal
	Kind    PaymentKind
	Amount  decimal.Decimal
	Date    time.Time
	State   PaymentState
	Group   string
	Party   *Party
	// Line is the ledger line the payment settles, typically an invoice line.
	Line           *Line
	ProcessingMove *Move
	ClearingMove   *Move
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks payment invariants.
func (p *Payment) Validate() error {
	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}

	if !p.Kind.IsValid() {
		return ErrInvalidPaymentKind
	}

	return nil
}

// LocalCurrency reports whether the journal currency is the company currency.
func (p *Payment) LocalCurrency() bool {
	return p.Journal.Currency == p.Company.Currency
}

// PartyID returns the party ID, or "" when the payment has no party.
func (p *Payment) PartyID() string {
	if p.Party == nil {
		return ""
	}
	return p.Party.ID
}

// KnownLines returns every line the payment refers to: source line,
// processing move and clearing move lines.
func (p *Payment) KnownLines() []*Line {
	var lines []*Line
	if p.Line != nil {
		lines = append(lines, p.Line)
	}
	if p.ProcessingMove != nil {
		lines = append(lines, p.ProcessingMove.Lines...)
	}
	if p.ClearingMove != nil {
		lines = append(lines, p.ClearingMove.Lines...)
	}
	return lines
}
