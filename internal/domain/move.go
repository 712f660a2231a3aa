package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveState is the posting state of a move.
type MoveState string

const (
	MoveStateDraft  MoveState = "draft"
	MoveStatePosted MoveState = "posted"
)

// Move is a balanced accounting entry made of two or more lines.
type Move struct {
	ID        string
	JournalID string
	// Origin is the ID of the payment that caused the move, if any.
	Origin    string
	Date      time.Time
	PeriodID  string
	State     MoveState
	Lines     []*Line
	CreatedAt time.Time
	PostedAt  *time.Time
}

// Line is one debit or credit of a move.
type Line struct {
	ID                   string
	MoveID               string
	Account              *Account
	Party                *Party
	Debit                decimal.Decimal
	Credit               decimal.Decimal
	SecondCurrency       string
	AmountSecondCurrency decimal.NullDecimal
	ReconciliationID     string
}

// Balance returns debit minus credit.
func (l *Line) Balance() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// IsReconciled reports whether the line belongs to a reconciliation.
func (l *Line) IsReconciled() bool {
	return l.ReconciliationID != ""
}

// PartyID returns the party ID, or "" when the line has no party.
func (l *Line) PartyID() string {
	if l.Party == nil {
		return ""
	}
	return l.Party.ID
}

// Validate checks amounts and the double-entry invariant.
func (m *Move) Validate() error {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range m.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return ErrInvalidLine
		}
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}

	if !debit.Equal(credit) {
		return ErrUnbalancedMove
	}

	return nil
}

// IsDraft reports whether the move can still be deleted.
func (m *Move) IsDraft() bool {
	return m.State == MoveStateDraft
}

// LinesOn returns the move lines booked on account.
func (m *Move) LinesOn(account *Account) []*Line {
	var lines []*Line
	for _, l := range m.Lines {
		if l.Account.SameAs(account) {
			lines = append(lines, l)
		}
	}
	return lines
}

// ReconciliationIDs returns the distinct reconciliations the move lines belong to.
func (m *Move) ReconciliationIDs() []string {
	seen := make(map[string]bool)

	var ids []string
	for _, l := range m.Lines {
		if l.IsReconciled() && !seen[l.ReconciliationID] {
			seen[l.ReconciliationID] = true
			ids = append(ids, l.ReconciliationID)
		}
	}
	return ids
}

// Negate returns the lines that cancel m: debit and credit swapped and the
// second currency amount negated. IDs are left empty for the caller to assign.
func (m *Move) Negate() []*Line {
	lines := make([]*Line, 0, len(m.Lines))
	for _, l := range m.Lines {
		neg := &Line{
			Account:        l.Account,
			Party:          l.Party,
			Debit:          l.Credit,
			Credit:         l.Debit,
			SecondCurrency: l.SecondCurrency,
		}
		if l.AmountSecondCurrency.Valid {
			neg.AmountSecondCurrency = decimal.NewNullDecimal(l.AmountSecondCurrency.Decimal.Neg())
		}
		lines = append(lines, neg)
	}
	return lines
}
