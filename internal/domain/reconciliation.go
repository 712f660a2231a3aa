package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation locks together lines whose debit minus credit sums to zero.
type Reconciliation struct {
	ID        string
	LineIDs   []string
	CreatedAt time.Time
}

// SumBalance returns the sum of debit minus credit over lines.
func SumBalance(lines []*Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Balance())
	}
	return sum
}

// NewReconciliation groups lines into a reconciliation and marks them.
// Lines must be unreconciled and net to zero exactly.
func NewReconciliation(id string, lines []*Line, now time.Time) (*Reconciliation, error) {
	rec, err := PlanReconciliation(id, lines, now)
	if err != nil {
		return nil, err
	}
	rec.Mark(lines)
	return rec, nil
}

// PlanReconciliation validates lines like NewReconciliation but leaves them
// unmarked until the reconciliation is stored.
func PlanReconciliation(id string, lines []*Line, now time.Time) (*Reconciliation, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyReconciliation
	}

	for _, l := range lines {
		if l.IsReconciled() {
			return nil, ErrLineAlreadyReconciled
		}
	}

	if !SumBalance(lines).IsZero() {
		return nil, ErrUnbalancedReconcile
	}

	rec := &Reconciliation{
		ID:        id,
		LineIDs:   make([]string, 0, len(lines)),
		CreatedAt: now,
	}
	for _, l := range lines {
		rec.LineIDs = append(rec.LineIDs, l.ID)
	}

	return rec, nil
}

// Mark sets the reconciliation of lines to r.
func (r *Reconciliation) Mark(lines []*Line) {
	for _, l := range lines {
		l.ReconciliationID = r.ID
	}
}
