package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// unbalancedMovesLimit caps how many offending moves a report lists.
const unbalancedMovesLimit = 50

// ConsistencyReport summarizes a ledger consistency check.
type ConsistencyReport struct {
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	UnbalancedMoves []string
}

// Consistent reports whether debits equal credits everywhere.
func (r *ConsistencyReport) Consistent() bool {
	return r.TotalDebit.Equal(r.TotalCredit) && len(r.UnbalancedMoves) == 0
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies that posted lines balance overall and per move.
// The report is returned alongside ErrInconsistentLedger when they do not.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	debit, credit, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	unbalanced, err := uc.ledgerRepo.UnbalancedMoves(ctx, unbalancedMovesLimit)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		TotalDebit:      debit,
		TotalCredit:     credit,
		UnbalancedMoves: unbalanced,
	}

	if !report.Consistent() {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
