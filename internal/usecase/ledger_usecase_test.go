package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name        string
		repo        *fakeLedgerRepository
		want        bool
		expectedErr error
	}{
		{
			name: "happy path balanced ledger",
			repo: &fakeLedgerRepository{
				totalDebit:  decimal.NewFromInt(300),
				totalCredit: decimal.NewFromInt(300),
			},
			want: true,
		},
		{
			name: "repo error surfaces",
			repo: &fakeLedgerRepository{
				err: errors.New("db down"),
			},
			expectedErr: errors.New("db down"),
		},
		{
			name: "debits differ from credits",
			repo: &fakeLedgerRepository{
				totalDebit:  decimal.NewFromInt(310),
				totalCredit: decimal.NewFromInt(300),
			},
			expectedErr: ErrInconsistentLedger,
		},
		{
			name: "unbalanced move",
			repo: &fakeLedgerRepository{
				totalDebit:  decimal.NewFromInt(300),
				totalCredit: decimal.NewFromInt(300),
				unbalanced:  []string{"move-1"},
			},
			expectedErr: ErrInconsistentLedger,
		},
		{
			name: "unbalanced lookup error surfaces",
			repo: &fakeLedgerRepository{
				unbalancedErr: errors.New("timeout"),
			},
			expectedErr: errors.New("timeout"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewLedgerUseCase(tt.repo)
			report, err := uc.CheckConsistency(context.Background())

			if tt.expectedErr != nil {
				if err == nil || err.Error() != tt.expectedErr.Error() {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := report != nil && report.Consistent()
			if got != tt.want {
				t.Fatalf("Consistent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLedgerUseCase_RepositoryInvoked(t *testing.T) {
	repo := &fakeLedgerRepository{}
	uc := NewLedgerUseCase(repo)

	if _, err := uc.CheckConsistency(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.calls != 1 {
		t.Fatalf("expected CheckConsistency to call repository once, got %d", repo.calls)
	}
	if repo.limit != unbalancedMovesLimit {
		t.Fatalf("expected limit %d, got %d", unbalancedMovesLimit, repo.limit)
	}
}

type fakeLedgerRepository struct {
	totalDebit    decimal.Decimal
	totalCredit   decimal.Decimal
	unbalanced    []string
	err           error
	unbalancedErr error
	calls         int
	limit         int
}

func (f *fakeLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	f.calls++
	return f.totalDebit, f.totalCredit, f.err
}

func (f *fakeLedgerRepository) UnbalancedMoves(ctx context.Context, limit int) ([]string, error) {
	f.limit = limit
	return f.unbalanced, f.unbalancedErr
}
