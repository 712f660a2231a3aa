package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMove_Validate(t *testing.T) {
	bank := &Account{ID: "bank"}
	payable := &Account{ID: "payable"}

	tests := []struct {
		name        string
		lines       []*Line
		expectError error
	}{
		{
			name: "balanced",
			lines: []*Line{
				{Account: payable, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
				{Account: bank, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "balanced with fractions",
			lines: []*Line{
				{Account: payable, Debit: decimal.RequireFromString("33.33")},
				{Account: payable, Debit: decimal.RequireFromString("66.67")},
				{Account: bank, Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "unbalanced",
			lines: []*Line{
				{Account: payable, Debit: decimal.NewFromInt(100)},
				{Account: bank, Credit: decimal.RequireFromString("99.99")},
			},
			expectError: ErrUnbalancedMove,
		},
		{
			name: "negative amount",
			lines: []*Line{
				{Account: payable, Debit: decimal.NewFromInt(-100)},
				{Account: bank, Debit: decimal.NewFromInt(100)},
			},
			expectError: ErrInvalidLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Move{Lines: tt.lines}
			err := m.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestMove_Negate(t *testing.T) {
	payable := &Account{ID: "payable"}
	bank := &Account{ID: "bank"}
	party := &Party{ID: "supplier"}

	m := &Move{Lines: []*Line{
		{
			ID: "l1", Account: payable, Party: party,
			Debit: decimal.NewFromInt(200), Credit: decimal.Zero,
			SecondCurrency:       "USD",
			AmountSecondCurrency: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		},
		{ID: "l2", Account: bank, Debit: decimal.Zero, Credit: decimal.NewFromInt(200)},
	}}

	neg := m.Negate()
	if len(neg) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(neg))
	}

	if !neg[0].Credit.Equal(decimal.NewFromInt(200)) || !neg[0].Debit.IsZero() {
		t.Errorf("expected first line to be credited 200, got debit=%s credit=%s", neg[0].Debit, neg[0].Credit)
	}
	if neg[0].Party != party {
		t.Error("expected party to be preserved")
	}
	if !neg[0].AmountSecondCurrency.Decimal.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("expected second currency amount -100, got %s", neg[0].AmountSecondCurrency.Decimal)
	}
	if neg[1].AmountSecondCurrency.Valid {
		t.Error("expected no second currency amount on second line")
	}
	if neg[0].ID != "" {
		t.Error("expected negated lines to have no ID")
	}

	all := append(append([]*Line{}, m.Lines...), neg...)
	if !SumBalance(all).IsZero() {
		t.Errorf("expected move and its negation to net to zero, got %s", SumBalance(all))
	}
}

func TestMove_ReconciliationIDs(t *testing.T) {
	m := &Move{Lines: []*Line{
		{ReconciliationID: "r1"},
		{ReconciliationID: ""},
		{ReconciliationID: "r1"},
		{ReconciliationID: "r2"},
	}}

	ids := m.ReconciliationIDs()
	if len(ids) != 2 || ids[0] != "r1" || ids[1] != "r2" {
		t.Errorf("unexpected reconciliation IDs %v", ids)
	}
}

func TestNewReconciliation(t *testing.T) {
	now := time.Now().UTC()

	t.Run("balanced lines are marked", func(t *testing.T) {
		lines := []*Line{
			{ID: "l1", Debit: decimal.NewFromInt(100)},
			{ID: "l2", Credit: decimal.NewFromInt(100)},
		}

		rec, err := NewReconciliation("rec-1", lines, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rec.LineIDs) != 2 {
			t.Errorf("expected 2 lines, got %d", len(rec.LineIDs))
		}
		for _, l := range lines {
			if l.ReconciliationID != "rec-1" {
				t.Errorf("expected line %s to be reconciled", l.ID)
			}
		}
	})

	t.Run("unbalanced lines rejected", func(t *testing.T) {
		lines := []*Line{
			{ID: "l1", Debit: decimal.NewFromInt(100)},
			{ID: "l2", Credit: decimal.RequireFromString("100.01")},
		}

		if _, err := NewReconciliation("rec-1", lines, now); !errors.Is(err, ErrUnbalancedReconcile) {
			t.Fatalf("expected ErrUnbalancedReconcile, got %v", err)
		}
		if lines[0].IsReconciled() {
			t.Error("expected line to stay unreconciled")
		}
	})

	t.Run("reconciled line rejected", func(t *testing.T) {
		lines := []*Line{
			{ID: "l1", Debit: decimal.NewFromInt(100), ReconciliationID: "old"},
			{ID: "l2", Credit: decimal.NewFromInt(100)},
		}

		if _, err := NewReconciliation("rec-1", lines, now); !errors.Is(err, ErrLineAlreadyReconciled) {
			t.Fatalf("expected ErrLineAlreadyReconciled, got %v", err)
		}
	})

	t.Run("planned lines stay unmarked until marked", func(t *testing.T) {
		lines := []*Line{
			{ID: "l1", Debit: decimal.NewFromInt(30)},
			{ID: "l2", Credit: decimal.NewFromInt(30)},
		}

		rec, err := PlanReconciliation("rec-2", lines, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, l := range lines {
			if l.IsReconciled() {
				t.Errorf("expected line %s to stay open", l.ID)
			}
		}

		rec.Mark(lines)
		for _, l := range lines {
			if l.ReconciliationID != "rec-2" {
				t.Errorf("expected line %s to be reconciled", l.ID)
			}
		}
	})

	t.Run("empty rejected", func(t *testing.T) {
		if _, err := NewReconciliation("rec-1", nil, now); !errors.Is(err, ErrEmptyReconciliation) {
			t.Fatalf("expected ErrEmptyReconciliation, got %v", err)
		}
	})
}
