package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	db DB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CheckConsistency sums debit and credit over every posted line.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (totalDebit decimal.Decimal, totalCredit decimal.Decimal, err error) {
	var debit, credit pgtype.Numeric

	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM move_lines l
		JOIN moves m ON m.id = l.move_id
		WHERE m.state = 'posted'`,
	).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	totalDebit, err = toDecimal(debit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	totalCredit, err = toDecimal(credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return totalDebit, totalCredit, nil
}

// UnbalancedMoves returns up to limit posted moves whose lines do not net to zero.
func (r *LedgerRepository) UnbalancedMoves(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id
		FROM moves m
		JOIN move_lines l ON l.move_id = m.id
		WHERE m.state = 'posted'
		GROUP BY m.id
		HAVING SUM(l.debit) <> SUM(l.credit)
		ORDER BY m.id
		LIMIT $1`,
		int32(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func toDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(n.Int.String())
	if err != nil {
		return decimal.Zero, err
	}

	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d, nil
}
