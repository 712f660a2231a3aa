package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// PeriodRepository implements usecase.PeriodFinder.
type PeriodRepository struct {
	db DB
}

// NewPeriodRepository creates a new PeriodRepository.
func NewPeriodRepository(db DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// Find returns the open period of the company covering date.
func (r *PeriodRepository) Find(ctx context.Context, tx usecase.Transaction, companyID string, date time.Time) (*domain.Period, error) {
	var (
		p          domain.Period
		start, end pgtype.Date
	)

	err := dbFor(r.db, tx).QueryRow(ctx, `
		SELECT id, company_id, name, start_date, end_date
		FROM periods
		WHERE company_id = $1 AND state = 'open'
		  AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date DESC
		LIMIT 1`,
		companyID, timeToPgDate(date),
	).Scan(&p.ID, &p.CompanyID, &p.Name, &start, &end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company %s on %s: %w", companyID, date.Format(time.DateOnly), domain.ErrPeriodNotFound)
		}
		return nil, err
	}

	p.StartDate = start.Time
	p.EndDate = end.Time
	return &p, nil
}
