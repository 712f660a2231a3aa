package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// ReconciliationRepository implements usecase.ReconciliationRepository.
type ReconciliationRepository struct {
	idGen usecase.IDGenerator
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(idGen usecase.IDGenerator) *ReconciliationRepository {
	return &ReconciliationRepository{idGen: idGen}
}

// Reconcile records a reconciliation over lines netting to zero. The lines
// are claimed with a guarded update so a concurrent reconciliation of the
// same line fails instead of overwriting it. Lines are marked only once
// every one of them was claimed.
func (r *ReconciliationRepository) Reconcile(ctx context.Context, tx usecase.Transaction, lines []*domain.Line) (*domain.Reconciliation, error) {
	now := time.Now().UTC()

	rec, err := domain.PlanReconciliation(r.idGen.Generate(), lines, now)
	if err != nil {
		return nil, err
	}

	pgxTx := tx.(*Tx).PgxTx()

	_, err = pgxTx.Exec(ctx, `INSERT INTO reconciliations (id, created_at) VALUES ($1, $2)`,
		rec.ID, timeToPgTimestamptz(now))
	if err != nil {
		return nil, fmt.Errorf("insert reconciliation: %w", err)
	}

	tag, err := pgxTx.Exec(ctx, `
		UPDATE move_lines SET reconciliation_id = $1
		WHERE id = ANY($2) AND reconciliation_id IS NULL`,
		rec.ID, rec.LineIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("reconcile lines: %w", err)
	}
	if int(tag.RowsAffected()) != len(rec.LineIDs) {
		return nil, domain.ErrLineAlreadyReconciled
	}

	rec.Mark(lines)
	return rec, nil
}

// Delete frees the lines of each reconciliation and removes it.
func (r *ReconciliationRepository) Delete(ctx context.Context, tx usecase.Transaction, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()

	if _, err := pgxTx.Exec(ctx, `UPDATE move_lines SET reconciliation_id = NULL WHERE reconciliation_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("free reconciled lines: %w", err)
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM reconciliations WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete reconciliations: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return domain.ErrReconciliationNotFound
	}

	return nil
}
