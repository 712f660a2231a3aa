package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

var moveLineColumns = []string{
	"id", "move_id", "position", "account_id", "party_id", "debit", "credit",
	"second_currency", "amount_second_currency", "reconciliation_id",
}

// MoveRepository implements usecase.MoveRepository.
type MoveRepository struct {
	db    DB
	idGen usecase.IDGenerator
}

// NewMoveRepository creates a new MoveRepository.
func NewMoveRepository(db DB, idGen usecase.IDGenerator) *MoveRepository {
	return &MoveRepository{db: db, idGen: idGen}
}

// Create inserts draft moves and copies their lines in.
func (r *MoveRepository) Create(ctx context.Context, tx usecase.Transaction, moves []*domain.Move) ([]*domain.Move, error) {
	pgxTx := tx.(*Tx).PgxTx()
	now := time.Now().UTC()

	var rows [][]any
	for _, m := range moves {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("move %s: %w", m.ID, err)
		}
		if m.ID == "" {
			m.ID = r.idGen.Generate()
		}
		if m.State == "" {
			m.State = domain.MoveStateDraft
		}
		m.CreatedAt = now

		_, err := pgxTx.Exec(ctx, `
			INSERT INTO moves (id, journal_id, origin, date, period_id, state, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.ID, m.JournalID, textOrNull(m.Origin), timeToPgDate(m.Date), m.PeriodID,
			string(m.State), timeToPgTimestamptz(now),
		)
		if err != nil {
			return nil, fmt.Errorf("insert move %s: %w", m.ID, err)
		}

		for i, l := range m.Lines {
			if l.ID == "" {
				l.ID = r.idGen.Generate()
			}
			l.MoveID = m.ID
			rows = append(rows, []any{
				l.ID, m.ID, int32(i), l.Account.ID, textOrNull(l.PartyID()),
				decimalToNumeric(l.Debit), decimalToNumeric(l.Credit),
				textOrNull(l.SecondCurrency), nullDecimalToNumeric(l.AmountSecondCurrency),
				textOrNull(l.ReconciliationID),
			})
		}
	}

	if len(rows) > 0 {
		n, err := pgxTx.CopyFrom(ctx, pgx.Identifier{"move_lines"}, moveLineColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return nil, fmt.Errorf("insert move lines: %w", err)
		}
		if int(n) != len(rows) {
			return nil, fmt.Errorf("insert move lines: copied %d of %d", n, len(rows))
		}
	}

	return moves, nil
}

// Post moves drafts to posted. Posting a move that is no longer a draft
// fails with domain.ErrMovePosted.
func (r *MoveRepository) Post(ctx context.Context, tx usecase.Transaction, moves []*domain.Move) error {
	if len(moves) == 0 {
		return nil
	}

	pgxTx := tx.(*Tx).PgxTx()
	now := time.Now().UTC()

	ids := moveIDs(moves)
	tag, err := pgxTx.Exec(ctx, `
		UPDATE moves SET state = 'posted', posted_at = $2
		WHERE id = ANY($1) AND state = 'draft'`,
		ids, timeToPgTimestamptz(now),
	)
	if err != nil {
		return fmt.Errorf("post moves: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return domain.ErrMovePosted
	}

	for _, m := range moves {
		m.State = domain.MoveStatePosted
		m.PostedAt = &now
	}
	return nil
}

// Delete removes draft moves. Lines still held by a reconciliation block
// the deletion.
func (r *MoveRepository) Delete(ctx context.Context, tx usecase.Transaction, moves []*domain.Move) error {
	if len(moves) == 0 {
		return nil
	}

	for _, m := range moves {
		if !m.IsDraft() {
			return fmt.Errorf("delete move %s: %w", m.ID, domain.ErrMovePosted)
		}
	}

	pgxTx := tx.(*Tx).PgxTx()
	ids := moveIDs(moves)

	var reconciled int
	err := pgxTx.QueryRow(ctx, `
		SELECT count(*) FROM move_lines
		WHERE move_id = ANY($1) AND reconciliation_id IS NOT NULL`,
		ids,
	).Scan(&reconciled)
	if err != nil {
		return fmt.Errorf("delete moves: %w", err)
	}
	if reconciled > 0 {
		return domain.ErrLineAlreadyReconciled
	}

	if _, err := pgxTx.Exec(ctx, `DELETE FROM move_lines WHERE move_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete move lines: %w", err)
	}

	tag, err := pgxTx.Exec(ctx, `DELETE FROM moves WHERE id = ANY($1) AND state = 'draft'`, ids)
	if err != nil {
		return fmt.Errorf("delete moves: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return domain.ErrMovePosted
	}

	return nil
}

// Cancel creates the draft move negating a posted move.
func (r *MoveRepository) Cancel(ctx context.Context, tx usecase.Transaction, move *domain.Move) (*domain.Move, error) {
	if move.IsDraft() {
		return nil, fmt.Errorf("cancel move %s: %w", move.ID, domain.ErrMoveNotPosted)
	}

	cancel := &domain.Move{
		ID:        r.idGen.Generate(),
		JournalID: move.JournalID,
		Origin:    move.Origin,
		Date:      move.Date,
		PeriodID:  move.PeriodID,
		State:     domain.MoveStateDraft,
		Lines:     move.Negate(),
	}

	if _, err := r.Create(ctx, tx, []*domain.Move{cancel}); err != nil {
		return nil, fmt.Errorf("cancel move %s: %w", move.ID, err)
	}
	return cancel, nil
}

// GetByID loads a move with its lines.
func (r *MoveRepository) GetByID(ctx context.Context, id string) (*domain.Move, error) {
	moves, err := loadMoves(ctx, r.db, []string{id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMoveNotFound
		}
		return nil, err
	}

	m, ok := moves[id]
	if !ok {
		return nil, domain.ErrMoveNotFound
	}
	return m, nil
}

func moveIDs(moves []*domain.Move) []string {
	ids := make([]string, 0, len(moves))
	for _, m := range moves {
		ids = append(ids, m.ID)
	}
	return ids
}
