package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/payproc/internal/domain"
)

const lineSelect = `
SELECT l.id, l.move_id, a.id, a.code, a.name, a.party_required, a.reconcile,
       pt.id, pt.name, l.debit, l.credit, l.second_currency,
       l.amount_second_currency, l.reconciliation_id
FROM move_lines l
JOIN accounts a ON a.id = l.account_id
LEFT JOIN parties pt ON pt.id = l.party_id`

const moveSelect = `
SELECT id, journal_id, origin, date, period_id, state, created_at, posted_at
FROM moves`

func scanLine(row pgx.Row) (*domain.Line, error) {
	var (
		l                      domain.Line
		account                domain.Account
		partyID, partyName     pgtype.Text
		debit, credit, amount2 pgtype.Numeric
		currency2, recID       pgtype.Text
	)

	err := row.Scan(
		&l.ID, &l.MoveID,
		&account.ID, &account.Code, &account.Name, &account.PartyRequired, &account.Reconcile,
		&partyID, &partyName, &debit, &credit, &currency2,
		&amount2, &recID,
	)
	if err != nil {
		return nil, err
	}

	l.Account = &account
	if partyID.Valid {
		l.Party = &domain.Party{ID: partyID.String, Name: partyName.String}
	}
	l.Debit = numericToDecimal(debit)
	l.Credit = numericToDecimal(credit)
	l.SecondCurrency = currency2.String
	l.AmountSecondCurrency = numericToNullDecimal(amount2)
	l.ReconciliationID = recID.String

	return &l, nil
}

func collectLines(rows pgx.Rows) ([]*domain.Line, error) {
	defer rows.Close()

	var lines []*domain.Line
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// loadLines returns lines keyed by ID. Unknown IDs are absent from the map.
func loadLines(ctx context.Context, db DB, ids []string) (map[string]*domain.Line, error) {
	out := make(map[string]*domain.Line, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx, lineSelect+` WHERE l.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load lines: %w", err)
	}
	lines, err := collectLines(rows)
	if err != nil {
		return nil, fmt.Errorf("load lines: %w", err)
	}

	for _, l := range lines {
		out[l.ID] = l
	}
	return out, nil
}

// loadMoves returns moves with their lines in position order, keyed by ID.
func loadMoves(ctx context.Context, db DB, ids []string) (map[string]*domain.Move, error) {
	out := make(map[string]*domain.Move, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx, moveSelect+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load moves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, fmt.Errorf("load moves: %w", err)
		}
		out[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load moves: %w", err)
	}
	rows.Close()

	lineRows, err := db.Query(ctx, lineSelect+` WHERE l.move_id = ANY($1) ORDER BY l.move_id, l.position`, ids)
	if err != nil {
		return nil, fmt.Errorf("load move lines: %w", err)
	}
	lines, err := collectLines(lineRows)
	if err != nil {
		return nil, fmt.Errorf("load move lines: %w", err)
	}

	for _, l := range lines {
		if m, ok := out[l.MoveID]; ok {
			m.Lines = append(m.Lines, l)
		}
	}
	return out, nil
}

func scanMove(row pgx.Row) (*domain.Move, error) {
	var (
		m        domain.Move
		origin   pgtype.Text
		date     pgtype.Date
		state    string
		created  pgtype.Timestamptz
		postedAt pgtype.Timestamptz
	)

	if err := row.Scan(&m.ID, &m.JournalID, &origin, &date, &m.PeriodID, &state, &created, &postedAt); err != nil {
		return nil, err
	}

	m.Origin = origin.String
	m.Date = date.Time
	m.State = domain.MoveState(state)
	m.CreatedAt = created.Time
	m.PostedAt = pgTimestamptzToPtr(postedAt)

	return &m, nil
}

// moveOrNil resolves an optional move reference.
func moveOrNil(moves map[string]*domain.Move, id pgtype.Text) *domain.Move {
	if !id.Valid {
		return nil
	}
	return moves[id.String]
}

func appendText(ids []string, id pgtype.Text) []string {
	if id.Valid {
		ids = append(ids, id.String)
	}
	return ids
}
