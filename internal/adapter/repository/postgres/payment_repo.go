package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

const paymentSelect = `
SELECT p.id, p.kind, p.amount, p.date, p.state, p.group_id, p.journal_id,
       p.line_id, p.processing_move_id, p.clearing_move_id, p.created_at, p.updated_at,
       c.id, c.name, c.currency, pt.id, pt.name
FROM payments p
JOIN companies c ON c.id = p.company_id
LEFT JOIN parties pt ON pt.id = p.party_id`

const paymentJournalSelect = `
SELECT j.id, j.name, j.currency, j.clearing_percent,
       pa.id, pa.code, pa.name, pa.party_required, pa.reconcile,
       pj.id, pj.code, pj.name,
       ca.id, ca.code, ca.name, ca.party_required, ca.reconcile,
       cj.id, cj.code, cj.name
FROM payment_journals j
LEFT JOIN accounts pa ON pa.id = j.processing_account_id
LEFT JOIN journals pj ON pj.id = j.processing_journal_id
LEFT JOIN accounts ca ON ca.id = j.clearing_account_id
LEFT JOIN journals cj ON cj.id = j.clearing_journal_id
WHERE j.id = ANY($1)`

// PaymentRepository implements usecase.PaymentRepository and the base
// usecase.PaymentTransitions on top of the payments table.
type PaymentRepository struct {
	db    DB
	idGen usecase.IDGenerator
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db DB, idGen usecase.IDGenerator) *PaymentRepository {
	return &PaymentRepository{db: db, idGen: idGen}
}

// GetByIDsForUpdate locks the payment rows and loads them fully, in the
// order of ids. Unknown IDs are skipped; callers compare lengths.
func (r *PaymentRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Payment, error) {
	byID, err := loadPayments(ctx, tx.(*Tx).PgxTx(), ids, true)
	if err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

// GetByID loads a payment without locking it.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	byID, err := loadPayments(ctx, r.db, []string{id}, false)
	if err != nil {
		return nil, err
	}

	p, ok := byID[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

// SetProcessingMove records the processing move of a payment.
func (r *PaymentRepository) SetProcessingMove(ctx context.Context, tx usecase.Transaction, paymentID, moveID string) error {
	return r.setMove(ctx, tx, "processing_move_id", paymentID, moveID)
}

// SetClearingMove records the clearing move of a payment.
func (r *PaymentRepository) SetClearingMove(ctx context.Context, tx usecase.Transaction, paymentID, moveID string) error {
	return r.setMove(ctx, tx, "clearing_move_id", paymentID, moveID)
}

func (r *PaymentRepository) setMove(ctx context.Context, tx usecase.Transaction, column, paymentID, moveID string) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx,
		`UPDATE payments SET `+column+` = $2, updated_at = $3 WHERE id = $1`,
		paymentID, moveID, timeToPgTimestamptz(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("set %s of payment %s: %w", column, paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// ClearProcessingMove unlinks the processing move of each payment.
func (r *PaymentRepository) ClearProcessingMove(ctx context.Context, tx usecase.Transaction, paymentIDs []string) error {
	return r.clearMove(ctx, tx, "processing_move_id", paymentIDs)
}

// ClearClearingMove unlinks the clearing move of each payment.
func (r *PaymentRepository) ClearClearingMove(ctx context.Context, tx usecase.Transaction, paymentIDs []string) error {
	return r.clearMove(ctx, tx, "clearing_move_id", paymentIDs)
}

func (r *PaymentRepository) clearMove(ctx context.Context, tx usecase.Transaction, column string, paymentIDs []string) error {
	if len(paymentIDs) == 0 {
		return nil
	}

	_, err := tx.(*Tx).PgxTx().Exec(ctx,
		`UPDATE payments SET `+column+` = NULL, updated_at = $2 WHERE id = ANY($1)`,
		paymentIDs, timeToPgTimestamptz(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("clear %s: %w", column, err)
	}
	return nil
}

// Process moves payments to processing and stamps them with group, or with a
// freshly generated group when none is given.
func (r *PaymentRepository) Process(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment, group string) (string, error) {
	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return "", fmt.Errorf("payment %s: %w", p.ID, err)
		}
	}

	if group == "" {
		group = r.idGen.Generate()
	}

	if err := r.transition(ctx, tx, payments, domain.PaymentStateProcessing, group); err != nil {
		return "", err
	}
	return group, nil
}

// Succeed moves payments to succeeded.
func (r *PaymentRepository) Succeed(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment) error {
	return r.transition(ctx, tx, payments, domain.PaymentStateSucceeded, "")
}

// Fail moves payments to failed.
func (r *PaymentRepository) Fail(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment) error {
	return r.transition(ctx, tx, payments, domain.PaymentStateFailed, "")
}

// transition checks every payment first so the batch moves all or nothing,
// then guards each update on the state it was loaded in.
func (r *PaymentRepository) transition(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment, target domain.PaymentState, group string) error {
	for _, p := range payments {
		if !p.State.CanTransition(target) {
			return fmt.Errorf("payment %s %s -> %s: %w", p.ID, p.State, target, domain.ErrInvalidTransition)
		}
	}

	pgxTx := tx.(*Tx).PgxTx()
	now := time.Now().UTC()

	for _, p := range payments {
		tag, err := pgxTx.Exec(ctx, `
			UPDATE payments
			SET state = $3, group_id = COALESCE($4, group_id), updated_at = $5
			WHERE id = $1 AND state = $2`,
			p.ID, string(p.State), string(target), textOrNull(group), timeToPgTimestamptz(now),
		)
		if err != nil {
			return fmt.Errorf("update payment %s: %w", p.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("payment %s changed concurrently: %w", p.ID, domain.ErrInvalidTransition)
		}
	}

	for _, p := range payments {
		p.State = target
		p.UpdatedAt = now
		if group != "" {
			p.Group = group
		}
	}
	return nil
}

type paymentRefs struct {
	journalID        string
	lineID           pgtype.Text
	processingMoveID pgtype.Text
	clearingMoveID   pgtype.Text
}

// loadPayments reads payments with their company, party, journal, source
// line and moves. forUpdate locks the payment rows.
func loadPayments(ctx context.Context, db DB, ids []string, forUpdate bool) (map[string]*domain.Payment, error) {
	out := make(map[string]*domain.Payment, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := paymentSelect + ` WHERE p.id = ANY($1)`
	if forUpdate {
		query += ` FOR UPDATE OF p`
	}

	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]paymentRefs, len(ids))
	for rows.Next() {
		p, ref, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("load payments: %w", err)
		}
		out[p.ID] = p
		refs[p.ID] = ref
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}

	var journalIDs, lineIDs, moveIDs []string
	for _, ref := range refs {
		journalIDs = append(journalIDs, ref.journalID)
		lineIDs = appendText(lineIDs, ref.lineID)
		moveIDs = appendText(moveIDs, ref.processingMoveID)
		moveIDs = appendText(moveIDs, ref.clearingMoveID)
	}

	journals, err := loadPaymentJournals(ctx, db, journalIDs)
	if err != nil {
		return nil, err
	}
	lines, err := loadLines(ctx, db, lineIDs)
	if err != nil {
		return nil, err
	}
	moves, err := loadMoves(ctx, db, moveIDs)
	if err != nil {
		return nil, err
	}

	for id, p := range out {
		ref := refs[id]
		p.Journal = journals[ref.journalID]
		if p.Journal == nil {
			return nil, fmt.Errorf("payment %s: unknown journal %s", id, ref.journalID)
		}
		if ref.lineID.Valid {
			p.Line = lines[ref.lineID.String]
		}
		p.ProcessingMove = moveOrNil(moves, ref.processingMoveID)
		p.ClearingMove = moveOrNil(moves, ref.clearingMoveID)
	}
	return out, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, paymentRefs, error) {
	var (
		p                  domain.Payment
		ref                paymentRefs
		company            domain.Company
		kind, state        string
		amount             pgtype.Numeric
		date               pgtype.Date
		group              pgtype.Text
		created, updated   pgtype.Timestamptz
		partyID, partyName pgtype.Text
	)

	err := row.Scan(
		&p.ID, &kind, &amount, &date, &state, &group, &ref.journalID,
		&ref.lineID, &ref.processingMoveID, &ref.clearingMoveID, &created, &updated,
		&company.ID, &company.Name, &company.Currency, &partyID, &partyName,
	)
	if err != nil {
		return nil, ref, err
	}

	p.Kind = domain.PaymentKind(kind)
	p.State = domain.PaymentState(state)
	p.Amount = numericToDecimal(amount)
	p.Date = date.Time
	p.Group = group.String
	p.Company = &company
	p.CreatedAt = created.Time
	p.UpdatedAt = updated.Time
	if partyID.Valid {
		p.Party = &domain.Party{ID: partyID.String, Name: partyName.String}
	}

	return &p, ref, nil
}

type nullAccount struct {
	id, code, name           pgtype.Text
	partyRequired, reconcile pgtype.Bool
}

func (a nullAccount) account() *domain.Account {
	if !a.id.Valid {
		return nil
	}
	return &domain.Account{
		ID:            a.id.String,
		Code:          a.code.String,
		Name:          a.name.String,
		PartyRequired: a.partyRequired.Bool,
		Reconcile:     a.reconcile.Bool,
	}
}

type nullJournal struct {
	id, code, name pgtype.Text
}

func (j nullJournal) journal() *domain.Journal {
	if !j.id.Valid {
		return nil
	}
	return &domain.Journal{ID: j.id.String, Code: j.code.String, Name: j.name.String}
}

// loadPaymentJournals reads journal setups and resolves them through
// domain.NewPaymentJournal so stored configurations are validated on load.
func loadPaymentJournals(ctx context.Context, db DB, ids []string) (map[string]*domain.PaymentJournal, error) {
	rows, err := db.Query(ctx, paymentJournalSelect, ids)
	if err != nil {
		return nil, fmt.Errorf("load payment journals: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*domain.PaymentJournal, len(ids))
	for rows.Next() {
		var (
			cfg                 domain.PaymentJournalConfig
			percent             pgtype.Numeric
			procAcc, clearAcc   nullAccount
			procJrnl, clearJrnl nullJournal
		)

		err := rows.Scan(
			&cfg.ID, &cfg.Name, &cfg.Currency, &percent,
			&procAcc.id, &procAcc.code, &procAcc.name, &procAcc.partyRequired, &procAcc.reconcile,
			&procJrnl.id, &procJrnl.code, &procJrnl.name,
			&clearAcc.id, &clearAcc.code, &clearAcc.name, &clearAcc.partyRequired, &clearAcc.reconcile,
			&clearJrnl.id, &clearJrnl.code, &clearJrnl.name,
		)
		if err != nil {
			return nil, fmt.Errorf("load payment journals: %w", err)
		}

		cfg.ClearingPercent = numericToNullDecimal(percent)
		cfg.ProcessingAccount = procAcc.account()
		cfg.ProcessingJournal = procJrnl.journal()
		cfg.ClearingAccount = clearAcc.account()
		cfg.ClearingJournal = clearJrnl.journal()

		journal, err := domain.NewPaymentJournal(cfg)
		if err != nil {
			return nil, fmt.Errorf("payment journal %s: %w", cfg.ID, err)
		}
		out[journal.ID] = journal
	}
	return out, rows.Err()
}
