package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

const statementLineSelect = `
SELECT s.id, s.statement_id, s.journal_id, s.company_id, s.date, s.amount, s.description,
       ba.id, ba.code, ba.name, ba.party_required, ba.reconcile,
       a.id, a.code, a.name, a.party_required, a.reconcile,
       pt.id, pt.name, s.invoice_id,
       ia.id, ia.code, ia.name, ia.party_required, ia.reconcile,
       s.payment_id, s.move_id
FROM statement_lines s
LEFT JOIN accounts ba ON ba.id = s.bank_account_id
LEFT JOIN accounts a ON a.id = s.account_id
LEFT JOIN parties pt ON pt.id = s.party_id
LEFT JOIN accounts ia ON ia.id = s.invoice_account_id
WHERE s.id = $1`

// StatementLineRepository implements usecase.StatementLineRepository.
type StatementLineRepository struct {
	db DB
}

// NewStatementLineRepository creates a new StatementLineRepository.
func NewStatementLineRepository(db DB) *StatementLineRepository {
	return &StatementLineRepository{db: db}
}

// GetByID loads a statement line with its accounts, payment and move.
func (r *StatementLineRepository) GetByID(ctx context.Context, tx usecase.Transaction, id string) (*domain.StatementLine, error) {
	db := dbFor(r.db, tx)

	var (
		line                      domain.StatementLine
		date                      pgtype.Date
		amount                    pgtype.Numeric
		description, invoiceID    pgtype.Text
		bank, account, invoiceAcc nullAccount
		partyID, partyName        pgtype.Text
		paymentID, moveID         pgtype.Text
	)

	err := db.QueryRow(ctx, statementLineSelect, id).Scan(
		&line.ID, &line.StatementID, &line.JournalID, &line.CompanyID, &date, &amount, &description,
		&bank.id, &bank.code, &bank.name, &bank.partyRequired, &bank.reconcile,
		&account.id, &account.code, &account.name, &account.partyRequired, &account.reconcile,
		&partyID, &partyName, &invoiceID,
		&invoiceAcc.id, &invoiceAcc.code, &invoiceAcc.name, &invoiceAcc.partyRequired, &invoiceAcc.reconcile,
		&paymentID, &moveID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatementLineNotFound
		}
		return nil, fmt.Errorf("load statement line %s: %w", id, err)
	}

	line.Date = date.Time
	line.Amount = numericToDecimal(amount)
	line.Description = description.String
	line.BankAccount = bank.account()
	line.Account = account.account()
	line.InvoiceID = invoiceID.String
	line.InvoiceAccount = invoiceAcc.account()
	if partyID.Valid {
		line.Party = &domain.Party{ID: partyID.String, Name: partyName.String}
	}

	if paymentID.Valid {
		payments, err := loadPayments(ctx, db, []string{paymentID.String}, false)
		if err != nil {
			return nil, err
		}
		line.Payment = payments[paymentID.String]
	}

	if moveID.Valid {
		moves, err := loadMoves(ctx, db, []string{moveID.String})
		if err != nil {
			return nil, err
		}
		line.Move = moves[moveID.String]
	}

	return &line, nil
}

// SetMove records the move created for a statement line.
func (r *StatementLineRepository) SetMove(ctx context.Context, tx usecase.Transaction, lineID, moveID string) error {
	tag, err := tx.(*Tx).PgxTx().Exec(ctx,
		`UPDATE statement_lines SET move_id = $2 WHERE id = $1 AND move_id IS NULL`,
		lineID, moveID,
	)
	if err != nil {
		return fmt.Errorf("set move of statement line %s: %w", lineID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStatementLineNotFound
	}
	return nil
}
