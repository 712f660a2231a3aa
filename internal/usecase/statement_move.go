package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

// StatementMoveBuilder is the default statement line behaviour: plain field
// suggestions and the move booking the line between bank and counterpart.
type StatementMoveBuilder struct {
	moves   MoveRepository
	lines   StatementLineRepository
	periods PeriodFinder
	idGen   IDGenerator
}

// NewStatementMoveBuilder creates a new StatementMoveBuilder.
func NewStatementMoveBuilder(moves MoveRepository, lines StatementLineRepository, periods PeriodFinder, idGen IDGenerator) *StatementMoveBuilder {
	return &StatementMoveBuilder{
		moves:   moves,
		lines:   lines,
		periods: periods,
		idGen:   idGen,
	}
}

// OnChangeInvoice proposes the invoice's account.
func (b *StatementMoveBuilder) OnChangeInvoice(_ context.Context, line *domain.StatementLine) (domain.ChangeSet, error) {
	changes := domain.ChangeSet{}
	if line.InvoiceID != "" && line.InvoiceAccount != nil {
		changes[domain.ChangeAccount] = line.InvoiceAccount.ID
		changes[domain.ChangeAccountRecName] = line.InvoiceAccount.RecName()
	}
	return changes, nil
}

// OnChangePayment proposes the payment's party and signed amount.
func (b *StatementMoveBuilder) OnChangePayment(_ context.Context, line *domain.StatementLine) (domain.ChangeSet, error) {
	changes := domain.ChangeSet{}
	p := line.Payment
	if p == nil {
		return changes, nil
	}

	if p.Party != nil {
		changes[domain.ChangeParty] = p.Party.ID
	}

	amount := p.Amount
	if p.Kind == domain.PaymentKindPayable {
		amount = amount.Neg()
	}
	changes[domain.ChangeAmount] = amount.String()

	return changes, nil
}

// CreateMove books line against the bank account, posts the move and links it
// to the line.
func (b *StatementMoveBuilder) CreateMove(ctx context.Context, tx Transaction, line *domain.StatementLine) (*domain.Move, error) {
	if line.BankAccount == nil || line.Account == nil {
		return nil, domain.ErrMissingStatementData
	}
	if line.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}

	period, err := b.periods.Find(ctx, tx, line.CompanyID, line.Date)
	if err != nil {
		return nil, fmt.Errorf("find period: %w", err)
	}

	amount := line.Amount.Abs()
	bank := &domain.Line{
		ID:      b.idGen.Generate(),
		Account: line.BankAccount,
		Party:   line.BankAccount.PartyFor(line.Party),
	}
	counterpart := &domain.Line{
		ID:      b.idGen.Generate(),
		Account: line.Account,
		Party:   line.Account.PartyFor(line.Party),
	}

	if line.Amount.IsPositive() {
		bank.Debit, bank.Credit = amount, decimal.Zero
		counterpart.Debit, counterpart.Credit = decimal.Zero, amount
	} else {
		bank.Debit, bank.Credit = decimal.Zero, amount
		counterpart.Debit, counterpart.Credit = amount, decimal.Zero
	}

	move := &domain.Move{
		ID:        b.idGen.Generate(),
		JournalID: line.JournalID,
		Date:      line.Date,
		PeriodID:  period.ID,
		State:     domain.MoveStateDraft,
		Lines:     []*domain.Line{bank, counterpart},
	}
	if line.Payment != nil {
		move.Origin = line.Payment.ID
	}
	for _, l := range move.Lines {
		l.MoveID = move.ID
	}

	if err := move.Validate(); err != nil {
		return nil, err
	}

	created, err := b.moves.Create(ctx, tx, []*domain.Move{move})
	if err != nil {
		return nil, fmt.Errorf("create statement move: %w", err)
	}
	if len(created) != 1 {
		return nil, fmt.Errorf("create statement move: got %d moves", len(created))
	}
	move = created[0]

	if err := b.lines.SetMove(ctx, tx, line.ID, move.ID); err != nil {
		return nil, fmt.Errorf("link statement move: %w", err)
	}

	if err := b.moves.Post(ctx, tx, []*domain.Move{move}); err != nil {
		return nil, fmt.Errorf("post statement move: %w", err)
	}

	line.Move = move

	return move, nil
}
