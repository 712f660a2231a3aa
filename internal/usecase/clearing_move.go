package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

// ClearingMoveIntegrator routes a payment's clearing move through the
// processing account once the payment has a processing move.
type ClearingMoveIntegrator struct {
	base ClearingMoveFactory
}

// NewClearingMoveIntegrator wraps base, the collaborator that builds the clearing move.
func NewClearingMoveIntegrator(base ClearingMoveFactory) *ClearingMoveIntegrator {
	return &ClearingMoveIntegrator{base: base}
}

// CreateClearingMove builds the clearing move with base and integrates it.
func (i *ClearingMoveIntegrator) CreateClearingMove(ctx context.Context, tx Transaction, payment *domain.Payment, date *time.Time) (*domain.Move, error) {
	move, err := i.base.CreateClearingMove(ctx, tx, payment, date)
	if err != nil {
		return nil, err
	}
	if move == nil {
		return nil, nil
	}

	return i.Integrate(payment, move), nil
}

// Integrate redirects the lines of move booked on the payment's source account
// to the processing account. Without a processing move, move is returned as is.
func (i *ClearingMoveIntegrator) Integrate(payment *domain.Payment, move *domain.Move) *domain.Move {
	if payment.ProcessingMove == nil || payment.Line == nil {
		return move
	}

	processing := payment.Journal.ProcessingAccount
	for _, line := range move.Lines {
		if line.Account.SameAs(payment.Line.Account) {
			line.Account = processing
			line.Party = processing.PartyFor(payment.Line.Party)
		}
	}

	return move
}

// ClearingMoveBuilder is the default clearing move factory: it moves the
// cleared share of the payment from its source account to the journal's
// clearing account.
type ClearingMoveBuilder struct {
	clock     Clock
	periods   PeriodFinder
	converter CurrencyConverter
	idGen     IDGenerator
}

// NewClearingMoveBuilder creates a new ClearingMoveBuilder.
func NewClearingMoveBuilder(clock Clock, periods PeriodFinder, converter CurrencyConverter, idGen IDGenerator) *ClearingMoveBuilder {
	return &ClearingMoveBuilder{
		clock:     clock,
		periods:   periods,
		converter: converter,
		idGen:     idGen,
	}
}

// CreateClearingMove returns nil, nil when the journal has no clearing account
// or the payment has no source line. date defaults to today.
func (b *ClearingMoveBuilder) CreateClearingMove(ctx context.Context, tx Transaction, payment *domain.Payment, date *time.Time) (*domain.Move, error) {
	journal := payment.Journal
	if payment.Line == nil || journal == nil || !journal.HasClearing() {
		return nil, nil
	}

	moveJournal := journal.ClearingJournal
	if moveJournal == nil {
		moveJournal = journal.ProcessingJournal
	}
	if moveJournal == nil {
		return nil, nil
	}

	moveDate := b.clock.Today(ctx)
	if date != nil {
		moveDate = truncateDate(*date)
	}

	amount := payment.Amount.Mul(journal.ClearingPercent)
	local := amount
	if !payment.LocalCurrency() {
		converted, err := b.converter.Convert(ctx, journal.Currency, amount, payment.Company.Currency, payment.Date)
		if err != nil {
			return nil, fmt.Errorf("convert clearing amount: %w", err)
		}
		local = converted
	}

	period, err := b.periods.Find(ctx, tx, payment.Company.ID, moveDate)
	if err != nil {
		return nil, fmt.Errorf("find period: %w", err)
	}

	source := &domain.Line{
		ID:      b.idGen.Generate(),
		Account: payment.Line.Account,
		Party:   payment.Line.Account.PartyFor(payment.Line.Party),
	}
	clearing := &domain.Line{
		ID:      b.idGen.Generate(),
		Account: journal.ClearingAccount,
		Party:   journal.ClearingAccount.PartyFor(payment.Line.Party),
	}

	if payment.Kind == domain.PaymentKindPayable {
		source.Debit, source.Credit = local, decimal.Zero
		clearing.Debit, clearing.Credit = decimal.Zero, local
	} else {
		source.Debit, source.Credit = decimal.Zero, local
		clearing.Debit, clearing.Credit = local, decimal.Zero
	}

	if !payment.LocalCurrency() {
		source.SecondCurrency = journal.Currency
		source.AmountSecondCurrency = decimal.NewNullDecimal(amount)
		clearing.SecondCurrency = journal.Currency
		clearing.AmountSecondCurrency = decimal.NewNullDecimal(amount.Neg())
	}

	move := &domain.Move{
		ID:        b.idGen.Generate(),
		JournalID: moveJournal.ID,
		Origin:    payment.ID,
		Date:      moveDate,
		PeriodID:  period.ID,
		State:     domain.MoveStateDraft,
		Lines:     []*domain.Line{source, clearing},
	}
	for _, l := range move.Lines {
		l.MoveID = move.ID
	}

	if err := move.Validate(); err != nil {
		return nil, fmt.Errorf("clearing move for payment %s: %w", payment.ID, err)
	}

	return move, nil
}
