package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

// ProcessingMoveGenerator builds the move shifting a payment's amount from its
// source account into the journal's processing account.
type ProcessingMoveGenerator struct {
	clock     Clock
	periods   PeriodFinder
	converter CurrencyConverter
	idGen     IDGenerator
}

// NewProcessingMoveGenerator creates a new ProcessingMoveGenerator.
func NewProcessingMoveGenerator(clock Clock, periods PeriodFinder, converter CurrencyConverter, idGen IDGenerator) *ProcessingMoveGenerator {
	return &ProcessingMoveGenerator{
		clock:     clock,
		periods:   periods,
		converter: converter,
		idGen:     idGen,
	}
}

// Generate returns the processing move of payment. It returns nil, nil when the
// payment has no source line or its journal has no processing stage, and the
// existing move when one was already created. Nothing is persisted.
func (g *ProcessingMoveGenerator) Generate(ctx context.Context, tx Transaction, payment *domain.Payment) (*domain.Move, error) {
	if payment.Line == nil || payment.Journal == nil || !payment.Journal.HasProcessing() {
		return nil, nil
	}

	if payment.ProcessingMove != nil {
		return payment.ProcessingMove, nil
	}

	journal := payment.Journal
	amount := payment.Amount.Mul(journal.ClearingPercent)

	local := amount
	if !payment.LocalCurrency() {
		converted, err := g.converter.Convert(ctx, journal.Currency, amount, payment.Company.Currency, payment.Date)
		if err != nil {
			return nil, fmt.Errorf("convert processing amount: %w", err)
		}
		local = converted
	}

	source := &domain.Line{
		ID:      g.idGen.Generate(),
		Account: payment.Line.Account,
		Party:   payment.Line.Account.PartyFor(payment.Line.Party),
	}
	counterpart := &domain.Line{
		ID:      g.idGen.Generate(),
		Account: journal.ProcessingAccount,
		Party:   journal.ProcessingAccount.PartyFor(payment.Line.Party),
	}

	if payment.Kind == domain.PaymentKindPayable {
		source.Debit, source.Credit = local, decimal.Zero
		counterpart.Debit, counterpart.Credit = decimal.Zero, local
	} else {
		source.Debit, source.Credit = decimal.Zero, local
		counterpart.Debit, counterpart.Credit = local, decimal.Zero
	}

	if !payment.LocalCurrency() {
		source.SecondCurrency = journal.Currency
		source.AmountSecondCurrency = decimal.NewNullDecimal(amount)
		counterpart.SecondCurrency = journal.Currency
		counterpart.AmountSecondCurrency = decimal.NewNullDecimal(amount.Neg())
	}

	date := g.clock.Today(ctx)

	period, err := g.periods.Find(ctx, tx, payment.Company.ID, date)
	if err != nil {
		return nil, fmt.Errorf("find period: %w", err)
	}

	move := &domain.Move{
		ID:        g.idGen.Generate(),
		JournalID: journal.ProcessingJournal.ID,
		Origin:    payment.ID,
		Date:      date,
		PeriodID:  period.ID,
		State:     domain.MoveStateDraft,
		Lines:     []*domain.Line{source, counterpart},
	}
	for _, l := range move.Lines {
		l.MoveID = move.ID
	}

	if err := move.Validate(); err != nil {
		return nil, fmt.Errorf("processing move for payment %s: %w", payment.ID, err)
	}

	return move, nil
}
