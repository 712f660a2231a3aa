package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/metrics"
)

// StatementLineUseCase directs statement lines bound to a processed payment
// through the processing account.
type StatementLineUseCase struct {
	base      StatementLineBase
	matcher   *ReconciliationMatcher
	lines     StatementLineRepository
	outbox    OutboxRepository
	txManager TransactionManager
	retrier   Retrier
	idGen     IDGenerator
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewStatementLineUseCase creates a new StatementLineUseCase.
func NewStatementLineUseCase(
	base StatementLineBase,
	matcher *ReconciliationMatcher,
	lines StatementLineRepository,
	outbox OutboxRepository,
	txManager TransactionManager,
	retrier Retrier,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *StatementLineUseCase {
	return &StatementLineUseCase{
		base:      base,
		matcher:   matcher,
		lines:     lines,
		outbox:    outbox,
		txManager: txManager,
		retrier:   retrier,
		idGen:     idGen,
		logger:    logger,
		metrics:   m,
	}
}

// OnChangeInvoice returns the base suggestions and, when the payment was fully
// moved to processing, proposes the processing account instead.
func (uc *StatementLineUseCase) OnChangeInvoice(ctx context.Context, line *domain.StatementLine) (domain.ChangeSet, error) {
	changes, err := uc.base.OnChangeInvoice(ctx, line)
	if err != nil {
		return nil, err
	}
	if changes == nil {
		changes = domain.ChangeSet{}
	}

	p := line.Payment
	if line.InvoiceID != "" && p != nil && p.ProcessingMove != nil &&
		p.Journal != nil && p.Journal.FullClearing() {
		proposeProcessingAccount(changes, p)
	}

	return changes, nil
}

// OnChangePayment returns the base suggestions and proposes the processing
// account for lines without invoice or account.
func (uc *StatementLineUseCase) OnChangePayment(ctx context.Context, line *domain.StatementLine) (domain.ChangeSet, error) {
	changes, err := uc.base.OnChangePayment(ctx, line)
	if err != nil {
		return nil, err
	}
	if changes == nil {
		changes = domain.ChangeSet{}
	}

	p := line.Payment
	if p != nil && line.InvoiceID == "" && p.ProcessingMove != nil && line.Account == nil {
		proposeProcessingAccount(changes, p)
	}

	return changes, nil
}

// proposeProcessingAccount sets the first processing move account that is not
// the payment's source account.
func proposeProcessingAccount(changes domain.ChangeSet, p *domain.Payment) {
	if p.Line == nil {
		return
	}
	for _, l := range p.ProcessingMove.Lines {
		if !l.Account.SameAs(p.Line.Account) {
			changes[domain.ChangeAccount] = l.Account.ID
			changes[domain.ChangeAccountRecName] = l.Account.RecName()
			return
		}
	}
}

// CreateMove creates the statement move and reconciles it with the lines of
// the succeeded payment it settles.
func (uc *StatementLineUseCase) CreateMove(ctx context.Context, tx Transaction, line *domain.StatementLine) (*domain.Move, error) {
	move, err := uc.base.CreateMove(ctx, tx, line)
	if err != nil {
		return nil, err
	}

	p := line.Payment
	if p == nil || p.State != domain.PaymentStateSucceeded || p.ProcessingMove == nil {
		return move, nil
	}

	lines := make([]*domain.Line, 0, len(move.Lines)+len(p.ProcessingMove.Lines)+3)
	lines = append(lines, move.Lines...)
	lines = append(lines, p.ProcessingMove.Lines...)
	if p.Line != nil {
		lines = append(lines, p.Line)
	}
	if p.ClearingMove != nil {
		lines = append(lines, p.ClearingMove.Lines...)
	}

	if _, err := uc.matcher.Match(ctx, tx, MatchContextStatement, ReconcilableOpen(lines)); err != nil {
		return nil, fmt.Errorf("reconcile statement move: %w", err)
	}

	return move, nil
}

// SuggestChanges loads a statement line and returns the suggestions for an
// edit of field.
func (uc *StatementLineUseCase) SuggestChanges(ctx context.Context, lineID, field string) (domain.ChangeSet, error) {
	if err := domain.ValidateChangeField(field); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	line, err := uc.lines.GetByID(ctx, tx, lineID)
	if err != nil {
		return nil, err
	}

	if field == domain.StatementFieldInvoice {
		return uc.OnChangeInvoice(ctx, line)
	}
	return uc.OnChangePayment(ctx, line)
}

// CreateLineMove creates, in its own transaction, the move of a statement line.
// A line that already has a move returns it unchanged.
func (uc *StatementLineUseCase) CreateLineMove(ctx context.Context, lineID string) (*domain.Move, error) {
	var (
		result  *domain.Move
		created bool
	)

	operation := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		line, err := uc.lines.GetByID(ctx, tx, lineID)
		if err != nil {
			return err
		}

		if line.Move != nil {
			result, created = line.Move, false
			return nil
		}

		move, err := uc.CreateMove(ctx, tx, line)
		if err != nil {
			return err
		}

		event := domain.NewStatementMoveEvent(uc.idGen.Generate(), line, move, time.Now().UTC())
		if err := uc.outbox.Create(ctx, tx, event); err != nil {
			return fmt.Errorf("record event: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result, created = move, true
		return nil
	}

	if uc.retrier != nil {
		if err := uc.retrier.Retry(ctx, operation); err != nil {
			return nil, err
		}
	} else if err := operation(); err != nil {
		return nil, err
	}

	if !created {
		return result, nil
	}

	if uc.metrics != nil {
		uc.metrics.StatementMovesCreated.Inc()
	}
	uc.logger.Info().Str("statement_line_id", lineID).Str("move_id", result.ID).Msg("statement move created")

	return result, nil
}
