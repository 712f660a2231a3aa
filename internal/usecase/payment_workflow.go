package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/metrics"
)

// workflowStep is one named stage of a transition pipeline.
type workflowStep struct {
	name string
	run  func(ctx context.Context) error
}

// PaymentWorkflow extends the base payment transitions with processing moves,
// clearing moves and automatic reconciliation. Every method runs inside the
// caller's transaction and leaves committing to it.
type PaymentWorkflow struct {
	base            PaymentTransitions
	generator       *ProcessingMoveGenerator
	clearing        *ClearingMoveIntegrator
	matcher         *ReconciliationMatcher
	moves           MoveRepository
	reconciliations ReconciliationRepository
	payments        PaymentRepository
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewPaymentWorkflow creates a new PaymentWorkflow.
func NewPaymentWorkflow(
	base PaymentTransitions,
	generator *ProcessingMoveGenerator,
	clearing *ClearingMoveIntegrator,
	matcher *ReconciliationMatcher,
	moves MoveRepository,
	reconciliations ReconciliationRepository,
	payments PaymentRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *PaymentWorkflow {
	return &PaymentWorkflow{
		base:            base,
		generator:       generator,
		clearing:        clearing,
		matcher:         matcher,
		moves:           moves,
		reconciliations: reconciliations,
		payments:        payments,
		logger:          logger,
		metrics:         m,
	}
}

// CreateProcessingMove builds (without persisting) the processing move of payment.
func (w *PaymentWorkflow) CreateProcessingMove(ctx context.Context, tx Transaction, payment *domain.Payment) (*domain.Move, error) {
	return w.generator.Generate(ctx, tx, payment)
}

// CreateClearingMove builds (without persisting) the clearing move of payment,
// routed through the processing account when needed.
func (w *PaymentWorkflow) CreateClearingMove(ctx context.Context, tx Transaction, payment *domain.Payment, date *time.Time) (*domain.Move, error) {
	return w.clearing.CreateClearingMove(ctx, tx, payment, date)
}

// Process moves payments to processing, books and posts their processing
// moves and reconciles source lines that the processing move settles.
func (w *PaymentWorkflow) Process(ctx context.Context, tx Transaction, payments []*domain.Payment, group string) (string, error) {
	var joined string

	err := w.runPipeline(ctx, TransitionProcess, len(payments), []workflowStep{
		{name: "base-process", run: func(ctx context.Context) error {
			g, err := w.base.Process(ctx, tx, payments, group)
			joined = g
			return err
		}},
		{name: "create-processing-moves", run: func(ctx context.Context) error {
			return w.createProcessingMoves(ctx, tx, payments)
		}},
		{name: "reconcile-processed", run: func(ctx context.Context) error {
			return w.reconcileProcessed(ctx, tx, payments)
		}},
	})
	if err != nil {
		return "", err
	}

	return joined, nil
}

// Succeed moves payments to succeeded, books missing clearing moves and
// reconciles processing against clearing lines.
func (w *PaymentWorkflow) Succeed(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
	return w.runPipeline(ctx, TransitionSucceed, len(payments), []workflowStep{
		{name: "base-succeed", run: func(ctx context.Context) error {
			return w.base.Succeed(ctx, tx, payments)
		}},
		{name: "create-clearing-moves", run: func(ctx context.Context) error {
			return w.createClearingMoves(ctx, tx, payments)
		}},
		{name: "reconcile-succeeded", run: func(ctx context.Context) error {
			return w.reconcileSucceeded(ctx, tx, payments)
		}},
	})
}

// Fail moves payments to failed and reverses their processing and clearing moves.
// Reconciliations are removed before moves are deleted or posted.
func (w *PaymentWorkflow) Fail(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
	plan := newReversalPlan()

	return w.runPipeline(ctx, TransitionFail, len(payments), []workflowStep{
		{name: "base-fail", run: func(ctx context.Context) error {
			return w.base.Fail(ctx, tx, payments)
		}},
		{name: "plan-reversal", run: func(ctx context.Context) error {
			return w.planReversal(ctx, tx, payments, plan)
		}},
		{name: "delete-reconciliations", run: func(ctx context.Context) error {
			return w.deleteReconciliations(ctx, tx, plan)
		}},
		{name: "delete-draft-moves", run: func(ctx context.Context) error {
			if len(plan.toDelete) == 0 {
				return nil
			}
			if err := w.moves.Delete(ctx, tx, plan.toDelete); err != nil {
				return err
			}
			if w.metrics != nil {
				w.metrics.DraftMovesDeleted.Add(float64(len(plan.toDelete)))
			}
			return nil
		}},
		{name: "post-cancelling-moves", run: func(ctx context.Context) error {
			if len(plan.toPost) == 0 {
				return nil
			}
			if err := w.moves.Post(ctx, tx, plan.toPost); err != nil {
				return err
			}
			if w.metrics != nil {
				w.metrics.CancellingMovesPosted.Add(float64(len(plan.toPost)))
			}
			return nil
		}},
		{name: "rereconcile", run: func(ctx context.Context) error {
			_, err := w.matcher.ReconcileBalanced(ctx, tx, MatchContextFail, plan.toReconcile.Groups())
			return err
		}},
		{name: "clear-moves", run: func(ctx context.Context) error {
			return w.clearMoves(ctx, tx, payments)
		}},
	})
}

func (w *PaymentWorkflow) runPipeline(ctx context.Context, transition string, count int, steps []workflowStep) error {
	start := time.Now()
	logger := w.logger.With().Str("transition", transition).Int("payments", count).Logger()

	for _, step := range steps {
		stepStart := time.Now()

		if err := step.run(ctx); err != nil {
			if w.metrics != nil {
				w.metrics.TransitionErrors.WithLabelValues(transition, step.name).Inc()
			}
			logger.Error().Err(err).Str("step", step.name).Msg("transition aborted")
			return fmt.Errorf("%s: %s: %w", transition, step.name, err)
		}

		elapsed := time.Since(stepStart)
		if w.metrics != nil {
			w.metrics.StepDuration.WithLabelValues(transition, step.name).Observe(elapsed.Seconds())
		}
		logger.Debug().Str("step", step.name).Dur("duration", elapsed).Msg("step done")
	}

	if w.metrics != nil {
		w.metrics.Transitions.WithLabelValues(transition).Add(float64(count))
		w.metrics.TransitionDuration.WithLabelValues(transition).Observe(time.Since(start).Seconds())
	}
	logger.Info().Dur("duration", time.Since(start)).Msg("transition done")

	return nil
}

func (w *PaymentWorkflow) createProcessingMoves(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
	byID := make(map[string]*domain.Payment, len(payments))

	var moves []*domain.Move
	for _, p := range payments {
		if p.ProcessingMove != nil {
			continue
		}

		move, err := w.CreateProcessingMove(ctx, tx, p)
		if err != nil {
			return err
		}
		if move == nil {
			continue
		}

		byID[p.ID] = p
		moves = append(moves, move)
	}

	if len(moves) == 0 {
		return nil
	}

	created, err := w.moves.Create(ctx, tx, moves)
	if err != nil {
		return fmt.Errorf("create moves: %w", err)
	}

	for _, m := range created {
		owner, ok := byID[m.Origin]
		if !ok {
			return fmt.Errorf("processing move %s: unknown origin %q", m.ID, m.Origin)
		}
		if err := w.payments.SetProcessingMove(ctx, tx, owner.ID, m.ID); err != nil {
			return fmt.Errorf("link processing move: %w", err)
		}
		owner.ProcessingMove = m
	}

	if err := w.moves.Post(ctx, tx, created); err != nil {
		return fmt.Errorf("post moves: %w", err)
	}

	if w.metrics != nil {
		w.metrics.ProcessingMovesCreated.Add(float64(len(created)))
	}

	return nil
}

// reconcileProcessed accumulates, per party across the whole batch, the source
// line of each payment with the processing lines booked on the same account
// when they net to zero.
func (w *PaymentWorkflow) reconcileProcessed(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
	groups := NewLineGroups()

	for _, p := range payments {
		if p.Line == nil || p.Line.IsReconciled() || p.ProcessingMove == nil {
			continue
		}

		lines := append(p.ProcessingMove.LinesOn(p.Line.Account), p.Line)
		if !domain.SumBalance(lines).IsZero() {
			continue
		}
		groups.Add(PartyKey(p.Party), lines...)
	}

	_, err := w.matcher.ReconcileBalanced(ctx, tx, MatchContextProcess, groups.Groups())
	return err
}

func (w *PaymentWorkflow) createClearingMoves(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
	byID := make(map[string]*domain.Payment, len(payments))

	var moves []*domain.Move
	for _, p := range payments {
		if p.ClearingMove != nil || p.Journal == nil || !p.Journal.HasClearing() {
			continue
		}

		move, err := w.CreateClearingMove(ctx, tx, p, nil)
		if err != nil {
			return err
		}
		if move == nil {
			continue
		}

		byID[p.ID] = p
		moves = append(moves, move)
	}

	if len(moves) == 0 {
		return nil
	}

	created, err := w.moves.Create(ctx, tx, moves)
	if err != nil {
		return fmt.Errorf("create moves: %w", err)
	}

	for _, m := range created {
		owner, ok := byID[m.Origin]
		if !ok {
			return fmt.Errorf("clearing move %s: unknown origin %q", m.ID, m.Origin)
		}
		if err := w.payments.SetClearingMove(ctx, tx, owner.ID, m.ID); err != nil {
			return fmt.Errorf("link clearing move: %w", err)
		}
		owner.ClearingMove = m
	}

	if err := w.moves.Post(ctx, tx, created); err != nil {
		return fmt.Errorf("post moves: %w", err)
	}

	if w.metrics != nil {
		w.metrics.ClearingMovesCreated.Add(float64(len(created)))
	}

	return nil
}

func (w *PaymentWorkflow) reconcileSucceeded(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
	for _, p := range payments {
		j := p.Journal
		if j == nil || j.ProcessingAccount == nil || p.ProcessingMove == nil ||
			j.ClearingAccount == nil || p.ClearingMove == nil {
			continue
		}

		lines := make([]*domain.Line, 0, len(p.ProcessingMove.Lines)+len(p.ClearingMove.Lines))
		lines = append(lines, p.ProcessingMove.Lines...)
		lines = append(lines, p.ClearingMove.Lines...)

		if _, err := w.matcher.Match(ctx, tx, MatchContextSucceed, ReconcilableOpen(lines)); err != nil {
			return fmt.Errorf("payment %s: %w", p.ID, err)
		}
	}

	return nil
}

// reversalPlan collects what failing a batch has to undo.
type reversalPlan struct {
	toDelete      []*domain.Move
	toPost        []*domain.Move
	toUnreconcile []string
	unreconcile   map[string]bool
	toReconcile   *LineGroups
	// known are the in-memory lines whose reconciliation may be removed.
	known []*domain.Line
}

func newReversalPlan() *reversalPlan {
	return &reversalPlan{
		unreconcile: make(map[string]bool),
		toReconcile: NewLineGroups(),
	}
}

func (p *reversalPlan) collectReconciliation(l *domain.Line) {
	if !l.IsReconciled() || p.unreconcile[l.ReconciliationID] {
		return
	}
	p.unreconcile[l.ReconciliationID] = true
	p.toUnreconcile = append(p.toUnreconcile, l.ReconciliationID)
}

func (w *PaymentWorkflow) planReversal(ctx context.Context, tx Transaction, payments []*domain.Payment, plan *reversalPlan) error {
	for _, p := range payments {
		if p.ProcessingMove == nil && p.ClearingMove == nil {
			continue
		}
		plan.known = append(plan.known, p.KnownLines()...)

		for _, move := range []*domain.Move{p.ProcessingMove, p.ClearingMove} {
			if move == nil {
				continue
			}
			if err := w.planMoveReversal(ctx, tx, p, move, plan); err != nil {
				return err
			}
		}
	}

	return nil
}

// planMoveReversal queues a draft move for deletion or books the move
// cancelling a posted one, freeing the reconciliations of both.
func (w *PaymentWorkflow) planMoveReversal(ctx context.Context, tx Transaction, p *domain.Payment, move *domain.Move, plan *reversalPlan) error {
	if move.IsDraft() {
		plan.toDelete = append(plan.toDelete, move)
		for _, l := range move.Lines {
			plan.collectReconciliation(l)
		}
		return nil
	}

	cancel, err := w.moves.Cancel(ctx, tx, move)
	if err != nil {
		return fmt.Errorf("cancel move %s: %w", move.ID, err)
	}
	plan.toPost = append(plan.toPost, cancel)
	plan.known = append(plan.known, cancel.Lines...)

	lines := make([]*domain.Line, 0, len(move.Lines)+len(cancel.Lines))
	lines = append(lines, move.Lines...)
	lines = append(lines, cancel.Lines...)

	for _, l := range lines {
		plan.collectReconciliation(l)
		if l.Account != nil && l.Account.Reconcile {
			key := GroupKey{AccountID: l.Account.ID, PartyID: p.PartyID(), HasParty: p.Party != nil}
			plan.toReconcile.Add(key, l)
		}
	}

	return nil
}

func (w *PaymentWorkflow) deleteReconciliations(ctx context.Context, tx Transaction, plan *reversalPlan) error {
	if len(plan.toUnreconcile) == 0 {
		return nil
	}

	if err := w.reconciliations.Delete(ctx, tx, plan.toUnreconcile); err != nil {
		return err
	}

	for _, l := range plan.known {
		if plan.unreconcile[l.ReconciliationID] {
			l.ReconciliationID = ""
		}
	}

	if w.metrics != nil {
		w.metrics.ReconciliationsRemoved.Add(float64(len(plan.toUnreconcile)))
	}

	return nil
}

// clearMoves unlinks the processing move of every failed payment and the
// clearing move of those that had one.
func (w *PaymentWorkflow) clearMoves(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
	ids := make([]string, 0, len(payments))
	var cleared []string
	for _, p := range payments {
		ids = append(ids, p.ID)
		if p.ClearingMove != nil {
			cleared = append(cleared, p.ID)
		}
	}

	if err := w.payments.ClearProcessingMove(ctx, tx, ids); err != nil {
		return err
	}
	if len(cleared) > 0 {
		if err := w.payments.ClearClearingMove(ctx, tx, cleared); err != nil {
			return err
		}
	}

	for _, p := range payments {
		p.ProcessingMove = nil
		p.ClearingMove = nil
	}

	return nil
}
