package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

func TestPaymentWorkflow_Process(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	p := w.payment("pay-1", w.journal(t), domain.PaymentKindPayable, "100", w.supplier)
	e.add(p)

	group, err := e.workflow.Process(context.Background(), nil, []*domain.Payment{p}, "")
	require.NoError(t, err)

	assert.NotEmpty(t, group)
	assert.Equal(t, domain.PaymentStateProcessing, p.State)
	require.NotNil(t, p.ProcessingMove)
	assert.Equal(t, domain.MoveStatePosted, p.ProcessingMove.State)

	onPayable := p.ProcessingMove.LinesOn(w.payable)
	require.Len(t, onPayable, 1)
	require.True(t, p.Line.IsReconciled())
	assert.Equal(t, p.Line.ReconciliationID, onPayable[0].ReconciliationID)
	assert.False(t, p.ProcessingMove.LinesOn(w.processing)[0].IsReconciled())

	assert.Equal(t, []string{
		"payments.Process",
		"moves.Create",
		"payments.SetProcessingMove",
		"moves.Post",
		"reconciliations.Reconcile",
	}, e.ledger.Calls)

	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.ProcessingMovesCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.Transitions.WithLabelValues(usecase.TransitionProcess)))
}

func TestPaymentWorkflow_ProcessGroupsByParty(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	j := w.journal(t)

	p1 := w.payment("pay-1", j, domain.PaymentKindPayable, "100", w.supplier)
	p2 := w.payment("pay-2", j, domain.PaymentKindPayable, "40", w.supplier)
	p3 := w.payment("pay-3", j, domain.PaymentKindReceivable, "25", w.customer)
	payments := e.add(p1, p2, p3)

	_, err := e.workflow.Process(context.Background(), nil, payments, "batch-1")
	require.NoError(t, err)

	assert.Equal(t, 2, e.ledger.ReconciliationCount())
	assert.Equal(t, p1.Line.ReconciliationID, p2.Line.ReconciliationID)
	assert.NotEqual(t, p1.Line.ReconciliationID, p3.Line.ReconciliationID)

	rec := e.ledger.Reconciliation(p1.Line.ReconciliationID)
	require.NotNil(t, rec)
	assert.Len(t, rec.LineIDs, 4)

	for _, p := range payments {
		assert.Equal(t, "batch-1", p.Group)
	}
}

func TestPaymentWorkflow_ProcessSkipsReconciliation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *world, p *domain.Payment)
		opts  []func(*domain.PaymentJournalConfig)
	}{
		{
			name: "source line already reconciled",
			setup: func(_ *world, p *domain.Payment) {
				p.Line.ReconciliationID = "rec-existing"
			},
		},
		{
			name: "partial clearing does not net to zero",
			opts: []func(*domain.PaymentJournalConfig){withPercent("0.5")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			e := newEngine(w, nil)
			p := w.payment("pay-1", w.journal(t, tt.opts...), domain.PaymentKindPayable, "100", w.supplier)
			if tt.setup != nil {
				tt.setup(w, p)
			}
			e.add(p)

			_, err := e.workflow.Process(context.Background(), nil, []*domain.Payment{p}, "")
			require.NoError(t, err)

			assert.NotNil(t, p.ProcessingMove)
			assert.Empty(t, e.ledger.CallsMatching("reconciliations.Reconcile"))
			for _, l := range p.ProcessingMove.Lines {
				assert.False(t, l.IsReconciled())
			}
		})
	}
}

func TestPaymentWorkflow_ProcessWithoutProcessingStage(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	p := w.payment("pay-1", w.journal(t, withoutProcessing()), domain.PaymentKindPayable, "100", w.supplier)
	e.add(p)

	_, err := e.workflow.Process(context.Background(), nil, []*domain.Payment{p}, "")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStateProcessing, p.State)
	assert.Nil(t, p.ProcessingMove)
	assert.Equal(t, []string{"payments.Process"}, e.ledger.Calls)
}

func TestPaymentWorkflow_ProcessErrors(t *testing.T) {
	t.Run("base transition rejects", func(t *testing.T) {
		w := newWorld()
		e := newEngine(w, nil)
		p := w.payment("pay-1", w.journal(t), domain.PaymentKindPayable, "100", w.supplier)
		p.State = domain.PaymentStateDraft
		e.add(p)

		_, err := e.workflow.Process(context.Background(), nil, []*domain.Payment{p}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "base-process")
		assert.Empty(t, e.ledger.CallsMatching("moves.Create"))
	})

	t.Run("posting fails", func(t *testing.T) {
		w := newWorld()
		e := newEngine(w, nil)
		e.ledger.FailOn["moves.Post"] = assert.AnError
		p := w.payment("pay-1", w.journal(t), domain.PaymentKindPayable, "100", w.supplier)
		e.add(p)

		_, err := e.workflow.Process(context.Background(), nil, []*domain.Payment{p}, "")
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "create-processing-moves")
		assert.Empty(t, e.ledger.CallsMatching("reconciliations.Reconcile"))
		assert.Equal(t, float64(1), testutil.ToFloat64(
			e.metrics.TransitionErrors.WithLabelValues(usecase.TransitionProcess, "create-processing-moves")))
	})
}

func TestPaymentWorkflow_SucceedWithClearing(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	p := w.payment("pay-1", w.journal(t, withClearing(w)), domain.PaymentKindPayable, "100", w.supplier)
	e.add(p)
	ctx := context.Background()

	_, err := e.workflow.Process(ctx, nil, []*domain.Payment{p}, "")
	require.NoError(t, err)
	require.NoError(t, e.workflow.Succeed(ctx, nil, []*domain.Payment{p}))

	assert.Equal(t, domain.PaymentStateSucceeded, p.State)
	require.NotNil(t, p.ClearingMove)
	assert.Equal(t, domain.MoveStatePosted, p.ClearingMove.State)
	assert.Equal(t, w.clearingJournal.ID, p.ClearingMove.JournalID)

	assert.Empty(t, p.ClearingMove.LinesOn(w.payable), "clearing goes through the processing account")
	redirected := p.ClearingMove.LinesOn(w.processing)
	require.Len(t, redirected, 1)
	requireDecimal(t, "100", redirected[0].Debit)
	assert.Nil(t, redirected[0].Party)

	processingLine := p.ProcessingMove.LinesOn(w.processing)[0]
	require.True(t, processingLine.IsReconciled())
	assert.Equal(t, processingLine.ReconciliationID, redirected[0].ReconciliationID)
	assert.False(t, p.ClearingMove.LinesOn(w.clearing)[0].IsReconciled())

	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.ClearingMovesCreated))
}

func TestPaymentWorkflow_SucceedWithoutClearing(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	p := w.payment("pay-1", w.journal(t), domain.PaymentKindPayable, "100", w.supplier)
	e.add(p)
	ctx := context.Background()

	_, err := e.workflow.Process(ctx, nil, []*domain.Payment{p}, "")
	require.NoError(t, err)
	before := e.ledger.ReconciliationCount()

	require.NoError(t, e.workflow.Succeed(ctx, nil, []*domain.Payment{p}))

	assert.Nil(t, p.ClearingMove)
	assert.Equal(t, before, e.ledger.ReconciliationCount())
	assert.Empty(t, e.ledger.CallsMatching("payments.SetClearingMove"))
}

func TestPaymentWorkflow_FailDraftProcessingMove(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	ctx := context.Background()

	p := w.payment("pay-1", w.journal(t), domain.PaymentKindPayable, "100", w.supplier)
	p.State = domain.PaymentStateProcessing
	e.add(p)

	move, err := e.generator.Generate(ctx, nil, p)
	require.NoError(t, err)
	_, err = e.moveStore().Create(ctx, nil, []*domain.Move{move})
	require.NoError(t, err)
	p.ProcessingMove = move

	_, err = e.matcher.Match(ctx, nil, usecase.MatchContextProcess, append(move.LinesOn(w.payable), p.Line))
	require.NoError(t, err)
	require.True(t, p.Line.IsReconciled())

	mark := len(e.ledger.Calls)
	require.NoError(t, e.workflow.Fail(ctx, nil, []*domain.Payment{p}))

	assert.Equal(t, []string{
		"payments.Fail",
		"reconciliations.Delete",
		"moves.Delete",
		"payments.ClearProcessingMove",
	}, e.ledger.Calls[mark:])

	assert.Equal(t, domain.PaymentStateFailed, p.State)
	assert.Nil(t, p.ProcessingMove)
	assert.Nil(t, e.ledger.Move(move.ID))
	assert.False(t, p.Line.IsReconciled())
	assert.Zero(t, e.ledger.ReconciliationCount())
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.DraftMovesDeleted))
}

func TestPaymentWorkflow_FailPostedProcessingMove(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	ctx := context.Background()

	p := w.payment("pay-1", w.journal(t), domain.PaymentKindPayable, "100", w.supplier)
	e.add(p)

	_, err := e.workflow.Process(ctx, nil, []*domain.Payment{p}, "")
	require.NoError(t, err)
	original := p.ProcessingMove
	processRec := p.Line.ReconciliationID
	require.NotEmpty(t, processRec)

	mark := len(e.ledger.Calls)
	require.NoError(t, e.workflow.Fail(ctx, nil, []*domain.Payment{p}))

	assert.Equal(t, []string{
		"payments.Fail",
		"moves.Cancel",
		"reconciliations.Delete",
		"moves.Post",
		"reconciliations.Reconcile",
		"reconciliations.Reconcile",
		"payments.ClearProcessingMove",
	}, e.ledger.Calls[mark:])

	assert.Nil(t, p.ProcessingMove)
	assert.Nil(t, e.ledger.Reconciliation(processRec))
	assert.False(t, p.Line.IsReconciled(), "source line is open again")
	assert.NotNil(t, e.ledger.Move(original.ID), "posted moves are never deleted")

	cancel := cancellingMove(t, e, original)
	assert.Equal(t, domain.MoveStatePosted, cancel.State)

	for _, account := range []*domain.Account{w.payable, w.processing} {
		orig := original.LinesOn(account)[0]
		neg := cancel.LinesOn(account)[0]
		require.True(t, orig.IsReconciled(), account.Code)
		assert.Equal(t, orig.ReconciliationID, neg.ReconciliationID, account.Code)
		assert.True(t, orig.Debit.Equal(neg.Credit))
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.CancellingMovesPosted))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.ReconciliationsRemoved))
}

func TestPaymentWorkflow_FailAfterSucceedReversesClearingMove(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	ctx := context.Background()

	p := w.payment("pay-1", w.journal(t, withClearing(w)), domain.PaymentKindPayable, "100", w.supplier)
	e.add(p)

	_, err := e.workflow.Process(ctx, nil, []*domain.Payment{p}, "")
	require.NoError(t, err)
	require.NoError(t, e.workflow.Succeed(ctx, nil, []*domain.Payment{p}))

	clearingMove := p.ClearingMove
	redirected := clearingMove.LinesOn(w.processing)[0]
	require.True(t, redirected.IsReconciled())

	mark := len(e.ledger.Calls)
	require.NoError(t, e.workflow.Fail(ctx, nil, []*domain.Payment{p}))

	assert.Equal(t, []string{
		"payments.Fail",
		"moves.Cancel",
		"moves.Cancel",
		"reconciliations.Delete",
		"moves.Post",
		"reconciliations.Reconcile",
		"reconciliations.Reconcile",
		"reconciliations.Reconcile",
		"payments.ClearProcessingMove",
		"payments.ClearClearingMove",
	}, e.ledger.Calls[mark:])

	assert.Equal(t, domain.PaymentStateFailed, p.State)
	assert.Nil(t, p.ProcessingMove)
	assert.Nil(t, p.ClearingMove)
	assert.False(t, p.Line.IsReconciled())
	assert.NotNil(t, e.ledger.Move(clearingMove.ID), "posted moves are never deleted")

	net := postedNetByAccount(e, p.ID)
	for _, account := range []*domain.Account{w.payable, w.processing, w.clearing} {
		requireDecimal(t, "0", net[account.Code])
	}
	assert.Equal(t, float64(2), testutil.ToFloat64(e.metrics.CancellingMovesPosted))

	require.NoError(t, e.workflow.Succeed(ctx, nil, []*domain.Payment{p}))

	require.NotNil(t, p.ClearingMove, "settlement is booked again")
	assert.NotEqual(t, clearingMove.ID, p.ClearingMove.ID)

	net = postedNetByAccount(e, p.ID)
	requireDecimal(t, "100", net[w.payable.Code])
	requireDecimal(t, "0", net[w.processing.Code])
	requireDecimal(t, "-100", net[w.clearing.Code])
}

func TestPaymentWorkflow_FailDraftClearingMove(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	ctx := context.Background()

	p := w.payment("pay-1", w.journal(t, withClearing(w), withoutProcessing()), domain.PaymentKindReceivable, "60", w.customer)
	p.State = domain.PaymentStateSucceeded
	e.add(p)

	move, err := e.workflow.CreateClearingMove(ctx, nil, p, nil)
	require.NoError(t, err)
	require.NotNil(t, move)
	_, err = e.moveStore().Create(ctx, nil, []*domain.Move{move})
	require.NoError(t, err)
	p.ClearingMove = move

	mark := len(e.ledger.Calls)
	require.NoError(t, e.workflow.Fail(ctx, nil, []*domain.Payment{p}))

	assert.Equal(t, []string{
		"payments.Fail",
		"moves.Delete",
		"payments.ClearProcessingMove",
		"payments.ClearClearingMove",
	}, e.ledger.Calls[mark:])
	assert.Nil(t, e.ledger.Move(move.ID))
	assert.Nil(t, p.ClearingMove)
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.DraftMovesDeleted))
}

func TestPaymentWorkflow_FailWithoutProcessingMove(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)

	p := w.payment("pay-1", w.journal(t, withoutProcessing()), domain.PaymentKindPayable, "100", w.supplier)
	p.State = domain.PaymentStateProcessing
	e.add(p)

	require.NoError(t, e.workflow.Fail(context.Background(), nil, []*domain.Payment{p}))

	assert.Equal(t, []string{"payments.Fail", "payments.ClearProcessingMove"}, e.ledger.Calls)
	assert.Equal(t, domain.PaymentStateFailed, p.State)
}

func TestPaymentWorkflow_FailAbortsBeforeDeletingMoves(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	ctx := context.Background()

	p := w.payment("pay-1", w.journal(t), domain.PaymentKindPayable, "100", w.supplier)
	e.add(p)
	_, err := e.workflow.Process(ctx, nil, []*domain.Payment{p}, "")
	require.NoError(t, err)

	e.ledger.FailOn["reconciliations.Delete"] = assert.AnError
	mark := len(e.ledger.Calls)

	err = e.workflow.Fail(ctx, nil, []*domain.Payment{p})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "delete-reconciliations")
	assert.NotContains(t, e.ledger.Calls[mark:], "moves.Post")
	assert.NotContains(t, e.ledger.Calls[mark:], "payments.ClearProcessingMove")
}

func TestPaymentWorkflow_CreateClearingMoveUsesDate(t *testing.T) {
	w := newWorld()
	e := newEngine(w, nil)
	p := w.payment("pay-1", w.journal(t, withClearing(w)), domain.PaymentKindReceivable, "80", w.customer)

	date := time.Date(2026, 4, 1, 15, 30, 0, 0, time.UTC)
	move, err := e.workflow.CreateClearingMove(context.Background(), nil, p, &date)
	require.NoError(t, err)
	require.NotNil(t, move)

	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), move.Date)
	assert.Len(t, move.LinesOn(w.receivable), 1, "without processing move the source account is kept")
	requireDecimal(t, "80", move.LinesOn(w.receivable)[0].Credit)
	requireDecimal(t, "80", move.LinesOn(w.clearing)[0].Debit)
}

// postedNetByAccount sums debit minus credit of the posted moves of origin,
// keyed by account code.
func postedNetByAccount(e *engine, origin string) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal)
	for _, m := range e.ledger.MovesByOrigin(origin) {
		if m.State != domain.MoveStatePosted {
			continue
		}
		for _, l := range m.Lines {
			net[l.Account.Code] = net[l.Account.Code].Add(l.Balance())
		}
	}
	return net
}

func cancellingMove(t *testing.T, e *engine, original *domain.Move) *domain.Move {
	t.Helper()

	for _, m := range e.ledger.MovesByOrigin(original.Origin) {
		if m.ID != original.ID && m.JournalID == original.JournalID {
			return m
		}
	}
	t.Fatal("cancelling move not found")
	return nil
}
