package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/payproc/internal/domain"
)

// PaymentUseCase runs payment transitions in their own transaction and
// records the resulting outbox events.
type PaymentUseCase struct {
	txManager TransactionManager
	retrier   Retrier
	payments  PaymentRepository
	workflow  *PaymentWorkflow
	outbox    OutboxRepository
	idGen     IDGenerator
	logger    zerolog.Logger
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	retrier Retrier,
	payments PaymentRepository,
	workflow *PaymentWorkflow,
	outbox OutboxRepository,
	idGen IDGenerator,
	logger zerolog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager: txManager,
		retrier:   retrier,
		payments:  payments,
		workflow:  workflow,
		outbox:    outbox,
		idGen:     idGen,
		logger:    logger,
	}
}

// TransitionResult is the outcome of a batch transition.
type TransitionResult struct {
	Group    string
	Payments []*domain.Payment
}

// ProcessPayments moves the payments to processing, joining group.
func (uc *PaymentUseCase) ProcessPayments(ctx context.Context, ids []string, group string) (*TransitionResult, error) {
	result := &TransitionResult{}

	err := uc.transition(ctx, TransitionProcess, domain.EventTypePaymentProcessing, ids, result,
		func(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
			joined, err := uc.workflow.Process(ctx, tx, payments, group)
			result.Group = joined
			return err
		})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SucceedPayments moves the payments to succeeded.
func (uc *PaymentUseCase) SucceedPayments(ctx context.Context, ids []string) (*TransitionResult, error) {
	result := &TransitionResult{}

	err := uc.transition(ctx, TransitionSucceed, domain.EventTypePaymentSucceeded, ids, result,
		func(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
			return uc.workflow.Succeed(ctx, tx, payments)
		})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// FailPayments moves the payments to failed.
func (uc *PaymentUseCase) FailPayments(ctx context.Context, ids []string) (*TransitionResult, error) {
	result := &TransitionResult{}

	err := uc.transition(ctx, TransitionFail, domain.EventTypePaymentFailed, ids, result,
		func(ctx context.Context, tx Transaction, payments []*domain.Payment) error {
			return uc.workflow.Fail(ctx, tx, payments)
		})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.payments.GetByID(ctx, id)
}

// GetProcessingMove returns the processing move of a payment.
func (uc *PaymentUseCase) GetProcessingMove(ctx context.Context, paymentID string) (*domain.Move, error) {
	p, err := uc.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.ProcessingMove == nil {
		return nil, domain.ErrMoveNotFound
	}

	return p.ProcessingMove, nil
}

// transition loads the payments for update and applies run in one
// transaction. Each retry reloads the payments so no state leaks from an
// aborted attempt.
func (uc *PaymentUseCase) transition(
	ctx context.Context,
	name, eventType string,
	ids []string,
	result *TransitionResult,
	run func(ctx context.Context, tx Transaction, payments []*domain.Payment) error,
) error {
	if err := domain.ValidateBatch(ids); err != nil {
		return err
	}

	operation := func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		payments, err := uc.payments.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}
		if len(payments) != len(ids) {
			return domain.ErrPaymentNotFound
		}

		if err := run(ctx, tx, payments); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, p := range payments {
			event := domain.NewPaymentTransitionEvent(uc.idGen.Generate(), eventType, p, now)
			if err := uc.outbox.Create(ctx, tx, event); err != nil {
				return fmt.Errorf("record event: %w", err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result.Payments = payments
		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return err
	}

	uc.logger.Info().
		Str("transition", name).
		Strs("payment_ids", ids).
		Msg("payments transitioned")

	return nil
}
