package domain

import "time"

// Event types
const (
	EventTypePaymentProcessing    = "payment.processing"
	EventTypePaymentSucceeded     = "payment.succeeded"
	EventTypePaymentFailed        = "payment.failed"
	EventTypeStatementMoveCreated = "statement.move_created"
)

// Aggregate types
const (
	AggregateTypePayment       = "payment"
	AggregateTypeStatementLine = "statement_line"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewPaymentTransitionEvent builds the outbox event recorded after a transition.
func NewPaymentTransitionEvent(id, eventType string, p *Payment, now time.Time) *OutboxEvent {
	payload := map[string]any{
		"payment_id": p.ID,
		"state":      string(p.State),
		"amount":     p.Amount.String(),
		"kind":       string(p.Kind),
	}
	if p.Group != "" {
		payload["group"] = p.Group
	}
	if p.ProcessingMove != nil {
		payload["processing_move_id"] = p.ProcessingMove.ID
	}
	if p.ClearingMove != nil {
		payload["clearing_move_id"] = p.ClearingMove.ID
	}

	return &OutboxEvent{
		ID:            id,
		AggregateID:   p.ID,
		AggregateType: AggregateTypePayment,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	}
}

// NewStatementMoveEvent builds the outbox event recorded after a statement move is created.
func NewStatementMoveEvent(id string, line *StatementLine, move *Move, now time.Time) *OutboxEvent {
	payload := map[string]any{
		"statement_line_id": line.ID,
		"move_id":           move.ID,
	}
	if line.Payment != nil {
		payload["payment_id"] = line.Payment.ID
	}

	return &OutboxEvent{
		ID:            id,
		AggregateID:   line.ID,
		AggregateType: AggregateTypeStatementLine,
		EventType:     EventTypeStatementMoveCreated,
		Payload:       payload,
		CreatedAt:     now,
	}
}
