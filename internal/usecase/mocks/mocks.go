package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// Ledger is an in-memory ledger shared by MoveStore, ReconciliationStore and
// PaymentStore. Calls records every repository call in order; FailOn makes the
// named call ("moves.Post", "reconciliations.Delete", ...) return an error.
type Ledger struct {
	mu              sync.Mutex
	seq             int
	moves           map[string]*domain.Move
	moveOrder       []string
	lines           map[string]*domain.Line
	reconciliations map[string]*domain.Reconciliation
	payments        map[string]*domain.Payment

	Calls  []string
	FailOn map[string]error
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{
		moves:           make(map[string]*domain.Move),
		lines:           make(map[string]*domain.Line),
		reconciliations: make(map[string]*domain.Reconciliation),
		payments:        make(map[string]*domain.Payment),
		FailOn:          make(map[string]error),
	}
}

func (l *Ledger) call(name string) error {
	l.Calls = append(l.Calls, name)
	return l.FailOn[name]
}

func (l *Ledger) nextID(prefix string) string {
	l.seq++
	return fmt.Sprintf("%s-%d", prefix, l.seq)
}

func (l *Ledger) addLines(lines ...*domain.Line) {
	for _, line := range lines {
		if line == nil {
			continue
		}
		if line.ID == "" {
			line.ID = l.nextID("line")
		}
		l.lines[line.ID] = line
	}
}

// AddPayment stores p along with every line it refers to.
func (l *Ledger) AddPayment(p *domain.Payment) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.payments[p.ID] = p
	l.addLines(p.KnownLines()...)
	for _, m := range []*domain.Move{p.ProcessingMove, p.ClearingMove} {
		if m != nil {
			l.storeMove(m)
		}
	}
}

func (l *Ledger) storeMove(m *domain.Move) {
	if _, ok := l.moves[m.ID]; !ok {
		l.moveOrder = append(l.moveOrder, m.ID)
	}
	l.moves[m.ID] = m
}

// MovesByOrigin returns the live moves of origin in creation order.
func (l *Ledger) MovesByOrigin(origin string) []*domain.Move {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []*domain.Move
	for _, id := range l.moveOrder {
		if m, ok := l.moves[id]; ok && m.Origin == origin {
			out = append(out, m)
		}
	}
	return out
}

// AddLines stores lines that exist outside any tracked move.
func (l *Ledger) AddLines(lines ...*domain.Line) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.addLines(lines...)
}

// Move returns a stored move, nil when unknown or deleted.
func (l *Ledger) Move(id string) *domain.Move {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.moves[id]
}

// MoveCount returns the number of stored moves.
func (l *Ledger) MoveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.moves)
}

// Reconciliation returns a stored reconciliation, nil when unknown or deleted.
func (l *Ledger) Reconciliation(id string) *domain.Reconciliation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reconciliations[id]
}

// ReconciliationCount returns the number of live reconciliations.
func (l *Ledger) ReconciliationCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.reconciliations)
}

// CallsMatching returns the recorded calls whose name is in names, in order.
func (l *Ledger) CallsMatching(names ...string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []string
	for _, c := range l.Calls {
		if wanted[c] {
			out = append(out, c)
		}
	}
	return out
}

// MoveStore implements usecase.MoveRepository on a Ledger.
type MoveStore struct{ *Ledger }

// Create stores moves, assigning missing IDs.
func (s MoveStore) Create(ctx context.Context, tx usecase.Transaction, moves []*domain.Move) ([]*domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("moves.Create"); err != nil {
		return nil, err
	}

	for _, m := range moves {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if m.ID == "" {
			m.ID = s.nextID("move")
		}
		for _, line := range m.Lines {
			line.MoveID = m.ID
		}
		s.addLines(m.Lines...)
		s.storeMove(m)
	}
	return moves, nil
}

// Post marks moves posted.
func (s MoveStore) Post(ctx context.Context, tx usecase.Transaction, moves []*domain.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("moves.Post"); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, m := range moves {
		if !m.IsDraft() {
			return domain.ErrMovePosted
		}
		m.State = domain.MoveStatePosted
		m.PostedAt = &now
	}
	return nil
}

// Delete removes draft moves whose lines are no longer reconciled.
func (s MoveStore) Delete(ctx context.Context, tx usecase.Transaction, moves []*domain.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("moves.Delete"); err != nil {
		return err
	}

	for _, m := range moves {
		if !m.IsDraft() {
			return domain.ErrMovePosted
		}
		for _, line := range m.Lines {
			if line.IsReconciled() {
				return domain.ErrLineAlreadyReconciled
			}
		}
	}
	for _, m := range moves {
		for _, line := range m.Lines {
			delete(s.lines, line.ID)
		}
		delete(s.moves, m.ID)
	}
	return nil
}

// Cancel stores the draft move negating a posted move.
func (s MoveStore) Cancel(ctx context.Context, tx usecase.Transaction, move *domain.Move) (*domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("moves.Cancel"); err != nil {
		return nil, err
	}
	if move.IsDraft() {
		return nil, domain.ErrMoveNotPosted
	}

	cancel := &domain.Move{
		ID:        s.nextID("move"),
		JournalID: move.JournalID,
		Origin:    move.Origin,
		Date:      move.Date,
		PeriodID:  move.PeriodID,
		State:     domain.MoveStateDraft,
		Lines:     move.Negate(),
	}
	for _, line := range cancel.Lines {
		line.MoveID = cancel.ID
	}
	s.addLines(cancel.Lines...)
	s.storeMove(cancel)

	return cancel, nil
}

// GetByID returns a stored move.
func (s MoveStore) GetByID(ctx context.Context, id string) (*domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.moves[id]; ok {
		return m, nil
	}
	return nil, domain.ErrMoveNotFound
}

// ReconciliationStore implements usecase.ReconciliationRepository on a Ledger.
type ReconciliationStore struct{ *Ledger }

// Reconcile groups lines into a new reconciliation.
func (s ReconciliationStore) Reconcile(ctx context.Context, tx usecase.Transaction, lines []*domain.Line) (*domain.Reconciliation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("reconciliations.Reconcile"); err != nil {
		return nil, err
	}

	rec, err := domain.NewReconciliation(s.nextID("rec"), lines, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.addLines(lines...)
	s.reconciliations[rec.ID] = rec
	return rec, nil
}

// Delete removes reconciliations and frees their stored lines.
func (s ReconciliationStore) Delete(ctx context.Context, tx usecase.Transaction, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("reconciliations.Delete"); err != nil {
		return err
	}

	for _, id := range ids {
		rec, ok := s.reconciliations[id]
		if !ok {
			return domain.ErrReconciliationNotFound
		}
		for _, lineID := range rec.LineIDs {
			if line, ok := s.lines[lineID]; ok && line.ReconciliationID == id {
				line.ReconciliationID = ""
			}
		}
		delete(s.reconciliations, id)
	}
	return nil
}

// PaymentStore implements usecase.PaymentRepository and the base
// usecase.PaymentTransitions on a Ledger.
type PaymentStore struct{ *Ledger }

// GetByIDsForUpdate returns the stored payments in the order of ids.
func (s PaymentStore) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.GetByIDsForUpdate"); err != nil {
		return nil, err
	}

	var out []*domain.Payment
	for _, id := range ids {
		if p, ok := s.payments[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID returns a stored payment.
func (s PaymentStore) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.payments[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPaymentNotFound
}

// SetProcessingMove links a stored move as processing move.
func (s PaymentStore) SetProcessingMove(ctx context.Context, tx usecase.Transaction, paymentID, moveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.SetProcessingMove"); err != nil {
		return err
	}
	if p, ok := s.payments[paymentID]; ok {
		p.ProcessingMove = s.moves[moveID]
	}
	return nil
}

// SetClearingMove links a stored move as clearing move.
func (s PaymentStore) SetClearingMove(ctx context.Context, tx usecase.Transaction, paymentID, moveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.SetClearingMove"); err != nil {
		return err
	}
	if p, ok := s.payments[paymentID]; ok {
		p.ClearingMove = s.moves[moveID]
	}
	return nil
}

// ClearProcessingMove unlinks processing moves.
func (s PaymentStore) ClearProcessingMove(ctx context.Context, tx usecase.Transaction, paymentIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.ClearProcessingMove"); err != nil {
		return err
	}
	for _, id := range paymentIDs {
		if p, ok := s.payments[id]; ok {
			p.ProcessingMove = nil
		}
	}
	return nil
}

// ClearClearingMove unlinks clearing moves.
func (s PaymentStore) ClearClearingMove(ctx context.Context, tx usecase.Transaction, paymentIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.ClearClearingMove"); err != nil {
		return err
	}
	for _, id := range paymentIDs {
		if p, ok := s.payments[id]; ok {
			p.ClearingMove = nil
		}
	}
	return nil
}

// Process moves payments to processing, generating a group when none is given.
func (s PaymentStore) Process(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment, group string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.Process"); err != nil {
		return "", err
	}
	if group == "" {
		group = s.nextID("group")
	}
	if err := transition(payments, domain.PaymentStateProcessing); err != nil {
		return "", err
	}
	for _, p := range payments {
		p.Group = group
	}
	return group, nil
}

// Succeed moves payments to succeeded.
func (s PaymentStore) Succeed(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.Succeed"); err != nil {
		return err
	}
	return transition(payments, domain.PaymentStateSucceeded)
}

// Fail moves payments to failed.
func (s PaymentStore) Fail(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.call("payments.Fail"); err != nil {
		return err
	}
	return transition(payments, domain.PaymentStateFailed)
}

func transition(payments []*domain.Payment, target domain.PaymentState) error {
	for _, p := range payments {
		if !p.State.CanTransition(target) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, p.State, target)
		}
	}
	for _, p := range payments {
		p.State = target
	}
	return nil
}

// FixedClock is a usecase.Clock returning a fixed date.
type FixedClock struct {
	Date time.Time
}

func (c FixedClock) Today(ctx context.Context) time.Time {
	return c.Date
}

// PeriodTable is a usecase.PeriodFinder over a fixed list of periods.
type PeriodTable struct {
	Periods []*domain.Period
}

func (t PeriodTable) Find(ctx context.Context, tx usecase.Transaction, companyID string, date time.Time) (*domain.Period, error) {
	for _, p := range t.Periods {
		if p.CompanyID == companyID && p.Contains(date) {
			return p, nil
		}
	}
	return nil, domain.ErrPeriodNotFound
}

// MemoryOutbox is a usecase.OutboxRepository keeping events in memory.
type MemoryOutbox struct {
	mu     sync.Mutex
	Events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func (o *MemoryOutbox) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if o.CreateFunc != nil {
		return o.CreateFunc(ctx, tx, event)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, event)
	return nil
}

func (o *MemoryOutbox) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []*domain.OutboxEvent
	for _, e := range o.Events {
		if !e.Published && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (o *MemoryOutbox) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, e := range o.Events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (o *MemoryOutbox) DeletePublished(ctx context.Context, before time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	kept := o.Events[:0]
	for _, e := range o.Events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	o.Events = kept
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu    sync.Mutex
	Begun int
	Last  *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Begun++
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// up to Attempts times while it fails.
type MockRetrier struct {
	Attempts int
	Calls    int
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	attempts := m.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		m.Calls++
		if err = operation(); err == nil {
			return nil
		}
	}
	return err
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	Prefix       string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{Prefix: "mock-id"}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%s-%d", m.Prefix, m.counter)
}
