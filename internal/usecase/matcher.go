package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/metrics"
)

// Reconciliation contexts, used as metric labels.
const (
	MatchContextProcess   = "process"
	MatchContextSucceed   = "succeed"
	MatchContextFail      = "fail"
	MatchContextStatement = "statement"
)

// GroupKey identifies a reconciliation candidate group. HasParty keeps lines
// without a party apart from lines whose party ID happens to be empty.
type GroupKey struct {
	AccountID string
	PartyID   string
	HasParty  bool
}

// AccountPartyKey groups lines by account and party.
func AccountPartyKey(l *domain.Line) GroupKey {
	key := GroupKey{}
	if l.Account != nil {
		key.AccountID = l.Account.ID
	}
	if l.Party != nil {
		key.PartyID = l.Party.ID
		key.HasParty = true
	}
	return key
}

// PartyKey groups by party only.
func PartyKey(p *domain.Party) GroupKey {
	if p == nil {
		return GroupKey{}
	}
	return GroupKey{PartyID: p.ID, HasParty: true}
}

// LineGroups is an ordered mapping from group key to accumulated lines.
// Groups are kept in first-appearance order and a line is added at most once.
type LineGroups struct {
	keys   []GroupKey
	groups map[GroupKey][]*domain.Line
	seen   map[*domain.Line]bool
	ids    map[string]bool
}

// NewLineGroups creates an empty LineGroups.
func NewLineGroups() *LineGroups {
	return &LineGroups{
		groups: make(map[GroupKey][]*domain.Line),
		seen:   make(map[*domain.Line]bool),
		ids:    make(map[string]bool),
	}
}

// Add appends lines to the group identified by key.
func (g *LineGroups) Add(key GroupKey, lines ...*domain.Line) {
	for _, l := range lines {
		if l == nil || g.seen[l] || (l.ID != "" && g.ids[l.ID]) {
			continue
		}
		g.seen[l] = true
		if l.ID != "" {
			g.ids[l.ID] = true
		}

		if _, ok := g.groups[key]; !ok {
			g.keys = append(g.keys, key)
		}
		g.groups[key] = append(g.groups[key], l)
	}
}

// Groups returns the accumulated groups in first-appearance order.
func (g *LineGroups) Groups() [][]*domain.Line {
	out := make([][]*domain.Line, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, g.groups[k])
	}
	return out
}

// Len returns the number of groups.
func (g *LineGroups) Len() int {
	return len(g.keys)
}

// Partition splits lines into groups by key, stable and deduplicated.
func Partition(lines []*domain.Line, key func(*domain.Line) GroupKey) [][]*domain.Line {
	groups := NewLineGroups()
	for _, l := range lines {
		if l == nil {
			continue
		}
		groups.Add(key(l), l)
	}
	return groups.Groups()
}

// ReconcilableOpen keeps lines whose account reconciles and that are not yet reconciled.
func ReconcilableOpen(lines []*domain.Line) []*domain.Line {
	var out []*domain.Line
	for _, l := range lines {
		if l == nil || l.Account == nil || !l.Account.Reconcile || l.IsReconciled() {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Balanced reports whether group can be reconciled as is: every line is
// unreconciled and the debit minus credit sum is exactly zero.
func Balanced(group []*domain.Line) bool {
	if len(group) == 0 {
		return false
	}
	for _, l := range group {
		if l.IsReconciled() {
			return false
		}
	}
	return domain.SumBalance(group).IsZero()
}

// ReconciliationMatcher reconciles balanced groups of candidate lines.
type ReconciliationMatcher struct {
	reconciliations ReconciliationRepository
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewReconciliationMatcher creates a new ReconciliationMatcher.
func NewReconciliationMatcher(reconciliations ReconciliationRepository, logger zerolog.Logger, m *metrics.Metrics) *ReconciliationMatcher {
	return &ReconciliationMatcher{
		reconciliations: reconciliations,
		logger:          logger,
		metrics:         m,
	}
}

// ReconcileBalanced reconciles every balanced group and silently skips the
// rest. It returns the reconciliations created.
func (m *ReconciliationMatcher) ReconcileBalanced(ctx context.Context, tx Transaction, matchContext string, groups [][]*domain.Line) ([]*domain.Reconciliation, error) {
	var created []*domain.Reconciliation
	skipped := 0

	for _, group := range groups {
		if !Balanced(group) {
			skipped++
			continue
		}

		rec, err := m.reconciliations.Reconcile(ctx, tx, group)
		if err != nil {
			return nil, fmt.Errorf("reconcile %d lines: %w", len(group), err)
		}
		created = append(created, rec)
	}

	if m.metrics != nil {
		m.metrics.ReconciliationsCreated.WithLabelValues(matchContext).Add(float64(len(created)))
		m.metrics.GroupsSkipped.WithLabelValues(matchContext).Add(float64(skipped))
	}

	m.logger.Debug().
		Str("context", matchContext).
		Int("reconciled", len(created)).
		Int("skipped", skipped).
		Msg("matched reconciliation groups")

	return created, nil
}

// Match partitions lines by (account, party) and reconciles the balanced groups.
func (m *ReconciliationMatcher) Match(ctx context.Context, tx Transaction, matchContext string, lines []*domain.Line) ([]*domain.Reconciliation, error) {
	return m.ReconcileBalanced(ctx, tx, matchContext, Partition(lines, AccountPartyKey))
}
