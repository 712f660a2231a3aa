package usecase_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/metrics"
	"github.com/iho/payproc/internal/usecase"
	"github.com/iho/payproc/internal/usecase/mocks"
)

var (
	today       = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	paymentDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

// world is a small chart of accounts for one company.
type world struct {
	company           *domain.Company
	supplier          *domain.Party
	customer          *domain.Party
	payable           *domain.Account
	receivable        *domain.Account
	processing        *domain.Account
	clearing          *domain.Account
	bank              *domain.Account
	processingJournal *domain.Journal
	clearingJournal   *domain.Journal
	period            *domain.Period
}

func newWorld() *world {
	return &world{
		company:           &domain.Company{ID: "company-1", Name: "Acme", Currency: "EUR"},
		supplier:          &domain.Party{ID: "party-supplier", Name: "Supplier"},
		customer:          &domain.Party{ID: "party-customer", Name: "Customer"},
		payable:           &domain.Account{ID: "acc-payable", Code: "401", Name: "Payable", PartyRequired: true, Reconcile: true},
		receivable:        &domain.Account{ID: "acc-receivable", Code: "411", Name: "Receivable", PartyRequired: true, Reconcile: true},
		processing:        &domain.Account{ID: "acc-processing", Code: "467", Name: "Payments in process", Reconcile: true},
		clearing:          &domain.Account{ID: "acc-clearing", Code: "511", Name: "Clearing", Reconcile: true},
		bank:              &domain.Account{ID: "acc-bank", Code: "512", Name: "Bank"},
		processingJournal: &domain.Journal{ID: "journal-processing", Code: "PROC", Name: "Processing"},
		clearingJournal:   &domain.Journal{ID: "journal-clearing", Code: "CLR", Name: "Clearing"},
		period: &domain.Period{
			ID:        "period-2026",
			CompanyID: "company-1",
			Name:      "2026",
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

func (w *world) journal(t *testing.T, opts ...func(*domain.PaymentJournalConfig)) *domain.PaymentJournal {
	t.Helper()

	cfg := domain.PaymentJournalConfig{
		ID:                "journal-payment",
		Name:              "Transfers",
		Currency:          "EUR",
		ProcessingAccount: w.processing,
		ProcessingJournal: w.processingJournal,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	j, err := domain.NewPaymentJournal(cfg)
	require.NoError(t, err)
	return j
}

func withClearing(w *world) func(*domain.PaymentJournalConfig) {
	return func(cfg *domain.PaymentJournalConfig) {
		cfg.ClearingAccount = w.clearing
		cfg.ClearingJournal = w.clearingJournal
	}
}

func withPercent(p string) func(*domain.PaymentJournalConfig) {
	return func(cfg *domain.PaymentJournalConfig) {
		cfg.ClearingPercent = decimal.NewNullDecimal(decimal.RequireFromString(p))
	}
}

func withCurrency(c string) func(*domain.PaymentJournalConfig) {
	return func(cfg *domain.PaymentJournalConfig) {
		cfg.Currency = c
	}
}

func withoutProcessing() func(*domain.PaymentJournalConfig) {
	return func(cfg *domain.PaymentJournalConfig) {
		cfg.ProcessingAccount = nil
		cfg.ProcessingJournal = nil
	}
}

// payment returns an approved payment settling an open invoice line of amount.
func (w *world) payment(id string, journal *domain.PaymentJournal, kind domain.PaymentKind, amount string, party *domain.Party) *domain.Payment {
	amt := decimal.RequireFromString(amount)

	source := &domain.Line{ID: "invoice-line-" + id, MoveID: "invoice-" + id, Party: party}
	if kind == domain.PaymentKindPayable {
		source.Account = w.payable
		source.Credit = amt
	} else {
		source.Account = w.receivable
		source.Debit = amt
	}

	return &domain.Payment{
		ID:      id,
		Company: w.company,
		Journal: journal,
		Kind:    kind,
		Amount:  amt,
		Date:    paymentDate,
		State:   domain.PaymentStateApproved,
		Party:   party,
		Line:    source,
	}
}

// engine wires the workflow on an in-memory ledger.
type engine struct {
	ledger    *mocks.Ledger
	ids       *mocks.MockIDGenerator
	metrics   *metrics.Metrics
	generator *usecase.ProcessingMoveGenerator
	matcher   *usecase.ReconciliationMatcher
	workflow  *usecase.PaymentWorkflow
}

func newEngine(w *world, converter usecase.CurrencyConverter) *engine {
	ledger := mocks.NewLedger()
	ids := mocks.NewMockIDGenerator()
	m := metrics.New(prometheus.NewRegistry())

	clock := mocks.FixedClock{Date: today}
	periods := mocks.PeriodTable{Periods: []*domain.Period{w.period}}

	moves := mocks.MoveStore{Ledger: ledger}
	recs := mocks.ReconciliationStore{Ledger: ledger}
	payments := mocks.PaymentStore{Ledger: ledger}

	generator := usecase.NewProcessingMoveGenerator(clock, periods, converter, ids)
	integrator := usecase.NewClearingMoveIntegrator(usecase.NewClearingMoveBuilder(clock, periods, converter, ids))
	matcher := usecase.NewReconciliationMatcher(recs, zerolog.Nop(), m)

	return &engine{
		ledger:    ledger,
		ids:       ids,
		metrics:   m,
		generator: generator,
		matcher:   matcher,
		workflow:  usecase.NewPaymentWorkflow(payments, generator, integrator, matcher, moves, recs, payments, zerolog.Nop(), m),
	}
}

func (e *engine) add(payments ...*domain.Payment) []*domain.Payment {
	for _, p := range payments {
		e.ledger.AddPayment(p)
	}
	return payments
}

func (e *engine) moveStore() mocks.MoveStore {
	return mocks.MoveStore{Ledger: e.ledger}
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, got.Equal(decimal.RequireFromString(want)), "expected %s, got %s", want, got)
}
