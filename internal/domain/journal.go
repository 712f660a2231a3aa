package domain

import (
	"github.com/shopspring/decimal"
)

// Journal is a general ledger journal moves are booked in.
type Journal struct {
	ID   string
	Code string
	Name string
}

// PaymentJournal groups payments sharing a currency and processing setup.
type PaymentJournal struct {
	ID                string
	Name              string
	Currency          string
	ProcessingAccount *Account
	ProcessingJournal *Journal
	ClearingAccount   *Account
	ClearingJournal   *Journal
	// ClearingPercent is the share of the payment amount moved through
	// processing. Always resolved, 1 when the clearing feature is unused.
	ClearingPercent decimal.Decimal
}

// PaymentJournalConfig is the raw journal setup as stored or submitted.
type PaymentJournalConfig struct {
	ID                string
	Name              string
	Currency          string
	ProcessingAccount *Account
	ProcessingJournal *Journal
	ClearingAccount   *Account
	ClearingJournal   *Journal
	ClearingPercent   decimal.NullDecimal
}

// NewPaymentJournal validates cfg and resolves the clearing percent default.
func NewPaymentJournal(cfg PaymentJournalConfig) (*PaymentJournal, error) {
	if (cfg.ProcessingAccount == nil) != (cfg.ProcessingJournal == nil) {
		return nil, ErrIncompleteProcessingConfig
	}

	percent := decimal.NewFromInt(1)
	if cfg.ClearingPercent.Valid && !cfg.ClearingPercent.Decimal.IsZero() {
		percent = cfg.ClearingPercent.Decimal
	}
	if !percent.IsPositive() || percent.GreaterThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidClearingPercent
	}

	return &PaymentJournal{
		ID:                cfg.ID,
		Name:              cfg.Name,
		Currency:          cfg.Currency,
		ProcessingAccount: cfg.ProcessingAccount,
		ProcessingJournal: cfg.ProcessingJournal,
		ClearingAccount:   cfg.ClearingAccount,
		ClearingJournal:   cfg.ClearingJournal,
		ClearingPercent:   percent,
	}, nil
}

// HasProcessing reports whether payments of this journal go through a processing stage.
func (j *PaymentJournal) HasProcessing() bool {
	return j.ProcessingAccount != nil && j.ProcessingJournal != nil
}

// HasClearing reports whether the clearing feature is configured.
func (j *PaymentJournal) HasClearing() bool {
	return j.ClearingAccount != nil
}

// FullClearing reports whether the whole payment amount is cleared at once.
func (j *PaymentJournal) FullClearing() bool {
	return j.ClearingPercent.Equal(decimal.NewFromInt(1))
}
