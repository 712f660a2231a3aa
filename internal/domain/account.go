package domain

import (
	"time"
)

// Account represents a general ledger account that lines are posted to.
type Account struct {
	ID            string
	Code          string
	Name          string
	PartyRequired bool
	Reconcile     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecName returns the display name used by statement line suggestions.
func (a *Account) RecName() string {
	if a.Code == "" {
		return a.Name
	}
	return a.Code + " - " + a.Name
}

// SameAs reports whether both references point at the same account.
func (a *Account) SameAs(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.ID == other.ID
}

// PartyFor returns party when the account requires one, nil otherwise.
func (a *Account) PartyFor(party *Party) *Party {
	if a == nil || !a.PartyRequired {
		return nil
	}
	return party
}

// Party is a counterparty (supplier or customer) lines can be booked against.
type Party struct {
	ID   string
	Name string
}

// Company owns journals, periods and payments. Currency is the local currency.
type Company struct {
	ID       string
	Name     string
	Currency string
}

// Period is an accounting period of a company.
type Period struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether date falls inside the period (inclusive).
func (p *Period) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
