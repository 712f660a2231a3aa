package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement line fields that trigger account suggestions.
const (
	StatementFieldInvoice = "invoice"
	StatementFieldPayment = "payment"
)

// ChangeSet keys.
const (
	ChangeAccount        = "account"
	ChangeAccountRecName = "account.rec_name"
	ChangeParty          = "party"
	ChangeAmount         = "amount"
)

// ChangeSet holds field values proposed to the UI after a statement line edit.
type ChangeSet map[string]any

// StatementLine is a bank statement line being matched against the ledger.
// A positive Amount is money received, a negative one money paid out.
type StatementLine struct {
	ID          string
	StatementID string
	JournalID   string
	CompanyID   string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	// BankAccount is the ledger account of the statement's bank journal.
	BankAccount *Account
	Account     *Account
	Party       *Party
	InvoiceID   string
	// InvoiceAccount is the receivable/payable account of the invoice, if any.
	InvoiceAccount *Account
	Payment        *Payment
	Move           *Move
}
