package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category types. The categories table enforces the same two-value domain.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Org represents a financial institution row. Domain is the natural key.
type Org struct {
	Domain     string
	ExternalID *string
	Name       string
	URL        *string
	SfinURL    string
}

// Account represents an account row, keyed by (org domain, account id).
type Account struct {
	OrgDomain        string
	ID               string
	Name             string
	Currency         string
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	BalanceDate      *time.Time
}

// Transaction represents a transaction row, keyed by
// (org domain, account id, transaction id). Amounts are signed: negative is
// an outflow, positive an inflow. A nil CategoryID means uncategorized.
type Transaction struct {
	OrgDomain    string
	AccountID    string
	ID           string
	Posted       time.Time
	TransactedAt *time.Time
	Amount       decimal.Decimal
	Description  *string
	Payee        *string
	Memo         *string
	Pending      bool
	CategoryID   *string
}

// Category represents a category row. (Type, Name) is unique.
type Category struct {
	ID   string
	Type string
	Name string
}

// Budget represents a planned amount for a category over a [start, end) period.
type Budget struct {
	ID          string
	CategoryID  string
	Amount      decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
}
