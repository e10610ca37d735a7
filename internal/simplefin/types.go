// Package simplefin talks to a SimpleFIN-style aggregation endpoint and
// defines the nested payload it returns. Multi-word keys on the wire are
// hyphenated (available-balance, balance-date, sfin-url); timestamps are
// integer epoch seconds; money values arrive as JSON strings or numbers and
// decode into decimals so two-decimal amounts survive exactly.
package simplefin

import "github.com/shopspring/decimal"

// AccountSet is the top-level response shape.
type AccountSet struct {
	Errors   []string  `json:"errors,omitempty"`
	Accounts []Account `json:"accounts"`
}

// Org is the institution block embedded in each account.
type Org struct {
	Domain  string `json:"domain"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	SfinURL string `json:"sfin-url"`
}

// Account is one account entry with its nested org and transactions.
type Account struct {
	Org              *Org            `json:"org,omitempty"`
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available-balance"`
	BalanceDate      int64           `json:"balance-date"`
	Transactions     []Transaction   `json:"transactions"`
}

// Transaction is one movement of money. Amount is signed: negative is an
// outflow, positive an inflow.
type Transaction struct {
	ID           string          `json:"id"`
	Posted       int64           `json:"posted"`
	TransactedAt *int64          `json:"transacted_at,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Payee        string          `json:"payee,omitempty"`
	Memo         string          `json:"memo,omitempty"`
	Pending      bool            `json:"pending,omitempty"`
}
