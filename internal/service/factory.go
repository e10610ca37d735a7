package service

import (
	"fmt"
	"time"

	"github.com/finsync-dev/finsync/internal/database/repository"
	"github.com/finsync-dev/finsync/internal/simplefin"
)

// Entity factories map one remote record to one row, applying defaults for
// optional fields. A missing required field is a construction error, not a
// default: silently skipping it could hide data loss.

// NewOrg builds an org row from the embedded org block.
func NewOrg(data simplefin.Org) (repository.Org, error) {
	if data.Domain == "" {
		return repository.Org{}, fmt.Errorf("org: missing domain")
	}
	if data.Name == "" {
		return repository.Org{}, fmt.Errorf("org %q: missing name", data.Domain)
	}
	if data.SfinURL == "" {
		return repository.Org{}, fmt.Errorf("org %q: missing sfin-url", data.Domain)
	}
	return repository.Org{
		Domain:     data.Domain,
		ExternalID: optional(data.ID),
		Name:       data.Name,
		URL:        optional(data.URL),
		SfinURL:    data.SfinURL,
	}, nil
}

// NewAccount builds an account row stamped with the already-resolved org
// domain.
func NewAccount(orgDomain string, data simplefin.Account) (repository.Account, error) {
	if data.ID == "" {
		return repository.Account{}, fmt.Errorf("account: missing id")
	}
	if data.Name == "" {
		return repository.Account{}, fmt.Errorf("account %q: missing name", data.ID)
	}
	if data.Currency == "" {
		return repository.Account{}, fmt.Errorf("account %q: missing currency", data.ID)
	}
	a := repository.Account{
		OrgDomain:        orgDomain,
		ID:               data.ID,
		Name:             data.Name,
		Currency:         data.Currency,
		Balance:          data.Balance,
		AvailableBalance: data.AvailableBalance,
	}
	if data.BalanceDate != 0 {
		t := unixTime(data.BalanceDate)
		a.BalanceDate = &t
	}
	return a, nil
}

// NewTransaction builds a transaction row stamped with the already-resolved
// (org domain, account id) pair.
func NewTransaction(orgDomain, accountID string, data simplefin.Transaction) (repository.Transaction, error) {
	if data.ID == "" {
		return repository.Transaction{}, fmt.Errorf("transaction on account %q: missing id", accountID)
	}
	t := repository.Transaction{
		OrgDomain:   orgDomain,
		AccountID:   accountID,
		ID:          data.ID,
		Posted:      unixTime(data.Posted),
		Amount:      data.Amount,
		Description: optional(data.Description),
		Payee:       optional(data.Payee),
		Memo:        optional(data.Memo),
		Pending:     data.Pending,
	}
	if data.TransactedAt != nil {
		at := unixTime(*data.TransactedAt)
		t.TransactedAt = &at
	}
	return t, nil
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
