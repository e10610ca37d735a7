package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finsync-dev/finsync/internal/database/repository"
	"github.com/finsync-dev/finsync/internal/simplefin"
	"github.com/finsync-dev/finsync/internal/taxonomy"
)

// SyncService reconciles a fetched account set against the local store and
// runs the categorization pass. Entities are looked up before creation, in
// dependency order (org, account, transaction), and every creation is
// durable before its children are attempted, so re-running the same payload
// never duplicates rows and a crash mid-run leaves a resumable store.
type SyncService struct {
	Orgs         *repository.OrgRepo
	Accounts     *repository.AccountRepo
	Transactions *repository.TransactionRepo
	Seeder       *BudgetService
	Resolver     *CategoryResolver
	Classifier   Classifier
	Taxonomy     taxonomy.Taxonomy
	Log          zerolog.Logger
}

// SyncResult summarizes one reconciliation run.
type SyncResult struct {
	OrgsCreated         int
	AccountsCreated     int
	TransactionsCreated int
	Categorized         int

	// Rejected collects per-record errors that did not abort the run,
	// currently only accounts arriving without an org block.
	Rejected []error
}

// Sync reconciles the payload into the store, seeds taxonomy categories and
// categorizes whatever is still uncategorized.
//
// An account entry with no org block (or an org without a domain) is
// rejected rather than stored against a null org: storing it would orphan
// the account. The rejection lands in SyncResult.Rejected and the remaining
// entries still sync. A malformed record inside an entry that has passed
// that gate (missing account or transaction id, say) aborts the run.
func (s *SyncService) Sync(ctx context.Context, set simplefin.AccountSet) (SyncResult, error) {
	res := SyncResult{}

	for _, acct := range set.Accounts {
		if acct.Org == nil || acct.Org.Domain == "" {
			err := fmt.Errorf("account %q: no org in payload, record rejected", acct.ID)
			s.Log.Warn().Str("account", acct.ID).Msg("rejecting account with no org block")
			res.Rejected = append(res.Rejected, err)
			continue
		}

		org, created, err := s.Orgs.FindOrCreate(ctx, acct.Org.Domain, func() (repository.Org, error) {
			return NewOrg(*acct.Org)
		})
		if err != nil {
			return res, err
		}
		if created {
			res.OrgsCreated++
			s.Log.Debug().Str("domain", org.Domain).Msg("created org")
		}

		account, created, err := s.Accounts.FindOrCreate(ctx, org.Domain, acct.ID, func() (repository.Account, error) {
			return NewAccount(org.Domain, acct)
		})
		if err != nil {
			return res, err
		}
		if created {
			res.AccountsCreated++
			s.Log.Debug().Str("account", account.ID).Str("domain", org.Domain).Msg("created account")
		}

		for _, txn := range acct.Transactions {
			data := txn
			_, created, err := s.Transactions.FindOrCreate(ctx, org.Domain, account.ID, data.ID, func() (repository.Transaction, error) {
				return NewTransaction(org.Domain, account.ID, data)
			})
			if err != nil {
				return res, err
			}
			if created {
				res.TransactionsCreated++
			}
		}
	}

	if err := s.Seeder.EnsureCategories(ctx, s.Taxonomy); err != nil {
		return res, err
	}

	n, err := s.Categorize(ctx)
	res.Categorized = n
	if err != nil {
		return res, err
	}

	s.Log.Info().
		Int("orgs", res.OrgsCreated).
		Int("accounts", res.AccountsCreated).
		Int("transactions", res.TransactionsCreated).
		Int("categorized", res.Categorized).
		Int("rejected", len(res.Rejected)).
		Msg("sync complete")
	return res, nil
}

// Categorize classifies every uncategorized transaction and attaches the
// resolved category. Transactions with neither payee nor description are
// left alone. Returns the number of transactions categorized.
func (s *SyncService) Categorize(ctx context.Context) (int, error) {
	txns, err := s.Transactions.ListUncategorized(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range txns {
		name := s.Classifier.Classify(deref(t.Payee), deref(t.Description), s.Taxonomy)
		if name == "" {
			continue
		}
		cat, err := s.Resolver.Resolve(ctx, name, t.Amount)
		if err != nil {
			return n, err
		}
		if err := s.Transactions.AttachCategory(ctx, t.OrgDomain, t.AccountID, t.ID, cat.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
