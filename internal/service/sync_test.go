package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/finsync-dev/finsync/internal/database"
	"github.com/finsync-dev/finsync/internal/database/repository"
	"github.com/finsync-dev/finsync/internal/simplefin"
	"github.com/finsync-dev/finsync/internal/taxonomy"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSyncService(db *sql.DB, tax taxonomy.Taxonomy) *SyncService {
	catRepo := repository.NewCategoryRepo(db)
	return &SyncService{
		Orgs:         repository.NewOrgRepo(db),
		Accounts:     repository.NewAccountRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Seeder:       &BudgetService{Categories: catRepo, Budgets: repository.NewBudgetRepo(db), Log: zerolog.Nop()},
		Resolver:     &CategoryResolver{Categories: catRepo},
		Taxonomy:     tax,
		Log:          zerolog.Nop(),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testPayload() simplefin.AccountSet {
	return simplefin.AccountSet{Accounts: []simplefin.Account{{
		Org: &simplefin.Org{
			Domain:  "mybank.example.com",
			ID:      "mybank",
			Name:    "My Bank",
			SfinURL: "https://sfin.mybank.example.com",
		},
		ID:               "chk-1",
		Name:             "Checking",
		Currency:         "USD",
		Balance:          dec("1480.00"),
		AvailableBalance: dec("150.25"),
		BalanceDate:      1700000000,
		Transactions: []simplefin.Transaction{
			{ID: "t1", Posted: 1700000100, Amount: dec("-20.00"), Payee: "Walmart"},
			{ID: "t2", Posted: 1700000200, Amount: dec("1500.00"), Payee: "Employer Inc"},
		},
	}}}
}

func walmartTaxonomy() taxonomy.Taxonomy {
	return taxonomy.Taxonomy{
		{Type: "Expense", Categories: []taxonomy.Category{
			{Name: "Groceries", Keywords: []string{"walmart"}},
		}},
	}
}

func TestSyncEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	svc := newSyncService(db, walmartTaxonomy())

	res, err := svc.Sync(ctx, testPayload())
	require.NoError(t, err)
	require.Equal(t, 1, res.OrgsCreated)
	require.Equal(t, 1, res.AccountsCreated)
	require.Equal(t, 2, res.TransactionsCreated)
	require.Equal(t, 2, res.Categorized)
	require.Empty(t, res.Rejected)

	catRepo := repository.NewCategoryRepo(db)
	groceries, err := catRepo.Get(ctx, repository.TypeExpense, "Groceries")
	require.NoError(t, err)
	require.NotNil(t, groceries)
	uncat, err := catRepo.Get(ctx, repository.TypeIncome, Uncategorized)
	require.NoError(t, err)
	require.NotNil(t, uncat)

	t1, err := svc.Transactions.Get(ctx, "mybank.example.com", "chk-1", "t1")
	require.NoError(t, err)
	require.NotNil(t, t1)
	require.NotNil(t, t1.CategoryID)
	require.Equal(t, groceries.ID, *t1.CategoryID)

	t2, err := svc.Transactions.Get(ctx, "mybank.example.com", "chk-1", "t2")
	require.NoError(t, err)
	require.NotNil(t, t2)
	require.NotNil(t, t2.CategoryID)
	require.Equal(t, uncat.ID, *t2.CategoryID)

	// Balances survive the round trip exactly.
	acct, err := svc.Accounts.Get(ctx, "mybank.example.com", "chk-1")
	require.NoError(t, err)
	require.NotNil(t, acct)
	require.True(t, acct.AvailableBalance.Equal(dec("150.25")))
	require.True(t, acct.Balance.Equal(dec("1480.00")))
}

func TestSyncIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	svc := newSyncService(db, walmartTaxonomy())

	_, err := svc.Sync(ctx, testPayload())
	require.NoError(t, err)

	res2, err := svc.Sync(ctx, testPayload())
	require.NoError(t, err)
	require.Zero(t, res2.OrgsCreated)
	require.Zero(t, res2.AccountsCreated)
	require.Zero(t, res2.TransactionsCreated)
	require.Zero(t, res2.Categorized)

	counts := map[string]int{}
	for _, table := range []string{"orgs", "accounts", "transactions", "categories"} {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		counts[table] = n
	}
	require.Equal(t, map[string]int{"orgs": 1, "accounts": 1, "transactions": 2, "categories": 2}, counts)
}

func TestSyncReferentialIntegrity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	svc := newSyncService(db, walmartTaxonomy())

	_, err := svc.Sync(ctx, testPayload())
	require.NoError(t, err)

	var orphanTxns int
	require.NoError(t, db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM transactions t
	LEFT JOIN accounts a ON a.org_domain = t.org_domain AND a.id = t.account_id
	WHERE a.id IS NULL`).Scan(&orphanTxns))
	require.Zero(t, orphanTxns)

	var orphanAccts int
	require.NoError(t, db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM accounts a
	LEFT JOIN orgs o ON o.domain = a.org_domain
	WHERE o.domain IS NULL`).Scan(&orphanAccts))
	require.Zero(t, orphanAccts)
}

func TestSyncRejectsAccountWithoutOrg(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	svc := newSyncService(db, walmartTaxonomy())

	set := testPayload()
	set.Accounts = append(set.Accounts, simplefin.Account{
		ID:       "orphan-1",
		Name:     "Orphan",
		Currency: "USD",
	})

	res, err := svc.Sync(ctx, set)
	require.NoError(t, err)
	require.Len(t, res.Rejected, 1)
	require.ErrorContains(t, res.Rejected[0], "orphan-1")

	// The rejected account was not stored; the valid one was.
	accts, err := svc.Accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, accts, 1)
	require.Equal(t, "chk-1", accts[0].ID)
}

func TestSyncMalformedTransactionIsFatal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	svc := newSyncService(db, walmartTaxonomy())

	set := testPayload()
	set.Accounts[0].Transactions = append(set.Accounts[0].Transactions,
		simplefin.Transaction{Posted: 1700000300, Amount: dec("-5.00")})

	_, err := svc.Sync(ctx, set)
	require.ErrorContains(t, err, "missing id")

	// Entities created before the failure stay; a re-run with a fixed
	// payload resumes without duplicating them.
	org, err := svc.Orgs.Get(ctx, "mybank.example.com")
	require.NoError(t, err)
	require.NotNil(t, org)

	res, err := svc.Sync(ctx, testPayload())
	require.NoError(t, err)
	require.Zero(t, res.OrgsCreated)
	require.Zero(t, res.TransactionsCreated)
}

func TestCategorizeSkipsEmptyText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	svc := newSyncService(db, walmartTaxonomy())

	set := testPayload()
	set.Accounts[0].Transactions = []simplefin.Transaction{
		{ID: "blank", Posted: 1700000100, Amount: dec("-3.00")},
	}

	res, err := svc.Sync(ctx, set)
	require.NoError(t, err)
	require.Zero(t, res.Categorized)

	txn, err := svc.Transactions.Get(ctx, "mybank.example.com", "chk-1", "blank")
	require.NoError(t, err)
	require.NotNil(t, txn)
	require.Nil(t, txn.CategoryID)
}
