package repository

import (
	"context"
	"database/sql"

	"github.com/finsync-dev/finsync/internal/database"
)

// AccountRepo handles accounts.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

// Get returns the account with the given composite key, or nil if absent.
func (r *AccountRepo) Get(ctx context.Context, orgDomain, id string) (*Account, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT org_domain, id, name, currency, balance, available_balance, balance_date
	FROM accounts WHERE org_domain = ? AND id = ?`, orgDomain, id)
	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindOrCreate returns the account for (orgDomain, id), building and
// inserting one from factory when absent.
func (r *AccountRepo) FindOrCreate(ctx context.Context, orgDomain, id string, factory func() (Account, error)) (Account, bool, error) {
	existing, err := r.Get(ctx, orgDomain, id)
	if err != nil {
		return Account{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}
	a, err := factory()
	if err != nil {
		return Account{}, false, err
	}
	err = database.WithTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO accounts(org_domain, id, name, currency, balance, available_balance, balance_date)
		VALUES (?, ?, ?, ?, ?, ?, ?);
		`, a.OrgDomain, a.ID, a.Name, a.Currency, a.Balance, a.AvailableBalance, a.BalanceDate)
		return err
	})
	if err != nil {
		return Account{}, false, err
	}
	return a, true, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT org_domain, id, name, currency, balance, available_balance, balance_date
	FROM accounts ORDER BY org_domain, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAccount(row scanner) (Account, error) {
	var a Account
	var balanceDate sql.NullTime
	if err := row.Scan(&a.OrgDomain, &a.ID, &a.Name, &a.Currency, &a.Balance, &a.AvailableBalance, &balanceDate); err != nil {
		return Account{}, err
	}
	if balanceDate.Valid {
		a.BalanceDate = &balanceDate.Time
	}
	return a, nil
}
