package repository

import (
	"context"
	"database/sql"

	"github.com/finsync-dev/finsync/internal/database"
)

const transactionColumns = `org_domain, account_id, id, posted, transacted_at, amount, description, payee, memo, pending, category_id`

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// Get returns the transaction with the given composite key, or nil if absent.
func (r *TransactionRepo) Get(ctx context.Context, orgDomain, accountID, id string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE org_domain = ? AND account_id = ? AND id = ?`,
		orgDomain, accountID, id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// FindOrCreate returns the transaction for (orgDomain, accountID, id),
// building and inserting one from factory when absent.
func (r *TransactionRepo) FindOrCreate(ctx context.Context, orgDomain, accountID, id string, factory func() (Transaction, error)) (Transaction, bool, error) {
	existing, err := r.Get(ctx, orgDomain, accountID, id)
	if err != nil {
		return Transaction{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}
	t, err := factory()
	if err != nil {
		return Transaction{}, false, err
	}
	err = database.WithTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions(org_domain, account_id, id, posted, transacted_at, amount, description, payee, memo, pending, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
		`, t.OrgDomain, t.AccountID, t.ID, t.Posted, t.TransactedAt, t.Amount,
			t.Description, t.Payee, t.Memo, t.Pending, t.CategoryID)
		return err
	})
	if err != nil {
		return Transaction{}, false, err
	}
	return t, true, nil
}

// AttachCategory sets the category of a transaction. This is the only
// mutation the store supports after a row is created.
func (r *TransactionRepo) AttachCategory(ctx context.Context, orgDomain, accountID, id, categoryID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ? WHERE org_domain = ? AND account_id = ? AND id = ?`,
		categoryID, orgDomain, accountID, id)
	return err
}

func (r *TransactionRepo) List(ctx context.Context) ([]Transaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY posted DESC`)
}

// ListUncategorized returns transactions with no category attached, the
// working set of the categorization pass.
func (r *TransactionRepo) ListUncategorized(ctx context.Context) ([]Transaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE category_id IS NULL ORDER BY posted DESC`)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...interface{}) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// scanner handles both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var description, payee, memo, category sql.NullString
	var transactedAt sql.NullTime
	if err := row.Scan(&t.OrgDomain, &t.AccountID, &t.ID, &t.Posted, &transactedAt,
		&t.Amount, &description, &payee, &memo, &t.Pending, &category); err != nil {
		return Transaction{}, err
	}
	if transactedAt.Valid {
		t.TransactedAt = &transactedAt.Time
	}
	if description.Valid {
		t.Description = &description.String
	}
	if payee.Valid {
		t.Payee = &payee.String
	}
	if memo.Valid {
		t.Memo = &memo.String
	}
	if category.Valid {
		t.CategoryID = &category.String
	}
	return t, nil
}
