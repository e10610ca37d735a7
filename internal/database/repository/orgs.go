package repository

import (
	"context"
	"database/sql"

	"github.com/finsync-dev/finsync/internal/database"
)

// OrgRepo handles orgs.
type OrgRepo struct {
	db *sql.DB
}

func NewOrgRepo(db *sql.DB) *OrgRepo { return &OrgRepo{db: db} }

// Get returns the org with the given domain, or nil if absent.
func (r *OrgRepo) Get(ctx context.Context, domain string) (*Org, error) {
	row := r.db.QueryRowContext(ctx, `SELECT domain, external_id, name, url, sfin_url FROM orgs WHERE domain = ?`, domain)
	o, err := scanOrg(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// FindOrCreate returns the org for domain, building and inserting one from
// factory when absent. The insert runs in its own transaction so the row is
// durable before any child rows are attempted. The second return reports
// whether a row was created.
func (r *OrgRepo) FindOrCreate(ctx context.Context, domain string, factory func() (Org, error)) (Org, bool, error) {
	existing, err := r.Get(ctx, domain)
	if err != nil {
		return Org{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}
	o, err := factory()
	if err != nil {
		return Org{}, false, err
	}
	err = database.WithTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO orgs(domain, external_id, name, url, sfin_url)
		VALUES (?, ?, ?, ?, ?);
		`, o.Domain, o.ExternalID, o.Name, o.URL, o.SfinURL)
		return err
	})
	if err != nil {
		return Org{}, false, err
	}
	return o, true, nil
}

func (r *OrgRepo) List(ctx context.Context) ([]Org, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT domain, external_id, name, url, sfin_url FROM orgs ORDER BY domain`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Org
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrg(row scanner) (Org, error) {
	var o Org
	var external, url sql.NullString
	if err := row.Scan(&o.Domain, &external, &o.Name, &url, &o.SfinURL); err != nil {
		return Org{}, err
	}
	if external.Valid {
		o.ExternalID = &external.String
	}
	if url.Valid {
		o.URL = &url.String
	}
	return o, nil
}
