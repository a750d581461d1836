package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/skillboard/internal/database"
)

// ErrNotFound is returned when a write targets a record that does not exist.
var ErrNotFound = errors.New("record not found")

// CompetencyRepo handles competencies.
type CompetencyRepo struct {
	db *sql.DB
}

func NewCompetencyRepo(db *sql.DB) *CompetencyRepo {
	return &CompetencyRepo{db: db}
}

// Insert stores c and its subcompetencies in one transaction.
func (r *CompetencyRepo) Insert(ctx context.Context, c Competency) error {
	return r.write(ctx, c, `
	INSERT INTO competencies(id, parent_id, name, description, date)
	VALUES (?, ?, ?, ?, ?);
	`)
}

// Upsert inserts c or overwrites the row with the same id.
func (r *CompetencyRepo) Upsert(ctx context.Context, c Competency) error {
	return r.write(ctx, c, `
	INSERT INTO competencies(id, parent_id, name, description, date)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 parent_id=excluded.parent_id,
	 name=excluded.name,
	 description=excluded.description,
	 date=excluded.date;
	`)
}

func (r *CompetencyRepo) write(ctx context.Context, c Competency, stmt string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return insertTree(ctx, tx, stmt, c, nil)
	})
}

func insertTree(ctx context.Context, tx *sql.Tx, stmt string, c Competency, parentID *string) error {
	if _, err := tx.ExecContext(ctx, stmt, c.ID, parentID, c.Name, c.Description, c.Date.UTC()); err != nil {
		return fmt.Errorf("write competency %s: %w", c.ID, err)
	}
	id := c.ID
	for _, sub := range c.Subcompetencies {
		if err := insertTree(ctx, tx, stmt, sub, &id); err != nil {
			return err
		}
	}
	return nil
}

// List returns top-level competencies in insertion order with their
// subcompetencies attached.
func (r *CompetencyRepo) List(ctx context.Context) ([]Competency, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, parent_id, name, description, date
	FROM competencies
	ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type row struct {
		c        Competency
		parentID *string
	}
	var all []row
	for rows.Next() {
		var rw row
		if err := rows.Scan(&rw.c.ID, &rw.parentID, &rw.c.Name, &rw.c.Description, &rw.c.Date); err != nil {
			return nil, err
		}
		all = append(all, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	children := map[string][]Competency{}
	for _, rw := range all {
		if rw.parentID != nil {
			children[*rw.parentID] = append(children[*rw.parentID], rw.c)
		}
	}
	var attach func(c Competency) Competency
	attach = func(c Competency) Competency {
		for _, sub := range children[c.ID] {
			c.Subcompetencies = append(c.Subcompetencies, attach(sub))
		}
		return c
	}

	out := []Competency{}
	for _, rw := range all {
		if rw.parentID == nil {
			out = append(out, attach(rw.c))
		}
	}
	return out, nil
}

// Delete removes a competency and, through the foreign key, its
// subcompetencies. It returns ErrNotFound if no row has the id.
func (r *CompetencyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM competencies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
