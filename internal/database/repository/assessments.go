package repository

import (
	"context"
	"database/sql"
)

// AssessmentRepo handles assessments.
type AssessmentRepo struct {
	db *sql.DB
}

func NewAssessmentRepo(db *sql.DB) *AssessmentRepo { return &AssessmentRepo{db: db} }

func (r *AssessmentRepo) Upsert(ctx context.Context, a Assessment) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO assessments(id, username, full_name, avatar_url, description, date, assignee)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 username=excluded.username,
	 full_name=excluded.full_name,
	 avatar_url=excluded.avatar_url,
	 description=excluded.description,
	 date=excluded.date,
	 assignee=excluded.assignee;
	`, a.ID, a.Username, a.FullName, a.AvatarURL, a.Description, a.Date.UTC(), a.Assignee)
	return err
}

// List returns assessments assigned to assignee, newest first. An empty
// assignee lists everything.
func (r *AssessmentRepo) List(ctx context.Context, assignee string) ([]Assessment, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, username, full_name, avatar_url, description, date, assignee
	FROM assessments
	WHERE ? = '' OR assignee = ?
	ORDER BY date DESC, full_name`, assignee, assignee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Assessment{}
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.Username, &a.FullName, &a.AvatarURL, &a.Description, &a.Date, &a.Assignee); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
