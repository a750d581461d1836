package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/jask/skillboard/internal/database/repository"
)

// SeedDefaults ensures a fresh database has a starter set of competencies
// and assessments. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	compRepo := repository.NewCompetencyRepo(db)
	existing, err := compRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, c := range defaultCompetencies() {
			if err := compRepo.Upsert(ctx, c); err != nil {
				return err
			}
		}
	}

	assessRepo := repository.NewAssessmentRepo(db)
	assessments, err := assessRepo.List(ctx, "")
	if err != nil {
		return err
	}
	if len(assessments) > 0 {
		return nil
	}
	for _, a := range defaultAssessments() {
		if err := assessRepo.Upsert(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func seedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+name)).String()
}

func defaultCompetencies() []repository.Competency {
	date := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	tree := map[string][]string{
		"Leadership":    {"Delegation", "Coaching"},
		"Communication": {"Written communication", "Presenting"},
		"Teamwork":      nil,
	}
	var out []repository.Competency
	for _, name := range []string{"Leadership", "Communication", "Teamwork"} {
		c := repository.Competency{ID: seedID("competency", name), Name: name, Date: date}
		for _, sub := range tree[name] {
			c.Subcompetencies = append(c.Subcompetencies, repository.Competency{
				ID:   seedID("competency", name+">"+sub),
				Name: sub,
				Date: date,
			})
		}
		out = append(out, c)
	}
	return out
}

func defaultAssessments() []repository.Assessment {
	date := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)
	people := []struct{ username, fullName, desc string }{
		{"ada", "Ada Lovelace", "Quarterly leadership review."},
		{"grace", "Grace Hopper", "Communication skills assessment."},
	}
	out := make([]repository.Assessment, 0, len(people))
	for i, p := range people {
		out = append(out, repository.Assessment{
			ID:          seedID("assessment", p.username),
			Username:    p.username,
			FullName:    p.fullName,
			AvatarURL:   "https://avatars.example.com/" + p.username + ".png",
			Description: p.desc,
			Date:        date.AddDate(0, 0, i),
		})
	}
	return out
}
