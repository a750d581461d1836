package tui

import (
	"context"

	"github.com/jask/skillboard/internal/database/repository"
)

// CompetencySource supplies and accepts competencies. The write methods
// return the whole refreshed collection, not just the affected record.
type CompetencySource interface {
	LoadCompetencies(ctx context.Context) ([]repository.Competency, error)
	CreateCompetency(ctx context.Context, c repository.Competency) ([]repository.Competency, error)
	DeleteCompetency(ctx context.Context, id string) ([]repository.Competency, error)
}

// AssessmentSource lists the assessments available to an identity.
type AssessmentSource interface {
	LoadAssessments(ctx context.Context, identity string) ([]repository.Assessment, error)
}
