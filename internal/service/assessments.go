package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jask/skillboard/internal/database/repository"
)

// AssessmentService is the data source behind the profile page.
type AssessmentService struct {
	Assessments *repository.AssessmentRepo
}

// LoadAssessments lists the assessments available to identity.
func (s *AssessmentService) LoadAssessments(ctx context.Context, identity string) ([]repository.Assessment, error) {
	list, err := s.Assessments.List(ctx, strings.TrimSpace(identity))
	if err != nil {
		return nil, fmt.Errorf("load assessments for %q: %w", identity, err)
	}
	return list, nil
}
