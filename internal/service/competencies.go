package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/skillboard/internal/database"
	"github.com/jask/skillboard/internal/database/repository"
)

// ErrEmptyName is returned when a competency is created without a name.
var ErrEmptyName = errors.New("competency name is required")

// CompetencyService is the data source behind the competencies page.
type CompetencyService struct {
	Competencies *repository.CompetencyRepo
}

// LoadCompetencies returns every top-level competency.
func (s *CompetencyService) LoadCompetencies(ctx context.Context) ([]repository.Competency, error) {
	list, err := s.Competencies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load competencies: %w", err)
	}
	return list, nil
}

// CreateCompetency stores c and returns the refreshed collection. Missing
// ids and dates are filled in.
func (s *CompetencyService) CreateCompetency(ctx context.Context, c repository.Competency) ([]repository.Competency, error) {
	if c.Name == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	if c.Date.IsZero() {
		c.Date = database.Now()
	}
	if err := s.Competencies.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("create competency %q: %w", c.Name, err)
	}
	return s.LoadCompetencies(ctx)
}

// DeleteCompetency removes the competency with id, subcompetencies included,
// and returns the refreshed collection.
func (s *CompetencyService) DeleteCompetency(ctx context.Context, id string) ([]repository.Competency, error) {
	if err := s.Competencies.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete competency %s: %w", id, err)
	}
	return s.LoadCompetencies(ctx)
}

// Import upserts every competency, returning how many top-level records were written.
func (s *CompetencyService) Import(ctx context.Context, list []repository.Competency) (int, error) {
	for i, c := range list {
		if c.Name == "" {
			return i, fmt.Errorf("import entry %d: %w", i, ErrEmptyName)
		}
		if err := s.Competencies.Upsert(ctx, c); err != nil {
			return i, fmt.Errorf("import %q: %w", c.Name, err)
		}
	}
	return len(list), nil
}
