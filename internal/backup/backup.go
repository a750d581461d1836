// Package backup reads and writes competency exports as JSON files.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/skillboard/internal/database/repository"
)

type document struct {
	Version      int                     `json:"version"`
	Competencies []repository.Competency `json:"competencies"`
}

const version = 1

// SaveCompetencies writes list to path atomically.
func SaveCompetencies(path string, list []repository.Competency) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(document{Version: version, Competencies: list}, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadCompetencies reads an export written by SaveCompetencies.
func LoadCompetencies(path string) ([]repository.Competency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if doc.Version != version {
		return nil, fmt.Errorf("unsupported export version %d", doc.Version)
	}
	return doc.Competencies, nil
}
