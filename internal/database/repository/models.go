package repository

import "time"

// Competency represents a competency row. Subcompetencies are child rows
// linked through parent_id.
type Competency struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Date            time.Time    `json:"date"`
	Subcompetencies []Competency `json:"subcompetencies,omitempty"`
}

// Assessment represents an assessment a user can pass.
type Assessment struct {
	ID          string
	Username    string
	FullName    string
	AvatarURL   string
	Description string
	Date        time.Time
	Assignee    string
}
