package tui

import "github.com/jask/skillboard/internal/database/repository"

type requestOp string

const (
	opLoad   requestOp = "load"
	opCreate requestOp = "create"
	opDelete requestOp = "delete"
)

// competenciesMsg carries the outcome of one competency request. Exactly one
// of list or err is meaningful. name is the record a create or delete acted on.
type competenciesMsg struct {
	seq  uint64
	op   requestOp
	name string
	list []repository.Competency
	err  error
}

type assessmentsMsg struct {
	seq  uint64
	list []repository.Assessment
	err  error
}
