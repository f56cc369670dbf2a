package domain

import (
	"reflect"
	"time"
)

// Experiment is a container of evaluation Runs, owned by the user who created it.
type Experiment struct {
	Id          string
	Name        string
	Description string

	// identity of the owner. Stamped at creation, immutable afterwards.
	UserId string

	// model/RAG configuration and other free-form settings.
	Config map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Experiment) Equal(o Experiment) bool {
	return e.Id == o.Id &&
		e.Name == o.Name &&
		e.Description == o.Description &&
		e.UserId == o.UserId &&
		reflect.DeepEqual(e.Config, o.Config) &&
		e.CreatedAt.Equal(o.CreatedAt) &&
		e.UpdatedAt.Equal(o.UpdatedAt)
}

// Experiment with its Runs, as served by the single-experiment read.
type ExperimentWithRuns struct {
	Experiment
	Runs []Run
}

// ExperimentParam is the user-supplied part of a new Experiment.
type ExperimentParam struct {
	Name        string
	Description string
	Config      map[string]any
}

// ExperimentDelta is a sparse update: nil fields are left as they are.
type ExperimentDelta struct {
	Name        *string
	Description *string
	Config      *map[string]any
}
