package domain

import (
	"fmt"
	"reflect"
	"time"
)

type RunStatus string

const (
	// This Run is registered but has not started yet.
	Pending RunStatus = "pending"

	// This Run is being executed by the evaluation client.
	Running RunStatus = "running"

	// This Run has finished successfully.
	Completed RunStatus = "completed"

	// This Run stopped with error.
	Failed RunStatus = "failed"
)

func (rs RunStatus) String() string {
	return string(rs)
}

func AsRunStatus(status string) (RunStatus, error) {
	switch status {
	case string(Pending):
		return Pending, nil
	case string(Running):
		return Running, nil
	case string(Completed):
		return Completed, nil
	case string(Failed):
		return Failed, nil
	default:
		return "", fmt.Errorf("'%s' is not RunStatus", status)
	}
}

// Run is one execution of an Experiment's evaluation suite.
//
// A Run has no owner field of its own: its effective owner is
// always the owner of its parent Experiment.
type Run struct {
	Id           string
	ExperimentId string
	GitCommit    string
	Status       RunStatus

	// hyperparameters used for this execution. Values are scalars.
	Hyperparameters map[string]any

	StartedAt  *time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
}

func (r Run) Equal(o Run) bool {
	return r.Id == o.Id &&
		r.ExperimentId == o.ExperimentId &&
		r.GitCommit == o.GitCommit &&
		r.Status == o.Status &&
		reflect.DeepEqual(r.Hyperparameters, o.Hyperparameters) &&
		timePtrEq(r.StartedAt, o.StartedAt) &&
		timePtrEq(r.FinishedAt, o.FinishedAt) &&
		r.CreatedAt.Equal(o.CreatedAt)
}

// Run with its TestResults, as served by the single-run read.
type RunWithResults struct {
	Run
	TestResults []TestResult
}

// RunParam is the user-supplied part of a new Run.
type RunParam struct {
	ExperimentId    string
	GitCommit       string
	Hyperparameters map[string]any
}

// RunDelta is a sparse update: nil fields are left as they are.
type RunDelta struct {
	Status          *RunStatus
	StartedAt       *time.Time
	FinishedAt      *time.Time
	Hyperparameters *map[string]any
}

func timePtrEq(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
