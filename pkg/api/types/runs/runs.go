package runs

import (
	"reflect"

	apitestresults "github.com/evaltrack/evaltrack/pkg/api/types/testresults"
	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/utils/cmp"
	"github.com/evaltrack/evaltrack/pkg/utils/rfctime"
)

// Creation is a request to register a Run under an Experiment
// the caller owns.
type Creation struct {
	ExperimentId    string         `json:"experiment_id"`
	GitCommit       string         `json:"git_commit"`
	Hyperparameters map[string]any `json:"hyperparameters,omitempty"`
}

// Update carries the fields to be changed. Absent fields are left as they are.
type Update struct {
	Status          *string          `json:"status,omitempty"`
	StartedAt       *rfctime.RFC3339 `json:"started_at,omitempty"`
	FinishedAt      *rfctime.RFC3339 `json:"finished_at,omitempty"`
	Hyperparameters *map[string]any  `json:"hyperparameters,omitempty"`
}

type Summary struct {
	Id              string           `json:"id"`
	ExperimentId    string           `json:"experiment_id"`
	GitCommit       string           `json:"git_commit"`
	Status          string           `json:"status"`
	Hyperparameters map[string]any   `json:"hyperparameters,omitempty"`
	StartedAt       *rfctime.RFC3339 `json:"started_at,omitempty"`
	FinishedAt      *rfctime.RFC3339 `json:"finished_at,omitempty"`
	CreatedAt       rfctime.RFC3339  `json:"created_at"`
}

func (s Summary) Equal(o Summary) bool {
	startedEq := (s.StartedAt == nil && o.StartedAt == nil) ||
		(s.StartedAt != nil && o.StartedAt != nil && s.StartedAt.Equal(*o.StartedAt))
	finishedEq := (s.FinishedAt == nil && o.FinishedAt == nil) ||
		(s.FinishedAt != nil && o.FinishedAt != nil && s.FinishedAt.Equal(*o.FinishedAt))

	return s.Id == o.Id &&
		s.ExperimentId == o.ExperimentId &&
		s.GitCommit == o.GitCommit &&
		s.Status == o.Status &&
		reflect.DeepEqual(s.Hyperparameters, o.Hyperparameters) &&
		startedEq &&
		finishedEq &&
		s.CreatedAt.Equal(o.CreatedAt)
}

type Detail struct {
	Summary
	TestResults []apitestresults.Summary `json:"test_results"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Summary.Equal(o.Summary) &&
		cmp.SliceContentEqWith(
			d.TestResults, o.TestResults,
			func(a, b apitestresults.Summary) bool { return a.Equal(b) },
		)
}

func ComposeSummary(r domain.Run) Summary {
	return Summary{
		Id:              r.Id,
		ExperimentId:    r.ExperimentId,
		GitCommit:       r.GitCommit,
		Status:          r.Status.String(),
		Hyperparameters: r.Hyperparameters,
		StartedAt:       rfctime.Pointer(r.StartedAt),
		FinishedAt:      rfctime.Pointer(r.FinishedAt),
		CreatedAt:       rfctime.New(r.CreatedAt),
	}
}

func ComposeDetail(r domain.RunWithResults) Detail {
	results := make([]apitestresults.Summary, 0, len(r.TestResults))
	for _, tr := range r.TestResults {
		results = append(results, apitestresults.ComposeSummary(tr))
	}
	return Detail{
		Summary:     ComposeSummary(r.Run),
		TestResults: results,
	}
}
