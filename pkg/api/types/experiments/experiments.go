package experiments

import (
	"reflect"

	apiruns "github.com/evaltrack/evaltrack/pkg/api/types/runs"
	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/utils/cmp"
	"github.com/evaltrack/evaltrack/pkg/utils/rfctime"
)

// Creation is a request to register a new Experiment.
type Creation struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

// Update carries the fields to be changed. Absent fields are left as they are.
type Update struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Config      *map[string]any `json:"config,omitempty"`
}

type Summary struct {
	Id          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UserId      string          `json:"user_id"`
	Config      map[string]any  `json:"config,omitempty"`
	CreatedAt   rfctime.RFC3339 `json:"created_at"`
	UpdatedAt   rfctime.RFC3339 `json:"updated_at"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Id == o.Id &&
		s.Name == o.Name &&
		s.Description == o.Description &&
		s.UserId == o.UserId &&
		reflect.DeepEqual(s.Config, o.Config) &&
		s.CreatedAt.Equal(o.CreatedAt) &&
		s.UpdatedAt.Equal(o.UpdatedAt)
}

type Detail struct {
	Summary
	Runs []apiruns.Summary `json:"runs"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Summary.Equal(o.Summary) &&
		cmp.SliceContentEqWith(
			d.Runs, o.Runs,
			func(a, b apiruns.Summary) bool { return a.Equal(b) },
		)
}

func ComposeSummary(e domain.Experiment) Summary {
	return Summary{
		Id:          e.Id,
		Name:        e.Name,
		Description: e.Description,
		UserId:      e.UserId,
		Config:      e.Config,
		CreatedAt:   rfctime.New(e.CreatedAt),
		UpdatedAt:   rfctime.New(e.UpdatedAt),
	}
}

func ComposeDetail(e domain.ExperimentWithRuns) Detail {
	runs := make([]apiruns.Summary, 0, len(e.Runs))
	for _, r := range e.Runs {
		runs = append(runs, apiruns.ComposeSummary(r))
	}
	return Detail{
		Summary: ComposeSummary(e.Experiment),
		Runs:    runs,
	}
}
