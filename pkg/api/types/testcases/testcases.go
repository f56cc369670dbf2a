package testcases

import (
	"reflect"

	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/utils/rfctime"
)

// Creation is a request to register a new TestCase.
//
// Type is matched case-insensitively against the known test case types
// and normalized to lowercase before storage.
type Creation struct {
	Name string `json:"name"`
	Type string `json:"type"`

	Input          any    `json:"input,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`

	Context          []string `json:"context,omitempty"`
	RetrievalContext []string `json:"retrieval_context,omitempty"`

	AdditionalMetadata map[string]any `json:"additional_metadata,omitempty"`

	IsGlobal bool `json:"is_global"`
}

// Update carries the fields to be changed. Absent fields are left as they are.
type Update struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`

	Input          *any    `json:"input,omitempty"`
	ExpectedOutput *string `json:"expected_output,omitempty"`

	Context          *[]string `json:"context,omitempty"`
	RetrievalContext *[]string `json:"retrieval_context,omitempty"`

	AdditionalMetadata *map[string]any `json:"additional_metadata,omitempty"`

	IsGlobal *bool `json:"is_global,omitempty"`
}

type Detail struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`

	Input          any    `json:"input,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`

	Context          []string `json:"context,omitempty"`
	RetrievalContext []string `json:"retrieval_context,omitempty"`

	AdditionalMetadata map[string]any `json:"additional_metadata,omitempty"`

	UserId   string `json:"user_id"`
	IsGlobal bool   `json:"is_global"`

	CreatedAt rfctime.RFC3339 `json:"created_at"`
	UpdatedAt rfctime.RFC3339 `json:"updated_at"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Id == o.Id &&
		d.Name == o.Name &&
		d.Type == o.Type &&
		reflect.DeepEqual(d.Input, o.Input) &&
		d.ExpectedOutput == o.ExpectedOutput &&
		reflect.DeepEqual(d.Context, o.Context) &&
		reflect.DeepEqual(d.RetrievalContext, o.RetrievalContext) &&
		reflect.DeepEqual(d.AdditionalMetadata, o.AdditionalMetadata) &&
		d.UserId == o.UserId &&
		d.IsGlobal == o.IsGlobal &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}

func ComposeDetail(tc domain.TestCase) Detail {
	return Detail{
		Id:                 tc.Id,
		Name:               tc.Name,
		Type:               tc.Type.String(),
		Input:              tc.Input,
		ExpectedOutput:     tc.ExpectedOutput,
		Context:            tc.Context,
		RetrievalContext:   tc.RetrievalContext,
		AdditionalMetadata: tc.AdditionalMetadata,
		UserId:             tc.UserId,
		IsGlobal:           tc.IsGlobal,
		CreatedAt:          rfctime.New(tc.CreatedAt),
		UpdatedAt:          rfctime.New(tc.UpdatedAt),
	}
}
