package testresults

import (
	"reflect"

	"github.com/evaltrack/evaltrack/pkg/domain"
	"github.com/evaltrack/evaltrack/pkg/utils/rfctime"
)

// Creation is a request to record one TestResult under a Run.
type Creation struct {
	RunId      string `json:"run_id"`
	TestCaseId string `json:"test_case_id"`

	Name           string `json:"name"`
	Success        bool   `json:"success"`
	Conversational bool   `json:"conversational"`
	Multimodal     *bool  `json:"multimodal,omitempty"`

	Input          any    `json:"input,omitempty"`
	ActualOutput   any    `json:"actual_output,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`

	Context          []string `json:"context,omitempty"`
	RetrievalContext []string `json:"retrieval_context,omitempty"`

	MetricsData        []map[string]any `json:"metrics_data,omitempty"`
	AdditionalMetadata map[string]any   `json:"additional_metadata,omitempty"`
}

// Param converts the request into domain shape.
func (c Creation) Param() domain.TestResultParam {
	return domain.TestResultParam{
		RunId:              c.RunId,
		TestCaseId:         c.TestCaseId,
		Name:               c.Name,
		Success:            c.Success,
		Conversational:     c.Conversational,
		Multimodal:         c.Multimodal,
		Input:              c.Input,
		ActualOutput:       c.ActualOutput,
		ExpectedOutput:     c.ExpectedOutput,
		Context:            c.Context,
		RetrievalContext:   c.RetrievalContext,
		MetricsData:        c.MetricsData,
		AdditionalMetadata: c.AdditionalMetadata,
	}
}

type Summary struct {
	Id         string `json:"id"`
	RunId      string `json:"run_id"`
	TestCaseId string `json:"test_case_id"`

	Name           string `json:"name"`
	Success        bool   `json:"success"`
	Conversational bool   `json:"conversational"`
	Multimodal     *bool  `json:"multimodal,omitempty"`

	Input          any    `json:"input,omitempty"`
	ActualOutput   any    `json:"actual_output,omitempty"`
	ExpectedOutput string `json:"expected_output,omitempty"`

	Context          []string `json:"context,omitempty"`
	RetrievalContext []string `json:"retrieval_context,omitempty"`

	MetricsData        []map[string]any `json:"metrics_data,omitempty"`
	AdditionalMetadata map[string]any   `json:"additional_metadata,omitempty"`

	ExecutedAt rfctime.RFC3339 `json:"executed_at"`
}

func (s Summary) Equal(o Summary) bool {
	multimodalEq := (s.Multimodal == nil && o.Multimodal == nil) ||
		(s.Multimodal != nil && o.Multimodal != nil && *s.Multimodal == *o.Multimodal)

	return s.Id == o.Id &&
		s.RunId == o.RunId &&
		s.TestCaseId == o.TestCaseId &&
		s.Name == o.Name &&
		s.Success == o.Success &&
		s.Conversational == o.Conversational &&
		multimodalEq &&
		reflect.DeepEqual(s.Input, o.Input) &&
		reflect.DeepEqual(s.ActualOutput, o.ActualOutput) &&
		s.ExpectedOutput == o.ExpectedOutput &&
		reflect.DeepEqual(s.Context, o.Context) &&
		reflect.DeepEqual(s.RetrievalContext, o.RetrievalContext) &&
		reflect.DeepEqual(s.MetricsData, o.MetricsData) &&
		reflect.DeepEqual(s.AdditionalMetadata, o.AdditionalMetadata) &&
		s.ExecutedAt.Equal(o.ExecutedAt)
}

func ComposeSummary(tr domain.TestResult) Summary {
	return Summary{
		Id:                 tr.Id,
		RunId:              tr.RunId,
		TestCaseId:         tr.TestCaseId,
		Name:               tr.Name,
		Success:            tr.Success,
		Conversational:     tr.Conversational,
		Multimodal:         tr.Multimodal,
		Input:              tr.Input,
		ActualOutput:       tr.ActualOutput,
		ExpectedOutput:     tr.ExpectedOutput,
		Context:            tr.Context,
		RetrievalContext:   tr.RetrievalContext,
		MetricsData:        tr.MetricsData,
		AdditionalMetadata: tr.AdditionalMetadata,
		ExecutedAt:         rfctime.New(tr.ExecutedAt),
	}
}
