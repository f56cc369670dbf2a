package domain

import (
	"reflect"
	"time"
)

// TestResult is the outcome of evaluating one TestCase within one Run.
//
// Its effective owner is the owner of the Experiment reached through
// its parent Run. The TestCaseId is kept as a plain reference: deleting
// the TestCase leaves the result record intact for audit.
type TestResult struct {
	Id         string
	RunId      string
	TestCaseId string

	Name           string
	Success        bool
	Conversational bool
	Multimodal     *bool

	// Input and ActualOutput may be strings or lists of strings/image references.
	Input          any
	ActualOutput   any
	ExpectedOutput string

	Context          []string
	RetrievalContext []string

	// metric scores produced by the evaluation client.
	MetricsData []map[string]any

	AdditionalMetadata map[string]any

	ExecutedAt time.Time
}

func (tr TestResult) Equal(o TestResult) bool {
	return tr.Id == o.Id &&
		tr.RunId == o.RunId &&
		tr.TestCaseId == o.TestCaseId &&
		tr.Name == o.Name &&
		tr.Success == o.Success &&
		tr.Conversational == o.Conversational &&
		boolPtrEq(tr.Multimodal, o.Multimodal) &&
		reflect.DeepEqual(tr.Input, o.Input) &&
		reflect.DeepEqual(tr.ActualOutput, o.ActualOutput) &&
		tr.ExpectedOutput == o.ExpectedOutput &&
		reflect.DeepEqual(tr.Context, o.Context) &&
		reflect.DeepEqual(tr.RetrievalContext, o.RetrievalContext) &&
		reflect.DeepEqual(tr.MetricsData, o.MetricsData) &&
		reflect.DeepEqual(tr.AdditionalMetadata, o.AdditionalMetadata) &&
		tr.ExecutedAt.Equal(o.ExecutedAt)
}

// TestResultParam is the user-supplied part of a new TestResult.
type TestResultParam struct {
	RunId      string
	TestCaseId string

	Name           string
	Success        bool
	Conversational bool
	Multimodal     *bool

	Input          any
	ActualOutput   any
	ExpectedOutput string

	Context          []string
	RetrievalContext []string

	MetricsData        []map[string]any
	AdditionalMetadata map[string]any
}

func boolPtrEq(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
