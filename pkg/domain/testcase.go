package domain

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

type TestCaseType string

const (
	LLM            TestCaseType = "llm"
	Conversational TestCaseType = "conversational"
	Multimodal     TestCaseType = "multimodal"
)

func (t TestCaseType) String() string {
	return string(t)
}

// AsTestCaseType parses a type expression case-insensitively.
//
// The stored form is always lowercase.
func AsTestCaseType(typ string) (TestCaseType, error) {
	switch strings.ToLower(typ) {
	case string(LLM):
		return LLM, nil
	case string(Conversational):
		return Conversational, nil
	case string(Multimodal):
		return Multimodal, nil
	default:
		return "", fmt.Errorf("'%s' is not TestCaseType", typ)
	}
}

// TestCase is a reusable evaluation input, owned by the user who created it.
//
// A TestCase with IsGlobal set is readable by any authenticated user,
// but stays mutable and deletable by its owner only.
type TestCase struct {
	Id   string
	Name string
	Type TestCaseType

	// Input may be a string or a list of strings/image references.
	Input          any
	ExpectedOutput string

	Context          []string
	RetrievalContext []string

	AdditionalMetadata map[string]any

	UserId   string
	IsGlobal bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (tc TestCase) Equal(o TestCase) bool {
	return tc.Id == o.Id &&
		tc.Name == o.Name &&
		tc.Type == o.Type &&
		reflect.DeepEqual(tc.Input, o.Input) &&
		tc.ExpectedOutput == o.ExpectedOutput &&
		reflect.DeepEqual(tc.Context, o.Context) &&
		reflect.DeepEqual(tc.RetrievalContext, o.RetrievalContext) &&
		reflect.DeepEqual(tc.AdditionalMetadata, o.AdditionalMetadata) &&
		tc.UserId == o.UserId &&
		tc.IsGlobal == o.IsGlobal &&
		tc.CreatedAt.Equal(o.CreatedAt) &&
		tc.UpdatedAt.Equal(o.UpdatedAt)
}

// TestCaseParam is the user-supplied part of a new TestCase.
type TestCaseParam struct {
	Name               string
	Type               TestCaseType
	Input              any
	ExpectedOutput     string
	Context            []string
	RetrievalContext   []string
	AdditionalMetadata map[string]any
	IsGlobal           bool
}

// TestCaseDelta is a sparse update: nil fields are left as they are.
type TestCaseDelta struct {
	Name               *string
	Type               *TestCaseType
	Input              *any
	ExpectedOutput     *string
	Context            *[]string
	RetrievalContext   *[]string
	AdditionalMetadata *map[string]any
	IsGlobal           *bool
}
