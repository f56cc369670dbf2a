package domain

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Prefixes of entity ids.
//
// Each entity kind has its own fixed prefix, so that an id of one kind
// can never be mistaken for an id of another.
const (
	ExperimentIdPrefix = "exp"
	RunIdPrefix        = "run"
	TestCaseIdPrefix   = "tc"
	TestResultIdPrefix = "tr"
)

var idPattern = regexp.MustCompile(`^(exp|run|tc|tr)_[0-9a-f]{8}$`)

// newId generates an opaque id: prefix, underscore and 8 hex digits
// drawn from a random UUID.
func newId(prefix string) string {
	u := uuid.New()
	return fmt.Sprintf("%s_%x", prefix, u[:4])
}

func NewExperimentId() string { return newId(ExperimentIdPrefix) }
func NewRunId() string        { return newId(RunIdPrefix) }
func NewTestCaseId() string   { return newId(TestCaseIdPrefix) }
func NewTestResultId() string { return newId(TestResultIdPrefix) }

// IsValidId tests that a string has the shape of an entity id.
//
// Callers should treat ids as opaque; this is for sanity checks only.
func IsValidId(id string) bool {
	return idPattern.MatchString(id)
}
