package dberrors

import (
	"fmt"
	"strings"

	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
)

// requested record is missing (or not owned by the caller).
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return kerr.ErrMissing
}

// one or more parent Runs referenced by a batch of TestResults are
// missing or not owned by the caller. RunIds names exactly the
// offending ids; none of the batch has been written.
type MissingRuns struct {
	RunIds []string
}

var _ error = MissingRuns{}

func (m MissingRuns) Error() string {
	return fmt.Sprintf("runs are not found: %s", strings.Join(m.RunIds, ", "))
}

func (m MissingRuns) Unwrap() error {
	return kerr.ErrMissing
}
