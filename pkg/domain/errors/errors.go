package errors

import "errors"

// ErrMissing means the target entity does not exist, or exists but is
// not (transitively) owned by the caller. The two cases are deliberately
// indistinguishable so that one user cannot probe for another user's
// entity ids.
var ErrMissing = errors.New("missing")

// ErrConflict means the operation collides with existing state
// (e.g. registering an email address already taken).
var ErrConflict = errors.New("conflict")
