package postgres

import (
	"encoding/json"
	"errors"

	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

// MarshalJSONB prepares a value for a jsonb parameter.
//
// nil stays nil, so optional payloads land as SQL NULL.
func MarshalJSONB(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// UnmarshalJSONB reads a jsonb column fetched as raw bytes.
//
// Empty (NULL) columns leave the destination at its zero value.
func UnmarshalJSONB(raw []byte, into any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, into)
}

// AsDomainError maps structural postgres failures onto domain sentinels.
//
// Unique violations become ErrConflict; everything else passes through.
func AsDomainError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.Join(kerr.ErrConflict, err)
	}
	return err
}
