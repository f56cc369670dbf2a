package rfctime

import (
	"fmt"
	"strings"
	"time"
)

// Format string for date-time in RFC3339, disallowing Z as time-offset.
//
// Use it to stringify time.Time forcing timezone offset not to use "Z".
const RFC3339DateTimeFormat string = "2006-01-02T15:04:05.999-07:00"

// Format string for date-time in RFC3339, allowing Z as time-offset.
const RFC3339DateTimeFormatZ string = time.RFC3339Nano

// date-time in https://www.ietf.org/rfc/rfc3339.txt .
//
// This type is useful to interchange timestamps via network/file.
type RFC3339 time.Time

func New(t time.Time) RFC3339 {
	return RFC3339(t)
}

func Pointer(t *time.Time) *RFC3339 {
	if t == nil {
		return nil
	}
	r := RFC3339(*t)
	return &r
}

func (t RFC3339) Time() time.Time {
	return time.Time(t)
}

func (t RFC3339) Equal(other RFC3339) bool {
	return t.Time().Equal(other.Time())
}

// get string expression, formatted by RFC3339DateTimeFormat.
func (t RFC3339) String() string {
	return time.Time(t).Format(RFC3339DateTimeFormat)
}

// Parse string to RFC3339 time.
func ParseRFC3339DateTime(s string) (RFC3339, error) {
	t, err := time.Parse(RFC3339DateTimeFormatZ, s)
	if err != nil {
		return *new(RFC3339), err
	}
	return RFC3339(t), nil
}

// implement encoding/json.Marshaler
func (t RFC3339) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, t)), nil
}

// implement encoding/json.Unmarshaler
func (t *RFC3339) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseRFC3339DateTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
