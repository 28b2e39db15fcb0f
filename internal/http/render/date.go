package render

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateOnly is a request body date. It accepts "2006-01-02" like the query
// parameters do, and full RFC 3339 timestamps.
type DateOnly time.Time

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	if s == "" {
		*d = DateOnly{}
		return nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		*d = DateOnly(t)
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}

	*d = DateOnly(t)

	return nil
}

// MarshalJSON writes the full timestamp, as time.Time does.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d))
}

func (d DateOnly) Time() time.Time {
	return time.Time(d)
}

// TimePtr is nil for a missing date.
func (d *DateOnly) TimePtr() *time.Time {
	if d == nil {
		return nil
	}

	return new(d.Time())
}
