package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate wraps t as a Date.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate parses YYYY-MM-DD into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
