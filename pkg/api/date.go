package api

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date format used on the wire.
	DateLayout = "2006-01-02"
	// TimestampLayout is the format of the backend's last_updated field.
	TimestampLayout = "2006-01-02 15:04:05"
)

// ParseDate parses an ISO calendar date, falling back to RFC3339.
func ParseDate(v string) (Date, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, v); err2 == nil {
			y, m, d := t2.Date()
			return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
		}
		return Date{}, err
	}
	return Date{t}, nil
}

// MustDate is ParseDate for literals known to be valid.
func MustDate(v string) Date {
	d, err := ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Date is a calendar day without a time of day.
type Date struct {
	time.Time
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseDate(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp is the wall-clock time the backend computed a forecast.
type Timestamp struct {
	time.Time
}

func ParseTimestamp(v string) (Timestamp, error) {
	t, err := time.Parse(TimestampLayout, v)
	if err != nil {
		t, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return Timestamp{}, err
		}
	}
	return Timestamp{t}, nil
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
