package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UserID identifies an account. Backends send it either as a JSON number or
// as a string; both decode to the same value.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		*id = UserID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		*id = UserID(n.String())
	}
	return nil
}

// MarshalJSON writes integer ids as numbers and anything else as a string.
func (id UserID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Timestamp is a server time. Raw keeps the value as sent; Time is set when
// Raw is in one of the known layouts and stays zero otherwise, so an odd
// format never fails decoding. Zone-less values are taken as UTC.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// NewTimestamp wraps t, with Raw set to its RFC 3339 form.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Raw: t.Format(time.RFC3339Nano)}
}

func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{Raw: s}
	v := strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			ts.Time = t
			break
		}
	}
	return ts
}

func (t Timestamp) IsZero() bool {
	return t.Time.IsZero() && t.Raw == ""
}

// Format renders the parsed time in local time, or the raw value when it
// could not be parsed.
func (t Timestamp) Format(layout string) string {
	if t.Time.IsZero() {
		return t.Raw
	}
	return t.Time.Local().Format(layout)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = Timestamp{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		*t = ParseTimestamp(s)
	default:
		// epoch milliseconds
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		*t = Timestamp{Raw: n.String()}
		if ms, err := n.Int64(); err == nil {
			t.Time = time.UnixMilli(ms).UTC()
		}
	}
	return nil
}

// MarshalJSON writes Raw back as it was received.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case t.Raw != "":
		if _, err := strconv.ParseInt(t.Raw, 10, 64); err == nil {
			return []byte(t.Raw), nil
		}
		return json.Marshal(t.Raw)
	case t.Time.IsZero():
		return []byte("null"), nil
	default:
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	}
}
