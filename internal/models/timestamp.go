package models

import (
	"bytes"
	"fmt"
	"time"
)

// naiveLayout is how the API serializes timestamp columns that carry no zone.
const naiveLayout = "2006-01-02T15:04:05.999999"

// Timestamp decodes both RFC3339 and zone-less API timestamps. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	s := string(b[1 : len(b)-1])

	for _, layout := range []string{time.RFC3339Nano, naiveLayout, "2006-01-02 15:04:05.999999"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// MarshalJSON writes the zone-less form the API uses.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(naiveLayout) + `"`), nil
}
