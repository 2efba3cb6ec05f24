package source

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/okian/pacetrend/internal/domain/model"
)

// Float is a JSON number field that never fails decoding. A value that is
// neither a number nor a numeric string decodes as absent and is kept in Raw,
// so one bad record cannot fail the batch around it.
type Float struct {
	value *float64
	Raw   string
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(b []byte) error {
	*f = Float{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			f.Raw = string(b)
			return nil
		}
		if s = strings.TrimSpace(s); s == "" {
			return nil
		}
	} else {
		s = string(b)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.Raw = string(b)
		return nil
	}
	f.value = &v
	return nil
}

// Ptr returns the decoded value, nil when absent or malformed.
func (f Float) Ptr() *float64 { return f.value }

// Malformed reports whether a value was present but could not be read.
func (f Float) Malformed() bool { return f.Raw != "" }

// Timestamp is a start_date_local field accepting the layouts of model.ParseStartDate.
// Unreadable values decode as absent and are kept in Raw.
type Timestamp struct {
	value *time.Time
	Raw   string
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.Raw = string(b)
		return nil
	}
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	v, err := model.ParseStartDate(s)
	if err != nil {
		t.Raw = s
		return nil
	}
	t.value = &v
	return nil
}

// Ptr returns the decoded time, nil when absent or malformed.
func (t Timestamp) Ptr() *time.Time { return t.value }

// Malformed reports whether a value was present but could not be read.
func (t Timestamp) Malformed() bool { return t.Raw != "" }
