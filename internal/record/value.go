package record

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Ordinal is a 1-5 rating field (severity, occurrence, detection).
//
// The zero value is invalid ("absent"). Unmarshaling coerces integers,
// whole floats, and numeric strings; anything else leaves the Ordinal
// invalid rather than failing the decode. Range checking is NOT done
// here - an out-of-range integer is preserved so the risk matrix can
// classify it as N/A while the raw value stays visible to callers.
type Ordinal struct {
	value int64
	valid bool
}

// OrdinalOf returns a valid Ordinal carrying n.
func OrdinalOf(n int) Ordinal {
	return Ordinal{value: int64(n), valid: true}
}

// Valid reports whether the field was present and numeric.
func (o Ordinal) Valid() bool { return o.valid }

// Int returns the raw rating value. Only meaningful when Valid().
func (o Ordinal) Int() int { return int(o.value) }

// InRange reports whether the rating is a valid ordinal in [1,5].
func (o Ordinal) InRange() bool {
	return o.valid && o.value >= 1 && o.value <= 5
}

func (o *Ordinal) coerce(raw any) {
	switch v := raw.(type) {
	case int:
		*o = Ordinal{value: int64(v), valid: true}
	case int64:
		*o = Ordinal{value: v, valid: true}
	case float64:
		// Streamlit number inputs round-trip as floats; accept whole values.
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			*o = Ordinal{value: int64(v), valid: true}
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			*o = Ordinal{value: n, valid: true}
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			*o = Ordinal{value: n, valid: true}
		}
	}
}

// UnmarshalYAML implements yaml.Unmarshaler. Decode errors are absorbed:
// a malformed rating yields an invalid Ordinal, not a failed snapshot.
func (o *Ordinal) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil
	}
	o.coerce(raw)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler with the same tolerance.
func (o *Ordinal) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	o.coerce(raw)
	return nil
}

// MarshalJSON emits the raw value, or null when absent.
func (o Ordinal) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.value, 10)), nil
}

// MarshalYAML mirrors MarshalJSON.
func (o Ordinal) MarshalYAML() (any, error) {
	if !o.valid {
		return nil, nil
	}
	return o.value, nil
}

// dateLayouts are tried in order when parsing date strings.
// ISO first (the storage format), then the formats the original data
// entry surfaces produced.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// Date is a calendar date field. The zero value is invalid ("absent").
// Time-of-day is truncated; all schedule arithmetic is day-granular.
type Date struct {
	t     time.Time
	valid bool
}

// DateOf returns a valid Date for the given calendar day (UTC).
func DateOf(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// ParseDate parses s against the known layouts. Unparseable input
// yields an invalid Date, never an error.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t.UTC().Truncate(24 * time.Hour), valid: true}
		}
	}
	return Date{}
}

// Valid reports whether the field held a parseable date.
func (d Date) Valid() bool { return d.valid }

// Time returns the underlying time at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// String renders ISO "YYYY-MM-DD", or "" when absent.
func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// DaysUntil returns the whole-day difference other - d.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// Before reports whether d is strictly before t (day granularity).
func (d Date) Before(t time.Time) bool {
	return d.valid && d.t.Before(t.UTC().Truncate(24*time.Hour))
}

// UnmarshalYAML accepts date strings and native YAML timestamps.
// Malformed values leave the Date invalid.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var ts time.Time
	if err := node.Decode(&ts); err == nil {
		*d = Date{t: ts.UTC().Truncate(24 * time.Hour), valid: true}
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		*d = ParseDate(s)
	}
	return nil
}

// UnmarshalJSON accepts date strings; malformed values leave the Date invalid.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	*d = ParseDate(s)
	return nil
}

// MarshalJSON emits ISO "YYYY-MM-DD", or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// MarshalYAML mirrors MarshalJSON.
func (d Date) MarshalYAML() (any, error) {
	if !d.valid {
		return nil, nil
	}
	return d.String(), nil
}

// RefList is a set of record-id references (e.g. task dependencies).
//
// Accepts either a YAML/JSON sequence of ids or a single delimited
// string ("T1, T2;T3"), matching how the original flat records stored
// dependency lists. Ids are NFC-normalized and blanks dropped.
type RefList []string

func splitRefs(s string) RefList {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var refs RefList
	for _, f := range fields {
		if id := NormalizeID(f); id != "" {
			refs = append(refs, id)
		}
	}
	return refs
}

func normalizeRefs(raw []string) RefList {
	var refs RefList
	for _, f := range raw {
		if id := NormalizeID(f); id != "" {
			refs = append(refs, id)
		}
	}
	return refs
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RefList) UnmarshalYAML(node *yaml.Node) error {
	var list []string
	if err := node.Decode(&list); err == nil {
		*r = normalizeRefs(list)
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		*r = splitRefs(s)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RefList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*r = normalizeRefs(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = splitRefs(s)
	}
	return nil
}
