package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Ordinal Tests
// =============================================================================

func TestOrdinal_ZeroValueInvalid(t *testing.T) {
	var o Ordinal
	assert.False(t, o.Valid())
	assert.False(t, o.InRange())
}

func TestOrdinal_CoercionFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		value   int
		inRange bool
	}{
		{"integer", "3", true, 3, true},
		{"whole float", "4.0", true, 4, true},
		{"numeric string", `"5"`, true, 5, true},
		{"padded numeric string", `" 2 "`, true, 2, true},
		{"out of range high", "9", true, 9, false},
		{"out of range low", "0", true, 0, false},
		{"negative", "-1", true, -1, false},
		{"fractional float", "3.5", false, 0, false},
		{"non-numeric string", `"high"`, false, 0, false},
		{"null", "null", false, 0, false},
		{"mapping", "{a: 1}", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Ordinal
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &o))
			assert.Equal(t, tt.valid, o.Valid())
			assert.Equal(t, tt.inRange, o.InRange())
			if tt.valid {
				assert.Equal(t, tt.value, o.Int())
			}
		})
	}
}

func TestOrdinal_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(OrdinalOf(4))
	require.NoError(t, err)
	assert.Equal(t, "4", string(data))

	var o Ordinal
	require.NoError(t, json.Unmarshal([]byte("4"), &o))
	assert.Equal(t, 4, o.Int())

	data, err = json.Marshal(Ordinal{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

// =============================================================================
// Date Tests
// =============================================================================

func TestParseDate_Layouts(t *testing.T) {
	want := DateOf(2025, time.March, 10)

	for _, input := range []string{
		"2025-03-10",
		"2025-03-10T00:00:00Z",
		"2025-03-10 00:00:00",
		"03/10/2025",
		"2025/03/10",
	} {
		got := ParseDate(input)
		require.True(t, got.Valid(), "input %q should parse", input)
		assert.Equal(t, want.Time(), got.Time(), "input %q", input)
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, input := range []string{"", "  ", "not-a-date", "2025-13-40", "10-03-2025"} {
		assert.False(t, ParseDate(input).Valid(), "input %q should not parse", input)
	}
}

func TestDate_DaysUntil(t *testing.T) {
	a := DateOf(2025, time.January, 1)
	b := DateOf(2025, time.January, 8)
	assert.Equal(t, 7, a.DaysUntil(b))
	assert.Equal(t, -7, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestDate_Before(t *testing.T) {
	d := DateOf(2025, time.June, 1)
	assert.True(t, d.Before(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, d.Before(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))

	var invalid Date
	assert.False(t, invalid.Before(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDate_YAMLTimestamp(t *testing.T) {
	// yaml.v3 decodes unquoted ISO dates as native timestamps.
	var d Date
	require.NoError(t, yaml.Unmarshal([]byte("2025-03-10"), &d))
	require.True(t, d.Valid())
	assert.Equal(t, "2025-03-10", d.String())
}

func TestDate_JSONMarshal(t *testing.T) {
	data, err := json.Marshal(DateOf(2025, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-10"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

// =============================================================================
// RefList Tests
// =============================================================================

func TestRefList_FromDelimitedString(t *testing.T) {
	var r RefList
	require.NoError(t, yaml.Unmarshal([]byte(`"T-1, T-2;T-3,  ,T-4"`), &r))
	assert.Equal(t, RefList{"T-1", "T-2", "T-3", "T-4"}, r)
}

func TestRefList_FromSequence(t *testing.T) {
	var r RefList
	require.NoError(t, yaml.Unmarshal([]byte("[' T-1 ', 'T-2', '']"), &r))
	assert.Equal(t, RefList{"T-1", "T-2"}, r)
}

func TestRefList_JSONString(t *testing.T) {
	var r RefList
	require.NoError(t, json.Unmarshal([]byte(`"A,B"`), &r))
	assert.Equal(t, RefList{"A", "B"}, r)
}

func TestRefList_Empty(t *testing.T) {
	var r RefList
	require.NoError(t, yaml.Unmarshal([]byte(`""`), &r))
	assert.Empty(t, r)
}

// =============================================================================
// NormalizeID Tests
// =============================================================================

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "UN-001", NormalizeID("  UN-001 "))
	assert.Equal(t, "", NormalizeID("   "))
	// NFD "é" (e + combining acute) normalizes to the NFC single rune.
	assert.Equal(t, "Rév-1", NormalizeID("Rév-1"))
	// Case is preserved.
	assert.Equal(t, "un-001", NormalizeID("un-001"))
}
