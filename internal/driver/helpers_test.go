package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeHeaders(t *testing.T) {
	got := dedupeHeaders([]string{"a", "b", "a", "a", "c"})
	assert.Equal(t, []string{"a", "b", "a.1", "a.2", "c"}, got)
}

func TestParseCSVRows_RaggedRows(t *testing.T) {
	rows, err := parseCSVRows([]byte("a,b,c\n1,2\n4,5,6,7\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "", rows[0]["c"])
	assert.Equal(t, "6", rows[1]["c"])
}

func TestApplyMapping_FirstNonEmptyWins(t *testing.T) {
	mapping := map[string]string{"name": "full_name", "full_name": "full_name"}

	fields := applyMapping(mapping, Row{"name": "", "full_name": "Alice"})
	assert.Equal(t, "Alice", fields["full_name"])

	fields = applyMapping(mapping, Row{"name": "Bob", "full_name": "Alice"})
	assert.NotEmpty(t, fields["full_name"])
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"85", ptr(85.0)},
		{"92.5", ptr(92.5)},
		{"87%", ptr(87.0)},
		{" 70 % ", ptr(70.0)},
		{"", nil},
		{"N/A", nil},
	}
	for _, tt := range tests {
		got := parseScore(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "parseScore(%q)", tt.in)
			continue
		}
		require.NotNil(t, got, "parseScore(%q)", tt.in)
		assert.Equal(t, *tt.want, *got)
	}
}

func TestCleanPhone(t *testing.T) {
	assert.Equal(t, "0912345678", cleanPhone("0912-345-678"))
	assert.Equal(t, "+886212345678", cleanPhone("+886 (2) 1234-5678"))
}

func ptr[T any](v T) *T { return &v }
