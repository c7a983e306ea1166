package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type sample struct {
	Name      string `json:"name" yaml:"name"`
	IsFetched bool   `json:"isFetched" yaml:"isFetched"`
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, []sample{{Name: "pdf", IsFetched: true}}))
	assert.JSONEq(t, `[{"name":"pdf","isFetched":true}]`, buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatYAML, sample{Name: "pdf"}))
	assert.YAMLEq(t, "name: pdf\nisFetched: false\n", buf.String())

	assert.Error(t, Encode(&buf, FormatTable, sample{}))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, "Repository", "Fetched")
	require.NoError(t, table.Append("anthropics/skills", "yes"))
	require.NoError(t, table.Render())

	out := buf.String()
	assert.Contains(t, out, "anthropics/skills")
	assert.Contains(t, out, "yes")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "a b c", Truncate("a\n b\tc", 10))
	assert.Equal(t, "日本語の...", Truncate("日本語のテキストです", 7))
}

func TestMark(t *testing.T) {
	DisableColors()
	assert.Equal(t, SymbolYes, Mark(true))
	assert.Equal(t, SymbolNo, Mark(false))
	assert.Equal(t, SymbolFav, Star(true))
	assert.Empty(t, Star(false))
}
