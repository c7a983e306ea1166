package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantName string
		wantDesc string
	}{
		{
			name:     "both fields",
			content:  "---\nname: PDF Processing\ndescription: Extract text from PDFs\n---\n# PDF\n",
			wantName: "PDF Processing",
			wantDesc: "Extract text from PDFs",
		},
		{
			name:     "surrounding whitespace trimmed",
			content:  "---\nname:    spaced out   \ndescription:\tTabbed description \t\n---\n",
			wantName: "spaced out",
			wantDesc: "Tabbed description",
		},
		{
			name:     "no header block",
			content:  "# Just a heading\n\nname: not in a header\n",
			wantName: UnknownName,
			wantDesc: "",
		},
		{
			name:     "header not at start",
			content:  "\n---\nname: late\n---\n",
			wantName: UnknownName,
			wantDesc: "",
		},
		{
			name:     "unterminated header",
			content:  "---\nname: never closed\n",
			wantName: UnknownName,
			wantDesc: "",
		},
		{
			name:     "missing description",
			content:  "---\nname: only-name\n---\n",
			wantName: "only-name",
			wantDesc: "",
		},
		{
			name:     "missing name",
			content:  "---\ndescription: only description\n---\n",
			wantName: UnknownName,
			wantDesc: "only description",
		},
		{
			name:     "crlf line endings",
			content:  "---\r\nname: windows\r\ndescription: from notepad\r\n---\r\n",
			wantName: "windows",
			wantDesc: "from notepad",
		},
		{
			name:     "fields outside header ignored",
			content:  "---\nname: inside\n---\ndescription: outside\n",
			wantName: "inside",
			wantDesc: "",
		},
		{
			name:     "empty document",
			content:  "",
			wantName: UnknownName,
			wantDesc: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotDesc := Parse(tt.content)
			assert.Equal(t, tt.wantName, gotName)
			assert.Equal(t, tt.wantDesc, gotDesc)
		})
	}
}
