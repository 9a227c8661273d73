package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n\t\n  ", ""},
		{"headings kept", "# Title\n## Subtitle\nContent here", "# Title\n## Subtitle\nContent here"},
		{"bullets kept", "- Item 1\n* Item 2", "- Item 1\n* Item 2"},
		{"bullet glyphs", "• Built APIs\n·  Ran on-call", "- Built APIs\n- Ran on-call"},
		{"inner spaces", "Line    with \t multiple    spaces", "Line with multiple spaces"},
		{"line endings", "Line 1\r\nLine 2\rLine 3", "Line 1\nLine 2\nLine 3"},
		{"blank lines", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"non-breaking space", "Go\u00a0\u00a0developer", "Go developer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(plain, []byte("Summary\r\n\r\n\r\n\r\nBuilt   Go services"), 0o644))
	text, err := ReadFile(plain, false)
	require.NoError(t, err)
	assert.Equal(t, "Summary\n\nBuilt Go services", text)

	page := filepath.Join(dir, "job.html")
	require.NoError(t, os.WriteFile(page, []byte("<html><body><h2>Requirements</h2><ul><li>Go</li></ul></body></html>"), 0o644))
	text, err = ReadFile(page, true)
	require.NoError(t, err)
	assert.Equal(t, "## Requirements\n- Go", text)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
