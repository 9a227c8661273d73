package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "  Summary\nBuilt things.  ", "Summary\nBuilt things."},
		{"generic fence", "```\nSummary\nBuilt things.\n```", "Summary\nBuilt things."},
		{"language fence", "```markdown\n## Summary\nBuilt things.\n```", "## Summary\nBuilt things."},
		{"first line is content", "```Summary of work\nBuilt things.\n```", "Summary of work\nBuilt things."},
		{"unterminated fence", "```text\nBuilt things.", "Built things."},
		{"inner backticks kept", "Use `go test` daily.", "Use `go test` daily."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
