package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(TailoringFile, KeyRewrite)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Resume}}")
	assert.Contains(t, prompt, "{{.Directives}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(TailoringFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(TailoringFile, KeyCorrectiveHints))
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}! {{.Unknown}}"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp! {{.Unknown}}", Format(template, data))
}

func TestFormat_ValuesAreNotExpanded(t *testing.T) {
	result := Format("{{.A}} {{.B}}", map[string]string{"A": "{{.B}}", "B": "b"})
	assert.Equal(t, "{{.B}} b", result)
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render(TailoringFile, KeyCorrectiveHints, map[string]string{
		"Attempt":    "1",
		"Violations": "- Kubernetes: density 0.0100, expected 0.0250 to 0.0375",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "attempt 1")
	assert.Contains(t, prompt, "Kubernetes: density 0.0100")
	assert.NotContains(t, prompt, "{{.")

	_, err = Render(TailoringFile, KeyRewrite, map[string]string{"Resume": "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Keywords")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(TailoringFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyCorrectiveHints, KeyRewrite}, keys)
}
