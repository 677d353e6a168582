package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	content := `extraction_instruction: "Extract every dated event."
reasoning_instruction: "Annotate events against the case description."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	prompts, err := LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, "Extract every dated event.", prompts.ExtractionInstruction)
	assert.Equal(t, "Annotate events against the case description.", prompts.ReasoningInstruction)
}

func TestLoadPromptsEmptyPathKeepsDefaults(t *testing.T) {
	prompts, err := LoadPrompts("")
	require.NoError(t, err)
	assert.Empty(t, prompts.ExtractionInstruction)
	assert.Empty(t, prompts.ReasoningInstruction)
}

func TestLoadPromptsPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extraction_instruction: custom\n"), 0o600))

	prompts, err := LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", prompts.ExtractionInstruction)
	assert.Empty(t, prompts.ReasoningInstruction)
}

func TestLoadPromptsMissingFile(t *testing.T) {
	_, err := LoadPrompts(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadPromptsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0o600))

	_, err := LoadPrompts(path)
	assert.Error(t, err)
}
