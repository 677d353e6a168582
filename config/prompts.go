package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Prompts holds the prompt templates sent to the extractor. Empty fields
// mean "use the adapter's built-in default".
type Prompts struct {
	// ExtractionInstruction is the system instruction for per-document
	// event extraction.
	ExtractionInstruction string `yaml:"extraction_instruction"`

	// ReasoningInstruction is the system instruction for the advisory
	// reasoning pass.
	ReasoningInstruction string `yaml:"reasoning_instruction"`
}

// LoadPrompts reads prompt overrides from a YAML file. An empty path
// returns zero-valued Prompts, keeping every default.
func LoadPrompts(path string) (Prompts, error) {
	var prompts Prompts
	if path == "" {
		return prompts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return prompts, fmt.Errorf("failed to read prompts file: %w", err)
	}

	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return prompts, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return prompts, nil
}
