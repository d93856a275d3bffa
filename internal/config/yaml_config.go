package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kwtaxonomy/internal/keywords"
)

// Lexicon merge modes.
const (
	LexiconModeReplace = "replace"
	LexiconModeExtend  = "extend"
)

// LexiconConfig represents the structure of the lexicon YAML file.
// Vocabularies are easier to maintain in YAML than in env vars.
type LexiconConfig struct {
	// Mode is "extend" (append to the built-in tables, default) or "replace".
	Mode string `yaml:"mode"`

	keywords.Lexicons `yaml:",inline"`
}

// LoadLexiconConfig loads the lexicon file at path.
// Returns nil without error if the file doesn't exist.
func LoadLexiconConfig(path string) (*LexiconConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Lexicon file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseLexiconConfig(data)
}

// ParseLexiconConfig decodes lexicon YAML.
func ParseLexiconConfig(data []byte) (*LexiconConfig, error) {
	var cfg LexiconConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse lexicons: %w", err)
	}

	// Set defaults
	if cfg.Mode == "" {
		cfg.Mode = LexiconModeExtend
	}
	if cfg.Mode != LexiconModeExtend && cfg.Mode != LexiconModeReplace {
		return nil, fmt.Errorf("invalid lexicon mode %q", cfg.Mode)
	}

	return &cfg, nil
}

// Resolve returns the lexicons to run the pipeline with.
// A nil config yields the built-in defaults.
func (c *LexiconConfig) Resolve() keywords.Lexicons {
	if c == nil {
		return keywords.DefaultLexicons()
	}
	if c.Mode == LexiconModeReplace {
		return c.Lexicons
	}
	return keywords.DefaultLexicons().Extend(c.Lexicons)
}

// LoadLexicons loads the lexicon file at path and resolves it against the defaults.
func LoadLexicons(path string) (keywords.Lexicons, error) {
	cfg, err := LoadLexiconConfig(path)
	if err != nil {
		return keywords.Lexicons{}, err
	}
	return cfg.Resolve(), nil
}
