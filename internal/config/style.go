package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"migmap/internal/classify"
	"migmap/internal/ingest"
)

// LoadStyle reads a YAML style file over the default theme. Keys absent from the file keep
// their default values; a palette given in the file replaces the default one entirely.
func LoadStyle(path string) (classify.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return classify.Theme{}, fmt.Errorf("read style file: %w", err)
	}
	return ParseStyle(data)
}

// ParseStyle decodes and validates a YAML style document.
func ParseStyle(data []byte) (classify.Theme, error) {
	theme := classify.DefaultTheme()
	if err := yaml.UnmarshalStrict(data, &theme); err != nil {
		return classify.Theme{}, fmt.Errorf("parse style file: %w", err)
	}
	if err := ingest.NewValidator().Struct(theme); err != nil {
		return classify.Theme{}, fmt.Errorf("invalid style: %w", err)
	}
	return theme, nil
}
