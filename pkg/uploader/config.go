package uploader

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/go-go-golems/anki-csv-uploader/pkg/notes"
)

// Config describes one upload run. It is loaded once at startup and not
// mutated afterwards.
type Config struct {
	DeckName string `yaml:"deck_name" validate:"required"`
	NoteType string `yaml:"note_type" validate:"required"`

	// Columns is the ordered column-to-field table. Both key spellings from
	// the two historical config dialects are accepted.
	Columns    notes.Mappings `yaml:"columns_to_note_fields"`
	CSVColumns notes.Mappings `yaml:"csv_columns_to_note_fields"`

	// Exactly one record source is used per run; csv_path may also be
	// overridden from the command line.
	CSVPath string `yaml:"csv_path"`
	CSVURL  string `yaml:"csv_url"`

	AllowDuplicates bool   `yaml:"allow_duplicates"`
	IndexField      string `yaml:"index_field"`

	BatchSize int      `yaml:"batch_size"`
	Tags      []string `yaml:"tags"`
}

// yamlKeys maps struct field names to their config file spelling for
// operator-facing validation messages.
var yamlKeys = map[string]string{
	"DeckName": "deck_name",
	"NoteType": "note_type",
}

// LoadConfig reads and validates a run configuration. Missing required keys
// are a fatal configuration error reported before any network call.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the presence of the required keys and normalizes defaults.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			key := verrs[0].StructField()
			if yk, ok := yamlKeys[key]; ok {
				key = yk
			}
			return fmt.Errorf("missing required config key %q", key)
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if len(c.Columns) == 0 && len(c.CSVColumns) == 0 {
		return fmt.Errorf("missing required config key %q (or %q)", "columns_to_note_fields", "csv_columns_to_note_fields")
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return nil
}

// Mappings returns the effective column-to-field table. When both spellings
// are present, columns_to_note_fields wins.
func (c *Config) Mappings() notes.Mappings {
	if len(c.Columns) > 0 {
		return c.Columns
	}
	return c.CSVColumns
}
