package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
)

// WriteOptions controls how a note report is serialized.
type WriteOptions struct {
	Format string // json|yaml
}

// WriteNotes writes the given note payloads to path for operator
// remediation, as JSON or YAML. "-" writes to stdout.
func WriteNotes(path string, failed []anki.Note, opts WriteOptions) error {
	var (
		content []byte
		err     error
	)
	switch opts.Format {
	case "yaml":
		content, err = yaml.Marshal(failed)
		if err != nil {
			return fmt.Errorf("failed to marshal failed notes to YAML: %w", err)
		}
	case "json", "":
		content, err = json.MarshalIndent(failed, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal failed notes to JSON: %w", err)
		}
		content = append(content, '\n')
	default:
		return fmt.Errorf("unknown report format %q (want json or yaml)", opts.Format)
	}

	if path == "-" {
		fmt.Print(string(content))
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write note report to %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("notes", len(failed)).Msg("note report written")
	return nil
}
