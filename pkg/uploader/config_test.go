package uploader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/anki-csv-uploader/pkg/notes"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
deck_name: Chemistry
note_type: Basic
csv_path: elements.csv
columns_to_note_fields:
  Symbol: Front
  Name: Back
allow_duplicates: false
index_field: Front
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", cfg.DeckName)
	assert.Equal(t, "Basic", cfg.NoteType)
	assert.Equal(t, "elements.csv", cfg.CSVPath)
	assert.Equal(t, "Front", cfg.IndexField)
	assert.False(t, cfg.AllowDuplicates)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, notes.Mappings{
		{Column: "Symbol", Field: "Front"},
		{Column: "Name", Field: "Back"},
	}, cfg.Mappings())
}

func TestLoadConfigMissingDeckName(t *testing.T) {
	path := writeTempConfig(t, `
note_type: Basic
columns_to_note_fields:
  Symbol: Front
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"deck_name"`)
}

func TestLoadConfigMissingNoteType(t *testing.T) {
	path := writeTempConfig(t, `
deck_name: Chemistry
columns_to_note_fields:
  Symbol: Front
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"note_type"`)
}

func TestLoadConfigMissingMappings(t *testing.T) {
	path := writeTempConfig(t, `
deck_name: Chemistry
note_type: Basic
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns_to_note_fields")
}

func TestLoadConfigLegacyColumnKey(t *testing.T) {
	path := writeTempConfig(t, `
deck_name: Chemistry
note_type: Basic
csv_columns_to_note_fields:
  Symbol: Front
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, notes.Mappings{{Column: "Symbol", Field: "Front"}}, cfg.Mappings())
}

func TestLoadConfigPreferredKeyWins(t *testing.T) {
	path := writeTempConfig(t, `
deck_name: Chemistry
note_type: Basic
columns_to_note_fields:
  Symbol: Front
csv_columns_to_note_fields:
  Name: Back
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, notes.Mappings{{Column: "Symbol", Field: "Front"}}, cfg.Mappings())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigBatchSizeOverride(t *testing.T) {
	path := writeTempConfig(t, `
deck_name: Chemistry
note_type: Basic
batch_size: 25
columns_to_note_fields:
  Symbol: Front
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.BatchSize)
}
