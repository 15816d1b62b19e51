package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
)

func failedNotes() []anki.Note {
	return []anki.Note{
		anki.NewNote("Chemistry", "Basic", anki.Fields{"Front": "H", "Back": "Hydrogen"}, false, nil),
	}
}

func TestWriteNotesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed.json")
	require.NoError(t, WriteNotes(path, failedNotes(), WriteOptions{Format: "json"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []anki.Note
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Chemistry", got[0].DeckName)
	assert.Equal(t, anki.Fields{"Front": "H", "Back": "Hydrogen"}, got[0].Fields)
}

func TestWriteNotesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed.yaml")
	require.NoError(t, WriteNotes(path, failedNotes(), WriteOptions{Format: "yaml"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "deckname: Chemistry")
}

func TestWriteNotesDefaultFormatIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed.out")
	require.NoError(t, WriteNotes(path, failedNotes(), WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []anki.Note
	assert.NoError(t, json.Unmarshal(data, &got))
}

func TestWriteNotesCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run-1", "failed.json")
	require.NoError(t, WriteNotes(path, failedNotes(), WriteOptions{Format: "json"}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteNotesUnknownFormat(t *testing.T) {
	err := WriteNotes(filepath.Join(t.TempDir(), "failed.txt"), failedNotes(), WriteOptions{Format: "toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}
