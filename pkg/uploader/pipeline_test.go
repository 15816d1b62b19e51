package uploader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
	"github.com/go-go-golems/anki-csv-uploader/pkg/notes"
)

func pipelineConfig() *Config {
	return &Config{
		DeckName: "Chemistry",
		NoteType: "Basic",
		Columns:  notes.Mappings{{Column: "Symbol", Field: "Front"}, {Column: "Name", Field: "Back"}},
	}
}

func TestBuildNotes(t *testing.T) {
	cfg := pipelineConfig()
	cfg.Tags = []string{"chemistry"}
	recs := []notes.RawRecord{
		{"Symbol": "H", "Name": "Hydrogen"},
		{"Symbol": " He ", "Name": "Helium"},
	}

	built, err := BuildNotes(cfg, recs)
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.Equal(t, "Chemistry", built[0].DeckName)
	assert.Equal(t, "Basic", built[0].ModelName)
	assert.Equal(t, anki.Fields{"Front": "He", "Back": "Helium"}, built[1].Fields)
	assert.Equal(t, []string{"chemistry"}, built[0].Tags)
	assert.False(t, built[0].Options.AllowDuplicate)
}

func TestBuildNotesFiltersRecordsMissingIndexField(t *testing.T) {
	cfg := pipelineConfig()
	cfg.IndexField = "Front"
	recs := []notes.RawRecord{
		{"Symbol": "H", "Name": "Hydrogen"},
		{"Name": "nameless"},
		{"Symbol": "He", "Name": "Helium"},
	}

	built, err := BuildNotes(cfg, recs)
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.Equal(t, "H", built[0].Fields["Front"])
	assert.Equal(t, "He", built[1].Fields["Front"])
}

func TestBuildNotesAbortsOnDuplicateIndexValue(t *testing.T) {
	cfg := pipelineConfig()
	cfg.IndexField = "Front"
	recs := []notes.RawRecord{
		{"Symbol": "H"},
		{"Symbol": "He"},
		{"Symbol": "H"},
	}

	_, err := BuildNotes(cfg, recs)
	var dup *notes.DuplicateIndexError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Front", dup.Field)
	assert.Equal(t, "H", dup.Value)
}

func TestBuildNotesAllowsDuplicatesWhenConfigured(t *testing.T) {
	cfg := pipelineConfig()
	cfg.IndexField = "Front"
	cfg.AllowDuplicates = true
	recs := []notes.RawRecord{
		{"Symbol": "H"},
		{"Symbol": "H"},
	}

	built, err := BuildNotes(cfg, recs)
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.True(t, built[0].Options.AllowDuplicate)
}

func TestBuildNotesWithoutIndexFieldKeepsEveryRecord(t *testing.T) {
	cfg := pipelineConfig()
	recs := []notes.RawRecord{
		{"Symbol": "H"},
		{"Name": "nameless"},
		{"Unmapped": "ignored"},
	}

	built, err := BuildNotes(cfg, recs)
	require.NoError(t, err)
	require.Len(t, built, 3)
	assert.Empty(t, built[2].Fields)
}
