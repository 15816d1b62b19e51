package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
)

func TestFilterByIndexDropsRecordsWithoutIndexField(t *testing.T) {
	sets := []anki.Fields{
		{"Front": "a", "Back": "1"},
		{"Back": "2"}, // no index field, excluded but not an error
		{"Front": "c"},
	}
	got := FilterByIndex(sets, "Front")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0]["Front"])
	assert.Equal(t, "c", got[1]["Front"])
}

func TestCheckUniquePasses(t *testing.T) {
	sets := []anki.Fields{
		{"Front": "a"},
		{"Front": "b"},
		{"Front": "c"},
	}
	assert.NoError(t, CheckUnique(sets, "Front"))
}

func TestCheckUniqueNamesOffendingValue(t *testing.T) {
	sets := []anki.Fields{
		{"Front": "a"},
		{"Front": "b"},
		{"Front": "a"},
	}
	err := CheckUnique(sets, "Front")
	var dup *DuplicateIndexError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Front", dup.Field)
	assert.Equal(t, "a", dup.Value)
}
