package notes

import (
	"fmt"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
)

// DuplicateIndexError is raised when the index field value repeats across
// the run. The whole run is aborted before any upload takes place.
type DuplicateIndexError struct {
	Field string
	Value string
}

func (e *DuplicateIndexError) Error() string {
	return fmt.Sprintf("index field %q value %q appears more than once", e.Field, e.Value)
}

// FilterByIndex drops field sets that do not carry the index field at all.
// A missing index field excludes the record from upload; it is not an error.
func FilterByIndex(sets []anki.Fields, indexField string) []anki.Fields {
	out := make([]anki.Fields, 0, len(sets))
	for _, fields := range sets {
		if _, ok := fields[indexField]; !ok {
			continue
		}
		out = append(out, fields)
	}
	return out
}

// CheckUnique verifies that the index field value is unique across all field
// sets, in input order, and returns a DuplicateIndexError naming the first
// offending value otherwise. Field sets without the index field are ignored.
func CheckUnique(sets []anki.Fields, indexField string) error {
	seen := make(map[string]struct{}, len(sets))
	for _, fields := range sets {
		value, ok := fields[indexField]
		if !ok {
			continue
		}
		if _, dup := seen[value]; dup {
			return &DuplicateIndexError{Field: indexField, Value: value}
		}
		seen[value] = struct{}{}
	}
	return nil
}
