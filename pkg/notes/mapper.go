package notes

import (
	"strings"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
)

// RawRecord is one parsed input row, keyed by column name. A column that is
// missing from the record is absent from the map; an empty string is a
// present-but-blank cell. Both are elided during mapping.
type RawRecord map[string]string

// MapRecord converts one record into note fields using the configured
// column-to-field table. An entry is produced for a (column, field) pair
// only when the source value is present and its trimmed form is non-empty.
func MapRecord(rec RawRecord, table Mappings) anki.Fields {
	fields := make(anki.Fields, len(table))
	for _, cm := range table {
		raw, ok := rec[cm.Column]
		if !ok {
			continue
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		fields[cm.Field] = value
	}
	return fields
}

// MapRecords maps every record in input order.
func MapRecords(recs []RawRecord, table Mappings) []anki.Fields {
	out := make([]anki.Fields, 0, len(recs))
	for _, rec := range recs {
		out = append(out, MapRecord(rec, table))
	}
	return out
}
