package uploader

import (
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
	"github.com/go-go-golems/anki-csv-uploader/pkg/notes"
)

// BuildNotes converts raw records into uploadable notes: map columns onto
// fields, drop records without the index field when one is configured, and
// abort on a duplicate index value unless duplicates are allowed. This all
// happens before any network call.
func BuildNotes(cfg *Config, recs []notes.RawRecord) ([]anki.Note, error) {
	fieldSets := notes.MapRecords(recs, cfg.Mappings())

	if cfg.IndexField != "" {
		before := len(fieldSets)
		fieldSets = notes.FilterByIndex(fieldSets, cfg.IndexField)
		if dropped := before - len(fieldSets); dropped > 0 {
			log.Info().Int("dropped", dropped).Str("index_field", cfg.IndexField).Msg("records without index field excluded")
		}
		if !cfg.AllowDuplicates {
			if err := notes.CheckUnique(fieldSets, cfg.IndexField); err != nil {
				return nil, err
			}
		}
	}

	built := make([]anki.Note, 0, len(fieldSets))
	for _, fields := range fieldSets {
		built = append(built, anki.NewNote(cfg.DeckName, cfg.NoteType, fields, cfg.AllowDuplicates, cfg.Tags))
	}
	log.Info().Int("records", len(recs)).Int("notes", len(built)).Msg("notes built")
	return built, nil
}
