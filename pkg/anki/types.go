package anki

import "github.com/goccy/go-json"

// Fields maps note field names to their rendered, trimmed values. A field
// whose source value was null or blank is absent from the map entirely
// rather than present with an empty string.
type Fields map[string]string

// NoteOptions carries per-note upload options understood by AnkiConnect.
type NoteOptions struct {
	AllowDuplicate bool `json:"allowDuplicate"`
}

// Note is the atomic uploadable unit: a set of named field values bound to
// a deck and a note type. Notes are built once and not mutated afterwards.
type Note struct {
	DeckName  string      `json:"deckName"`
	ModelName string      `json:"modelName"`
	Fields    Fields      `json:"fields"`
	Options   NoteOptions `json:"options"`
	Tags      []string    `json:"tags"`
}

// NewNote builds a Note for the given deck and note type. Tags always
// marshal as a JSON array, never as null.
func NewNote(deck, noteType string, fields Fields, allowDuplicate bool, tags []string) Note {
	if tags == nil {
		tags = []string{}
	}
	return Note{
		DeckName:  deck,
		ModelName: noteType,
		Fields:    fields,
		Options:   NoteOptions{AllowDuplicate: allowDuplicate},
		Tags:      tags,
	}
}

// request is the AnkiConnect request envelope.
type request struct {
	Version int    `json:"version"`
	Action  string `json:"action"`
	Params  any    `json:"params,omitempty"`
}

// response is the AnkiConnect response envelope. Result decoding is
// deferred to the caller since its shape is action-specific.
type response struct {
	Error  *string         `json:"error"`
	Result json.RawMessage `json:"result"`
}

// notesParams wraps a batch of notes for canAddNotes/addNotes.
type notesParams struct {
	Notes []Note `json:"notes"`
}

// AddResult is the outcome of one addNotes call. NoteIDs is parallel to the
// submitted batch; a nil entry marks a note the service did not add. Err is
// the batch-level error string reported by the service, if any; when it is
// set and no per-note results came back, every note in the batch is presumed
// unadded.
type AddResult struct {
	NoteIDs []*int64
	Err     string
}
