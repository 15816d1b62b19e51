package anki

import "fmt"

// ServiceError is a non-null error string returned in the response envelope
// for an action where the contract requires error to be null.
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("anki service returned an error for action %q: %s", e.Action, e.Message)
}

// VersionMismatchError means the service answered the liveness check with a
// protocol version other than the one this client speaks.
type VersionMismatchError struct {
	Got int
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("anki service speaks protocol version %d, expected %d", e.Got, ProtocolVersion)
}

// DeckNotFoundError means the configured deck does not exist on the service.
type DeckNotFoundError struct {
	Deck string
}

func (e *DeckNotFoundError) Error() string {
	return fmt.Sprintf("deck %q does not exist on the anki service", e.Deck)
}

// NoteTypeNotFoundError means the configured note type (model) does not
// exist on the service.
type NoteTypeNotFoundError struct {
	NoteType string
}

func (e *NoteTypeNotFoundError) Error() string {
	return fmt.Sprintf("note type %q does not exist on the anki service", e.NoteType)
}
