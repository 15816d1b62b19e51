package anki

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// ProtocolVersion is the AnkiConnect protocol version this client speaks.
// Every request carries it, and the liveness check requires the service to
// answer with exactly this value.
const ProtocolVersion = 6

// DefaultAddr is the default AnkiConnect endpoint.
const DefaultAddr = "http://localhost:8765"

// Client is a thin wrapper over the AnkiConnect HTTP endpoint. All calls are
// strictly sequential; the client holds no state beyond the transport.
type Client struct {
	addr string
	http *http.Client
}

// NewClient creates a client for the given address and verifies the service
// is reachable and speaks the expected protocol version. Any other version
// or a non-null error on the version action is fatal.
func NewClient(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	c := &Client{
		addr: addr,
		http: &http.Client{Timeout: timeout},
	}

	version, err := c.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to anki service at %s: %w", addr, err)
	}
	if version != ProtocolVersion {
		return nil, &VersionMismatchError{Got: version}
	}
	return c, nil
}

// Addr returns the endpoint this client talks to.
func (c *Client) Addr() string {
	return c.addr
}

// invoke posts one request envelope and decodes the response envelope.
// Transport-level failures (unreachable host, non-2xx status, malformed
// body) are returned as errors; a non-null service error string is returned
// separately so callers can decide whether it is fatal for their action.
func (c *Client) invoke(ctx context.Context, action string, params any, result any) (string, error) {
	body, err := json.Marshal(request{Version: ProtocolVersion, Action: action, Params: params})
	if err != nil {
		return "", fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach anki service at %s: %w", c.addr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("anki service answered %s with HTTP status %s", action, resp.Status)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", action, err)
	}

	serviceErr := ""
	if envelope.Error != nil {
		serviceErr = *envelope.Error
	}
	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return serviceErr, fmt.Errorf("failed to decode %s result: %w", action, err)
		}
	}
	return serviceErr, nil
}

// call invokes an action for which a non-null service error is fatal.
func (c *Client) call(ctx context.Context, action string, params any, result any) error {
	serviceErr, err := c.invoke(ctx, action, params, result)
	if err != nil {
		return err
	}
	if serviceErr != "" {
		return &ServiceError{Action: action, Message: serviceErr}
	}
	return nil
}

// Version returns the protocol version reported by the service.
func (c *Client) Version(ctx context.Context) (int, error) {
	var version int
	if err := c.call(ctx, "version", nil, &version); err != nil {
		return 0, err
	}
	return version, nil
}

// DeckNames returns the names of all decks known to the service.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var decks []string
	if err := c.call(ctx, "deckNames", nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// ModelNames returns the names of all note types known to the service.
func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	var models []string
	if err := c.call(ctx, "modelNames", nil, &models); err != nil {
		return nil, err
	}
	return models, nil
}

// CanAddNotes asks the service, without creating anything, whether each note
// in the batch would be accepted. The result is parallel to the batch.
func (c *Client) CanAddNotes(ctx context.Context, notes []Note) ([]bool, error) {
	var results []bool
	if err := c.call(ctx, "canAddNotes", notesParams{Notes: notes}, &results); err != nil {
		return nil, err
	}
	if len(results) != len(notes) {
		return nil, fmt.Errorf("canAddNotes returned %d results for %d notes", len(results), len(notes))
	}
	return results, nil
}

// AddNotes commits one batch of notes. A non-null service error is not fatal
// here: it is surfaced in AddResult.Err so the caller can log it and carry
// on with the remaining batches.
func (c *Client) AddNotes(ctx context.Context, notes []Note) (*AddResult, error) {
	var ids []*int64
	serviceErr, err := c.invoke(ctx, "addNotes", notesParams{Notes: notes}, &ids)
	if err != nil {
		return nil, err
	}
	return &AddResult{NoteIDs: ids, Err: serviceErr}, nil
}
