package csvsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/anki-csv-uploader/pkg/notes"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ReadFile reads records from a local CSV file. A missing file is a fatal
// setup error surfaced before any network call.
func ReadFile(path string) ([]notes.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file %s: %w", path, err)
	}
	recs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv file %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("records", len(recs)).Msg("csv file loaded")
	return recs, nil
}

// Fetch downloads and parses a remote CSV file. A non-2xx status is fatal.
func Fetch(ctx context.Context, url string) ([]notes.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build csv request for %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch csv from %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching csv from %s returned HTTP status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv body from %s: %w", url, err)
	}
	recs, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv from %s: %w", url, err)
	}
	log.Debug().Str("url", url).Int("records", len(recs)).Msg("csv fetched")
	return recs, nil
}

// parse converts raw CSV content into records in file order. The first row
// is the header. Cells beyond the header width are ignored; rows shorter
// than the header leave the trailing columns missing, which is distinct
// from a present-but-empty cell.
func parse(content []byte) ([]notes.RawRecord, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var recs []notes.RawRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(recs)+2, err)
		}
		rec := make(notes.RawRecord, len(header))
		for i, value := range row {
			if i >= len(header) {
				break
			}
			rec[header[i]] = value
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
