package csvsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFile(t *testing.T) {
	path := writeTempCSV(t, "Symbol,Name\nH,Hydrogen\nHe,Helium\n")
	recs, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "H", recs[0]["Symbol"])
	assert.Equal(t, "Helium", recs[1]["Name"])
}

func TestReadFileMissingIsFatal(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read csv file")
}

func TestParseStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\xef\xbb\xbfSymbol,Name\nH,Hydrogen\n")
	recs, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "H", recs[0]["Symbol"])
}

func TestShortRowLeavesTrailingColumnsMissing(t *testing.T) {
	path := writeTempCSV(t, "Symbol,Name,Mass\nH,Hydrogen\nHe,,4.002\n")
	recs, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Short row: Mass is absent, not empty.
	_, ok := recs[0]["Mass"]
	assert.False(t, ok)

	// Full row with empty cell: Name is present but blank.
	name, ok := recs[1]["Name"]
	assert.True(t, ok)
	assert.Equal(t, "", name)
}

func TestExtraCellsBeyondHeaderAreIgnored(t *testing.T) {
	path := writeTempCSV(t, "Symbol\nH,stray,cells\n")
	recs, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, map[string]string{"Symbol": "H"}, map[string]string(recs[0]))
}

func TestEmptyInput(t *testing.T) {
	path := writeTempCSV(t, "\n")
	recs, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Symbol,Name\nLi,Lithium\n"))
	}))
	defer srv.Close()

	recs, err := Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Lithium", recs[0]["Name"])
}

func TestFetchNon2xxIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
}
