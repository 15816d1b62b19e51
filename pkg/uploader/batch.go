package uploader

import "github.com/go-go-golems/anki-csv-uploader/pkg/anki"

// DefaultBatchSize is how many notes go into one service call unless the
// config or command line says otherwise.
const DefaultBatchSize = 100

// Batches partitions notes into order-preserving runs of at most size
// elements. The concatenation of all batches reproduces the input exactly;
// nothing is reordered or dropped, and only the final batch may be short.
// A size below 1 falls back to the default.
func Batches(notes []anki.Note, size int) [][]anki.Note {
	if size < 1 {
		size = DefaultBatchSize
	}
	if len(notes) == 0 {
		return nil
	}
	batches := make([][]anki.Note, 0, (len(notes)+size-1)/size)
	for start := 0; start < len(notes); start += size {
		end := start + size
		if end > len(notes) {
			end = len(notes)
		}
		batches = append(batches, notes[start:end])
	}
	return batches
}
