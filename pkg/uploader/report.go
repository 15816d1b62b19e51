package uploader

import (
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
)

// Report accumulates upload outcomes across batches. It is a plain value
// threaded through the run rather than ambient state, so the uploader stays
// free of hidden counters and easy to test against a mock transport.
type Report struct {
	// Submitted is the total number of notes handed to the uploader.
	Submitted int
	// Prevalidated counts notes the service confirmed addable during
	// pre-flight.
	Prevalidated int
	// PreflightRejects holds the payloads the service predicted it would
	// refuse. Only populated under the lenient policy; the strict policy
	// aborts instead.
	PreflightRejects []anki.Note
	// Added and Failed count commit outcomes across all batches.
	Added  int
	Failed int
	// FailedNotes holds the exact payload of every note the commit phase
	// did not add, for operator remediation.
	FailedNotes []anki.Note
}

// observePreflight folds one canAddNotes result into the report and returns
// the rejected payloads in batch order.
func (r *Report) observePreflight(batch []anki.Note, results []bool) []anki.Note {
	var rejected []anki.Note
	for i, ok := range results {
		if ok {
			r.Prevalidated++
		} else {
			rejected = append(rejected, batch[i])
		}
	}
	return rejected
}

// observeCommit folds one addNotes result into the report. When the result
// is not parallel to the batch the whole batch is presumed unadded.
func (r *Report) observeCommit(batch []anki.Note, ids []*int64) {
	if len(ids) != len(batch) {
		r.Failed += len(batch)
		r.FailedNotes = append(r.FailedNotes, batch...)
		return
	}
	for i, id := range ids {
		if id != nil {
			r.Added++
		} else {
			r.Failed++
			r.FailedNotes = append(r.FailedNotes, batch[i])
		}
	}
}

// logTotals emits the running totals after one commit batch.
func (r *Report) logTotals(batch int) {
	log.Info().
		Int("batch", batch).
		Int("added", r.Added).
		Int("failed", r.Failed).
		Msg("running totals")
}

// LogSummary emits the final run summary.
func (r *Report) LogSummary() {
	evt := log.Info().
		Int("submitted", r.Submitted).
		Int("prevalidated", r.Prevalidated).
		Int("added", r.Added).
		Int("failed", r.Failed)
	if len(r.PreflightRejects) > 0 {
		evt = evt.Int("preflight_rejected", len(r.PreflightRejects))
	}
	evt.Msg("upload finished")
}
