package uploader

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
	"github.com/go-go-golems/anki-csv-uploader/pkg/output"
)

// PreflightPolicy decides what a pre-flight rejection means for the run.
type PreflightPolicy string

const (
	// PolicyStrict aborts the whole run before any batch is committed when
	// the service predicts it would refuse a single note.
	PolicyStrict PreflightPolicy = "strict"
	// PolicyLenient logs predicted rejections and continues into the commit
	// phase, letting the service do the authoritative rejection there.
	PolicyLenient PreflightPolicy = "lenient"
)

// ParsePolicy converts a command-line value into a policy.
func ParsePolicy(s string) (PreflightPolicy, error) {
	switch PreflightPolicy(s) {
	case PolicyStrict, PolicyLenient:
		return PreflightPolicy(s), nil
	case "":
		return PolicyStrict, nil
	}
	return "", fmt.Errorf("unknown pre-flight policy %q (want strict or lenient)", s)
}

// PreflightError is a strict-mode pre-flight rejection. It carries the exact
// payloads the service predicted it would refuse.
type PreflightError struct {
	Batch    int
	Rejected []anki.Note
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("pre-flight validation rejected %d note(s) in batch %d", len(e.Rejected), e.Batch)
}

// Options parameterizes one upload run.
type Options struct {
	BatchSize int
	Policy    PreflightPolicy
	// DryRun stops after pre-flight validation; nothing is committed.
	DryRun bool
}

// Uploader drives the batched upload protocol against one client, strictly
// sequentially: deck and note-type existence checks, then pre-flight
// validation of every batch, then best-effort commit of every batch.
// The liveness check already happened when the client was constructed.
type Uploader struct {
	Client *anki.Client
}

// Run executes the protocol for the given notes and returns the accumulated
// report. Setup and transport failures abort immediately; per-note commit
// failures are data in the report, never errors.
func (u *Uploader) Run(ctx context.Context, cfg *Config, toUpload []anki.Note, opts Options) (*Report, error) {
	report := &Report{Submitted: len(toUpload)}

	decks, err := u.Client.DeckNames(ctx)
	if err != nil {
		return report, err
	}
	if !contains(decks, cfg.DeckName) {
		return report, &anki.DeckNotFoundError{Deck: cfg.DeckName}
	}
	log.Info().Str("deck", cfg.DeckName).Msg("deck exists")

	models, err := u.Client.ModelNames(ctx)
	if err != nil {
		return report, err
	}
	if !contains(models, cfg.NoteType) {
		return report, &anki.NoteTypeNotFoundError{NoteType: cfg.NoteType}
	}
	log.Info().Str("note_type", cfg.NoteType).Msg("note type exists")

	batches := Batches(toUpload, opts.BatchSize)
	log.Debug().Int("notes", len(toUpload)).Int("batches", len(batches)).Msg("upload plan")

	// Pre-flight every batch before committing anything.
	for i, batch := range batches {
		results, err := u.Client.CanAddNotes(ctx, batch)
		if err != nil {
			return report, err
		}
		rejected := report.observePreflight(batch, results)
		if len(rejected) == 0 {
			fmt.Println(output.PreflightLine(i+1, len(batches), len(batch)))
			continue
		}
		for _, note := range rejected {
			log.Warn().Interface("fields", note.Fields).Msg("note rejected during pre-flight")
		}
		if opts.Policy == PolicyStrict {
			return report, &PreflightError{Batch: i + 1, Rejected: rejected}
		}
		report.PreflightRejects = append(report.PreflightRejects, rejected...)
		fmt.Println(output.Warnf("%d / %d notes in batch %d/%d failed pre-flight, continuing", len(rejected), len(batch), i+1, len(batches)))
	}

	if opts.DryRun {
		log.Info().Int("prevalidated", report.Prevalidated).Msg("dry run, skipping commit")
		return report, nil
	}

	// Commit phase, best-effort per batch.
	for i, batch := range batches {
		result, err := u.Client.AddNotes(ctx, batch)
		if err != nil {
			return report, err
		}
		if result.Err != "" {
			log.Error().Int("batch", i+1).Str("error", result.Err).Msg("service reported an error adding notes")
		}
		report.observeCommit(batch, result.NoteIDs)
		fmt.Println(output.CommitLine(i+1, len(batches), report.Added, report.Failed))
		report.logTotals(i + 1)
	}
	return report, nil
}

func contains(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
