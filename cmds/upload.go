package cmds

import (
	"context"
	"fmt"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/anki-csv-uploader/pkg/ankilayer"
	"github.com/go-go-golems/anki-csv-uploader/pkg/csvsource"
	"github.com/go-go-golems/anki-csv-uploader/pkg/notes"
	"github.com/go-go-golems/anki-csv-uploader/pkg/output"
	"github.com/go-go-golems/anki-csv-uploader/pkg/uploader"
)

type UploadCommand struct{ *gcmds.CommandDescription }

type UploadSettings struct {
	Config       string `glazed.parameter:"config"`
	CSV          string `glazed.parameter:"csv"`
	URL          string `glazed.parameter:"url"`
	Policy       string `glazed.parameter:"policy"`
	BatchSize    int    `glazed.parameter:"batch-size"`
	DryRun       bool   `glazed.parameter:"dry-run"`
	FailedOutput string `glazed.parameter:"failed-output"`
	FailedFormat string `glazed.parameter:"failed-format"`
	NoColor      bool   `glazed.parameter:"no-color"`
}

func NewUploadCommand() (*UploadCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}

	cd := gcmds.NewCommandDescription(
		"upload",
		gcmds.WithShort("Map a CSV file onto notes and upload them in batches"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithHelp("Upload YAML config"), parameters.WithShortFlag("c")),
			parameters.NewParameterDefinition("csv", parameters.ParameterTypeString, parameters.WithHelp("CSV file path; overrides csv_path from the config")),
			parameters.NewParameterDefinition("url", parameters.ParameterTypeString, parameters.WithHelp("Remote CSV URL; overrides csv_url from the config")),
			parameters.NewParameterDefinition("policy", parameters.ParameterTypeChoice, parameters.WithChoices("strict", "lenient"), parameters.WithDefault("strict"), parameters.WithHelp("Pre-flight policy: strict aborts on any rejection, lenient logs and commits anyway")),
			parameters.NewParameterDefinition("batch-size", parameters.ParameterTypeInteger, parameters.WithDefault(0), parameters.WithHelp("Notes per service call; overrides batch_size from the config")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Stop after pre-flight validation; commit nothing")),
			parameters.NewParameterDefinition("failed-output", parameters.ParameterTypeString, parameters.WithHelp("Write failing note payloads to this file; '-' for stdout")),
			parameters.NewParameterDefinition("failed-format", parameters.ParameterTypeChoice, parameters.WithChoices("json", "yaml"), parameters.WithDefault("json"), parameters.WithHelp("Format for --failed-output")),
			parameters.NewParameterDefinition("no-color", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Disable colored console output")),
		),
		gcmds.WithLayersList(layer),
	)
	_, err = ankilayer.AddAnkiLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &UploadCommand{cd}, nil
}

func (c *UploadCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &UploadSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	output.InitConsole(s.NoColor)

	policy, err := uploader.ParsePolicy(s.Policy)
	if err != nil {
		return err
	}

	cfg, err := uploader.LoadConfig(s.Config)
	if err != nil {
		return err
	}
	if s.CSV != "" {
		cfg.CSVPath = s.CSV
		cfg.CSVURL = ""
	}
	if s.URL != "" {
		cfg.CSVURL = s.URL
	}
	if s.BatchSize > 0 {
		cfg.BatchSize = s.BatchSize
	}

	records, err := loadRecords(ctx, cfg)
	if err != nil {
		return err
	}

	toUpload, err := uploader.BuildNotes(cfg, records)
	if err != nil {
		return err
	}

	client, err := ankilayer.Connect(ctx, parsed)
	if err != nil {
		return err
	}

	up := uploader.Uploader{Client: client}
	report, err := up.Run(ctx, cfg, toUpload, uploader.Options{
		BatchSize: cfg.BatchSize,
		Policy:    policy,
		DryRun:    s.DryRun,
	})
	if err != nil {
		return err
	}

	report.LogSummary()
	fmt.Println(output.Summary(report.Submitted, report.Added, report.Failed))
	if len(report.FailedNotes) > 0 {
		fieldSets := make([]map[string]string, 0, len(report.FailedNotes))
		for _, n := range report.FailedNotes {
			fieldSets = append(fieldSets, n.Fields)
		}
		fmt.Print(output.FieldList(fieldSets))
	}

	if s.FailedOutput != "" && len(report.FailedNotes) > 0 {
		if err := output.WriteNotes(s.FailedOutput, report.FailedNotes, output.WriteOptions{Format: s.FailedFormat}); err != nil {
			return err
		}
	}

	// Partial per-note failures are reported, not raised: the run still
	// exits zero once the commit phase completed.
	return nil
}

var _ gcmds.BareCommand = &UploadCommand{}

// loadRecords resolves the record source. The local-file variant requires
// csv_path; the remote variant uses csv_url. A config naming neither is a
// setup error.
func loadRecords(ctx context.Context, cfg *uploader.Config) ([]notes.RawRecord, error) {
	switch {
	case cfg.CSVPath != "":
		return csvsource.ReadFile(cfg.CSVPath)
	case cfg.CSVURL != "":
		return csvsource.Fetch(ctx, cfg.CSVURL)
	}
	return nil, fmt.Errorf("no record source configured: set csv_path or csv_url (or pass --csv/--url)")
}
