package cmds

import (
	"context"
	"fmt"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/anki-csv-uploader/pkg/cmdutil"
	"github.com/go-go-golems/anki-csv-uploader/pkg/notes"
	"github.com/go-go-golems/anki-csv-uploader/pkg/uploader"
)

type PreviewCommand struct{ *gcmds.CommandDescription }

type PreviewSettings struct {
	Config string   `glazed.parameter:"config"`
	CSV    string   `glazed.parameter:"csv"`
	URL    string   `glazed.parameter:"url"`
	Limit  int      `glazed.parameter:"limit"`
	Fields []string `glazed.parameter:"fields"`
}

func NewPreviewCommand() (*PreviewCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"preview",
		gcmds.WithShort("Map the CSV onto note fields and show the result without touching the service"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithShortFlag("c"), parameters.WithHelp("Upload YAML config")),
			parameters.NewParameterDefinition("csv", parameters.ParameterTypeString, parameters.WithHelp("CSV file path; overrides csv_path from the config")),
			parameters.NewParameterDefinition("url", parameters.ParameterTypeString, parameters.WithHelp("Remote CSV URL; overrides csv_url from the config")),
			parameters.NewParameterDefinition("limit", parameters.ParameterTypeInteger, parameters.WithDefault(10), parameters.WithHelp("Show at most this many notes; 0 = all")),
			parameters.NewParameterDefinition("fields", parameters.ParameterTypeStringList, parameters.WithHelp("Only show these columns or fields; default all")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &PreviewCommand{cd}, nil
}

func (c *PreviewCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &PreviewSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
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

	records, err := loadRecords(ctx, cfg)
	if err != nil {
		return err
	}

	table := cmdutil.FilterMappings(cfg.Mappings(), s.Fields)
	if len(table) == 0 {
		return fmt.Errorf("no mapping entries match the --fields selectors")
	}

	fieldSets := notes.MapRecords(records, table)
	if cfg.IndexField != "" {
		fieldSets = notes.FilterByIndex(fieldSets, cfg.IndexField)
	}

	for i, fields := range fieldSets {
		if s.Limit > 0 && i >= s.Limit {
			break
		}
		pairs := []types.MapRowPair{types.MRP("note", i+1)}
		for _, field := range table.Fields() {
			if value, ok := fields[field]; ok {
				pairs = append(pairs, types.MRP(field, value))
			}
		}
		if err := gp.AddRow(ctx, types.NewRow(pairs...)); err != nil {
			return err
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &PreviewCommand{}
