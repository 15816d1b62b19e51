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

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
	"github.com/go-go-golems/anki-csv-uploader/pkg/ankilayer"
	"github.com/go-go-golems/anki-csv-uploader/pkg/uploader"
)

type CheckCommand struct{ *gcmds.CommandDescription }

type CheckSettings struct {
	Config string `glazed.parameter:"config"`
}

func NewCheckCommand() (*CheckCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"check",
		gcmds.WithShort("Verify the service is up and the configured deck and note type exist"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithShortFlag("c"), parameters.WithHelp("Upload YAML config")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	_, err = ankilayer.AddAnkiLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &CheckCommand{cd}, nil
}

func (c *CheckCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &CheckSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}

	cfg, err := uploader.LoadConfig(s.Config)
	if err != nil {
		return err
	}

	// Connecting performs the version-checked liveness probe.
	client, err := ankilayer.Connect(ctx, parsed)
	if err != nil {
		return err
	}
	row := types.NewRow(
		types.MRP("check", "service"),
		types.MRP("status", "ok"),
		types.MRP("detail", fmt.Sprintf("protocol version %d at %s", anki.ProtocolVersion, client.Addr())),
	)
	if err := gp.AddRow(ctx, row); err != nil {
		return err
	}

	decks, err := client.DeckNames(ctx)
	if err != nil {
		return err
	}
	if err := addMembershipRow(ctx, gp, "deck", cfg.DeckName, decks); err != nil {
		return err
	}
	if !containsName(decks, cfg.DeckName) {
		return &anki.DeckNotFoundError{Deck: cfg.DeckName}
	}

	models, err := client.ModelNames(ctx)
	if err != nil {
		return err
	}
	if err := addMembershipRow(ctx, gp, "note_type", cfg.NoteType, models); err != nil {
		return err
	}
	if !containsName(models, cfg.NoteType) {
		return &anki.NoteTypeNotFoundError{NoteType: cfg.NoteType}
	}

	return nil
}

var _ gcmds.GlazeCommand = &CheckCommand{}

func addMembershipRow(ctx context.Context, gp middlewares.Processor, check, want string, names []string) error {
	status := "missing"
	if containsName(names, want) {
		status = "ok"
	}
	row := types.NewRow(
		types.MRP("check", check),
		types.MRP("status", status),
		types.MRP("detail", want),
	)
	return gp.AddRow(ctx, row)
}

func containsName(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
