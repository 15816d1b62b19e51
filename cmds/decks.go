package cmds

import (
	"context"
	"strings"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/anki-csv-uploader/pkg/ankilayer"
)

type DecksCommand struct{ *gcmds.CommandDescription }

type DecksSettings struct {
	Prefix string `glazed.parameter:"prefix"`
	Models bool   `glazed.parameter:"models"`
}

func NewDecksCommand() (*DecksCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"decks",
		gcmds.WithShort("List decks and note types known to the service"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("prefix", parameters.ParameterTypeString, parameters.WithHelp("Only show entries starting with this prefix")),
			parameters.NewParameterDefinition("models", parameters.ParameterTypeBool, parameters.WithDefault(true), parameters.WithHelp("Also list note types")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	_, err = ankilayer.AddAnkiLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &DecksCommand{cd}, nil
}

func (c *DecksCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &DecksSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}

	client, err := ankilayer.Connect(ctx, parsed)
	if err != nil {
		return err
	}

	decks, err := client.DeckNames(ctx)
	if err != nil {
		return err
	}
	for _, deck := range decks {
		if s.Prefix != "" && !strings.HasPrefix(deck, s.Prefix) {
			continue
		}
		row := types.NewRow(
			types.MRP("type", "deck"),
			types.MRP("name", deck),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}

	if !s.Models {
		return nil
	}
	models, err := client.ModelNames(ctx)
	if err != nil {
		return err
	}
	for _, model := range models {
		if s.Prefix != "" && !strings.HasPrefix(model, s.Prefix) {
			continue
		}
		row := types.NewRow(
			types.MRP("type", "note_type"),
			types.MRP("name", model),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &DecksCommand{}
