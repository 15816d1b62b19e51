package ankilayer

import (
	"context"
	"fmt"
	"time"

	glzcms "github.com/go-go-golems/glazed/pkg/cmds"
	glzlayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/anki-csv-uploader/pkg/anki"
)

const AnkiLayerSlug = "anki"

type AnkiSettings struct {
	AnkiAddr    string `glazed.parameter:"anki-addr"`
	AnkiTimeout string `glazed.parameter:"anki-timeout"`
}

// NewAnkiLayer defines a reusable parameter layer for AnkiConnect
// connection settings.
func NewAnkiLayer() (glzlayers.ParameterLayer, error) {
	return glzlayers.NewParameterLayer(
		AnkiLayerSlug,
		"AnkiConnect connection settings",
		glzlayers.WithParameterDefinitions(
			parameters.NewParameterDefinition(
				"anki-addr",
				parameters.ParameterTypeString,
				parameters.WithHelp("AnkiConnect endpoint"),
				parameters.WithDefault(anki.DefaultAddr),
			),
			parameters.NewParameterDefinition(
				"anki-timeout",
				parameters.ParameterTypeString,
				parameters.WithHelp("HTTP timeout for service calls (Go duration)"),
				parameters.WithDefault("30s"),
			),
		),
	)
}

// AddAnkiLayerToCommand attaches the layer to a Glazed command description.
func AddAnkiLayerToCommand(c glzcms.Command) (glzcms.Command, error) {
	l, err := NewAnkiLayer()
	if err != nil {
		return nil, err
	}
	c.Description().Layers.Set(AnkiLayerSlug, l)
	return c, nil
}

// GetAnkiSettings returns parsed connection settings from the ParsedLayers.
func GetAnkiSettings(parsed *glzlayers.ParsedLayers) (*AnkiSettings, error) {
	var s AnkiSettings
	if err := parsed.InitializeStruct(AnkiLayerSlug, &s); err != nil {
		return nil, fmt.Errorf("failed to parse anki settings: %w", err)
	}
	return &s, nil
}

// Connect parses the settings and builds a version-checked client.
func Connect(ctx context.Context, parsed *glzlayers.ParsedLayers) (*anki.Client, error) {
	s, err := GetAnkiSettings(parsed)
	if err != nil {
		return nil, err
	}
	timeout, err := time.ParseDuration(s.AnkiTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid anki-timeout %q: %w", s.AnkiTimeout, err)
	}
	client, err := anki.NewClient(ctx, s.AnkiAddr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create anki client: %w", err)
	}
	return client, nil
}
