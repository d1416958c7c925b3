package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/urfave/cli/v3"

	"github.com/ctxmeter/ctxmeter/usage"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Emit the JSON Schema of the renderer-facing snapshot",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reflector := jsonschema.Reflector{DoNotReference: true}
			schema := reflector.Reflect(&usage.Snapshot{})

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
