// Command ctxmeter is the development harness for the estimation engine:
// it replays evidence captures, prints the effective limit tables, and
// emits the snapshot JSON Schema consumed by the rendering side.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	configFlag = "config"
	debugFlag  = "debug"
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:            "ctxmeter",
		Usage:           "Estimate context-window usage from captured evidence",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "Path to a YAML or TOML config file",
			},
			&cli.BoolFlag{
				Name:  debugFlag,
				Usage: "Enable debug output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool(debugFlag) {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, nil
		},
		Commands: []*cli.Command{
			replayCommand(),
			limitsCommand(),
			schemaCommand(),
		},
	}
}

func main() {
	if err := rootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
