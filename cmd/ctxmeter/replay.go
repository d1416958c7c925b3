package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ctxmeter/ctxmeter/config"
	"github.com/ctxmeter/ctxmeter/replay"
	"github.com/ctxmeter/ctxmeter/usage"
)

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Run an evidence capture through the engine",
		ArgsUsage: "<capture.ndjson>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "follow",
				Aliases: []string{"f"},
				Usage:   "Keep tailing the capture after replaying it",
			},
			&cli.BoolFlag{
				Name:  "emit",
				Usage: "Print a snapshot line after every applied merge",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one capture file")
			}
			path := cmd.Args().First()

			cfg, err := config.Load(cmd.String(configFlag))
			if err != nil {
				return err
			}

			opts := cfg.TrackerOptions()
			enc := json.NewEncoder(os.Stdout)
			if cmd.Bool("emit") {
				opts.Emit = func(s usage.Snapshot) {
					enc.Encode(s)
				}
			}

			store := usage.NewStore(opts)
			runner := replay.NewRunner(store, opts.Rules)

			if cmd.Bool("follow") {
				return runner.Follow(ctx, path)
			}

			applied, err := runner.Run(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "applied %d of the capture's records across %d conversations\n",
				applied, store.Len())

			for _, snap := range store.Snapshots() {
				if err := enc.Encode(snap); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
