package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ctxmeter/ctxmeter/config"
	"github.com/ctxmeter/ctxmeter/platform"
)

func limitsCommand() *cli.Command {
	return &cli.Command{
		Name:  "limits",
		Usage: "Print the effective context-limit tables",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String(configFlag))
			if err != nil {
				return err
			}
			rules := cfg.Rules()

			for _, p := range []platform.Platform{platform.ChatGPT, platform.Claude, platform.Gemini} {
				fmt.Printf("%s (unknown plan -> %d)\n", p, rules.ContextLimit(p, platform.PlanUnknown, ""))
				for _, plan := range platform.Plans(p) {
					fmt.Printf("  %-12s %d\n", plan, rules.ContextLimit(p, plan, ""))
				}
				overhead := rules.Overhead(p)
				fmt.Printf("  overhead     system=%d thinking=%d tools=%d\n",
					overhead.System, overhead.Thinking, overhead.Tools)
			}

			if len(rules.Overrides) > 0 {
				fmt.Println("model overrides")
				for _, o := range rules.Overrides {
					if o.RequiresPlan != platform.PlanUnknown {
						fmt.Printf("  %-8s %-12q (%s plan) -> %d\n", o.Platform, o.Substring, o.RequiresPlan, o.Limit)
						continue
					}
					fmt.Printf("  %-8s %-12q -> %d\n", o.Platform, o.Substring, o.Limit)
				}
			}
			return nil
		},
	}
}
