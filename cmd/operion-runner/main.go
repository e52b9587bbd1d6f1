package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "operion-runner",
		Usage:                 "Plan and dispatch manual workflow runs",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ServeCommand(),
			PlanCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
