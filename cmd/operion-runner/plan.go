package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dukex/operion-runner/pkg/graph"
	"github.com/dukex/operion-runner/pkg/log"
	"github.com/dukex/operion-runner/pkg/models"
	"github.com/dukex/operion-runner/pkg/runplan"
	"github.com/dukex/operion-runner/pkg/web"
	cli "github.com/urfave/cli/v3"
)

func PlanCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Print the start plan of a run that ends at a node",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "workflow",
				Aliases:  []string{"w"},
				Usage:    "Path to a workflow document (JSON)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "destination",
				Aliases:  []string{"d"},
				Usage:    "Node the run ends at",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			document, err := readDocument(command.String("workflow"))
			if err != nil {
				return err
			}

			plan, err := planDocument(document, command.String("destination"))
			if err != nil {
				return err
			}

			log.WithModule("plan").DebugContext(ctx, "Planned run",
				"destination", command.String("destination"),
				"start_nodes", plan.StartNodes,
			)

			encoder := json.NewEncoder(command.Root().Writer)
			encoder.SetIndent("", "  ")

			return encoder.Encode(plan)
		},
	}
}

func readDocument(path string) (*models.WorkflowDocument, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow document: %w", err)
	}

	var document models.WorkflowDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("failed to parse workflow document %s: %w", path, err)
	}

	if document.Workflow == nil {
		return nil, fmt.Errorf("workflow document %s has no workflow", path)
	}

	return &document, nil
}

func planDocument(document *models.WorkflowDocument, destination string) (*web.PlanRunResponse, error) {
	g, err := graph.New(document.Workflow)
	if err != nil {
		return nil, err
	}

	plan, err := runplan.PlanDestination(g, destination, document.RunData, document.PinData)
	if err != nil {
		return nil, err
	}

	return &web.PlanRunResponse{
		StartNodes:      plan.StartNodeNames,
		RunData:         plan.RunData,
		RequiresWebhook: runplan.WaitsForWebhook(document.Workflow, plan.StartNodeNames, document.PinData),
	}, nil
}
