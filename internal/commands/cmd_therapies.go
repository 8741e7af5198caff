package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/pkg/iojson"
)

type TherapiesCmd struct {
	flags *Flags
	app   *canteen.App

	// flags
	jsonOutput bool
}

// NewTherapiesCmd creates a new therapies command
func NewTherapiesCmd(flags *Flags, app *canteen.App) *TherapiesCmd {
	return &TherapiesCmd{flags: flags, app: app}
}

// Register adds the therapies command to the application
func (cmd *TherapiesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "therapies",
		Usage:     "Review dietary therapy requests",
		UsageText: "canteen therapies <command>",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List therapy requests",
				UsageText: "canteen therapies ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runLs,
			},
			{
				Name:      "approve",
				Usage:     "Approve a therapy request",
				UsageText: "canteen therapies approve <id>",
				Action:    cmd.runApprove,
			},
		},
	})

	return app
}

func (cmd *TherapiesCmd) runLs(ctx context.Context, c *cli.Command) error {
	therapies, err := cmd.app.Client.Therapies(ctx)
	if err != nil {
		return fmt.Errorf("list therapies: %w", err)
	}

	out := c.Root().Writer

	if len(therapies) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No therapies found\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, t := range therapies {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode therapy: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tDIAGNOSIS")
	for _, t := range therapies {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Status, t.Diagnosis)
	}
	return w.Flush()
}

func (cmd *TherapiesCmd) runApprove(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("therapy id is required")
	}

	if _, err := cmd.app.RequireLogin(); err != nil {
		return err
	}

	if err := cmd.app.Client.ApproveTherapy(ctx, id); err != nil {
		return fmt.Errorf("approve therapy: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Therapy %s approved\n", id)
	return nil
}
