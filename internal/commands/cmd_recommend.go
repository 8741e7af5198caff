package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/internal/review"
	"github.com/colonyops/canteen/pkg/iojson"
)

type RecommendCmd struct {
	flags *Flags
	app   *canteen.App

	// flags
	jsonOutput bool
}

// NewRecommendCmd creates a new recommend command
func NewRecommendCmd(flags *Flags, app *canteen.App) *RecommendCmd {
	return &RecommendCmd{flags: flags, app: app}
}

// Register adds the recommend command to the application
func (cmd *RecommendCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "recommend",
		Usage:     "Show dishes recommended for the logged-in user",
		UsageText: "canteen recommend [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RecommendCmd) run(ctx context.Context, c *cli.Command) error {
	sess, err := cmd.app.RequireLogin()
	if err != nil {
		return err
	}

	foods, err := cmd.app.Client.Recommendations(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("load recommendations: %w", err)
	}

	if len(foods) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No recommendations yet\n")
		}
		return nil
	}

	ids := make([]string, 0, len(foods))
	for _, f := range foods {
		if f.ID != "" {
			ids = append(ids, f.ID)
		}
	}

	ctrl := review.NewController()
	ctrl.ApplySummaries(cmd.app.Reviews.LoadSummaries(ctx, ids))

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, f := range foods {
			if err := iojson.WriteLine(out, f); err != nil {
				return fmt.Errorf("encode food: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tTYPE\tRATING")
	for _, f := range foods {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.ID, f.FoodName, f.Type1, formatStars(ctrl.Merged(f.ID)))
	}
	return w.Flush()
}
