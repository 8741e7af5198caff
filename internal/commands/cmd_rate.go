package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/core/validate"
)

type RateCmd struct {
	flags *Flags
	app   *canteen.App

	// flags
	rating int
}

// NewRateCmd creates a new rate command
func NewRateCmd(flags *Flags, app *canteen.App) *RateCmd {
	return &RateCmd{flags: flags, app: app}
}

// Register adds the rate command to the application
func (cmd *RateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rate",
		Usage:     "Rate a food item",
		UsageText: "canteen rate <food-id> --stars <1-5>",
		Description: `Submits a star rating for a food item. Rating requires a qualifying
prior order for the item; the gateway rejects ineligible ratings.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "stars",
				Aliases:     []string{"s"},
				Usage:       "star rating, 1 to 5",
				Required:    true,
				Destination: &cmd.rating,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RateCmd) run(ctx context.Context, c *cli.Command) error {
	foodID := c.Args().First()
	if foodID == "" {
		return fmt.Errorf("food id is required")
	}
	if err := validate.Rating(cmd.rating); err != nil {
		return err
	}
	if _, err := cmd.app.RequireLogin(); err != nil {
		return err
	}

	summary, err := cmd.app.Client.SetRating(ctx, foodID, cmd.rating)
	if err != nil {
		if client.IsStatus(err, http.StatusForbidden) || client.IsStatus(err, http.StatusUnauthorized) {
			return fmt.Errorf("cannot rate: only users with a prior order for this item may review it")
		}
		return fmt.Errorf("set rating: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Rated %d/5, now %s\n", cmd.rating, formatStars(summary))
	return nil
}
