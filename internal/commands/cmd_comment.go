package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/review"
	"github.com/colonyops/canteen/pkg/iojson"
)

type CommentCmd struct {
	flags *Flags
	app   *canteen.App

	// flags
	jsonOutput bool
}

// NewCommentCmd creates a new comment command
func NewCommentCmd(flags *Flags, app *canteen.App) *CommentCmd {
	return &CommentCmd{flags: flags, app: app}
}

// Register adds the comment command to the application
func (cmd *CommentCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "comment",
		Usage:     "Read and write food item comments",
		UsageText: "canteen comment <command>",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List comments for a food item",
				UsageText: "canteen comment ls <food-id> [--json]",
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
				Name:      "add",
				Usage:     "Add a comment to a food item",
				UsageText: "canteen comment add <food-id> <text>",
				Action:    cmd.runAdd,
			},
		},
	})

	return app
}

func (cmd *CommentCmd) runLs(ctx context.Context, c *cli.Command) error {
	foodID := c.Args().First()
	if foodID == "" {
		return fmt.Errorf("food id is required")
	}

	comments, err := cmd.app.Client.ListComments(ctx, foodID)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	out := c.Root().Writer

	if len(comments) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No comments yet\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, cm := range comments {
			if err := iojson.WriteLine(out, cm); err != nil {
				return fmt.Errorf("encode comment: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "AUTHOR\tDATE\tCOMMENT")
	for _, cm := range comments {
		date := ""
		if !cm.CreatedAt.IsZero() {
			date = cm.CreatedAt.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", cm.Author, date, cm.Text)
	}
	return w.Flush()
}

func (cmd *CommentCmd) runAdd(ctx context.Context, c *cli.Command) error {
	foodID := c.Args().Get(0)
	if foodID == "" {
		return fmt.Errorf("food id is required")
	}
	text := strings.Join(c.Args().Slice()[1:], " ")
	if _, err := cmd.app.RequireLogin(); err != nil {
		return err
	}

	upd, err := cmd.app.Reviews.SubmitComment(ctx, foodID, text)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrEmptyComment):
			return fmt.Errorf("comment text is required")
		case client.IsStatus(err, http.StatusForbidden), client.IsStatus(err, http.StatusUnauthorized):
			return fmt.Errorf("cannot comment: only users with a prior order for this item may review it")
		default:
			return fmt.Errorf("add comment: %w", err)
		}
	}

	out := c.Root().Writer
	fmt.Fprintln(out, "Comment added")
	if upd.SummaryOK {
		fmt.Fprintf(out, "Item now has %d comment(s)\n", upd.Summary.CommentCount)
	}
	return nil
}
