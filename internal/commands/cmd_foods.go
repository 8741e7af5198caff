package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/core/validate"
	"github.com/colonyops/canteen/internal/review"
	"github.com/colonyops/canteen/pkg/iojson"
)

type FoodsCmd struct {
	flags *Flags
	app   *canteen.App

	// flags
	jsonOutput  bool
	interactive bool
	foodName    string
	type1       string
	type2       string
	imagePath   string

	fileReader iojson.FileReader[client.Food]
}

// NewFoodsCmd creates a new foods command
func NewFoodsCmd(flags *Flags, app *canteen.App) *FoodsCmd {
	return &FoodsCmd{flags: flags, app: app}
}

// Register adds the foods command to the application
func (cmd *FoodsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "foods",
		Usage:     "Browse and manage the food catalog",
		UsageText: "canteen foods <command>",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List catalog items with their rating summaries",
				UsageText: "canteen foods ls [--json]",
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
				Name:      "get",
				Usage:     "Show one catalog item",
				UsageText: "canteen foods get <id>",
				Action:    cmd.runGet,
			},
			{
				Name:      "create",
				Usage:     "Create a catalog item",
				UsageText: "canteen foods create [--interactive | --name ... --type1 ... --type2 ... | --file item.json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "interactive",
						Aliases:     []string{"i"},
						Usage:       "fill in the item via a form",
						Destination: &cmd.interactive,
					},
					&cli.StringFlag{Name: "name", Usage: "dish name", Destination: &cmd.foodName},
					&cli.StringFlag{Name: "type1", Usage: "dish type (PASTA, PICA, SALATA)", Destination: &cmd.type1},
					&cli.StringFlag{Name: "type2", Usage: "dietary type (POSNO, MRSNO)", Destination: &cmd.type2},
					&cli.StringFlag{Name: "image", Usage: "path to an image to upload after create", Destination: &cmd.imagePath},
					cmd.fileReader.Flag(),
				},
				Action: cmd.runCreate,
			},
			{
				Name:      "update",
				Usage:     "Update a catalog item's name",
				UsageText: "canteen foods update <id> --name <name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "new dish name", Destination: &cmd.foodName},
				},
				Action: cmd.runUpdate,
			},
			{
				Name:      "rm",
				Usage:     "Delete a catalog item",
				UsageText: "canteen foods rm <id>",
				Action:    cmd.runDelete,
			},
			{
				Name:      "image",
				Usage:     "Upload an image for a catalog item",
				UsageText: "canteen foods image <id> <path>",
				Action:    cmd.runImage,
			},
		},
	})

	return app
}

func (cmd *FoodsCmd) runLs(ctx context.Context, c *cli.Command) error {
	foods, err := cmd.app.Client.Foods(ctx)
	if err != nil {
		return fmt.Errorf("list foods: %w", err)
	}

	if len(foods) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No foods found\n")
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
			line := struct {
				client.Food
				Summary review.Summary `json:"summary"`
			}{Food: f, Summary: ctrl.Merged(f.ID)}
			if err := iojson.WriteLine(out, line); err != nil {
				return fmt.Errorf("encode food: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tTYPE\tDIET\tRATING\tCOMMENTS")
	for _, f := range foods {
		s := ctrl.Merged(f.ID)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			f.ID, f.FoodName, f.Type1, f.Type2, formatStars(s), s.CommentCount)
	}
	return w.Flush()
}

// formatStars renders a five-star bar plus the numeric average and count.
func formatStars(s review.Summary) string {
	stars := make([]rune, 0, 5)
	for i := 0; i < 5; i++ {
		if review.FillPercent(s.AvgRating, i) >= 50 {
			stars = append(stars, '★')
		} else {
			stars = append(stars, '☆')
		}
	}
	return fmt.Sprintf("%s %.1f (%d)", string(stars), s.AvgRating, s.RatingCount)
}

func (cmd *FoodsCmd) runGet(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("food id is required")
	}

	food, err := cmd.app.Client.Food(ctx, id)
	if err != nil {
		return fmt.Errorf("get food: %w", err)
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, food)
}

func (cmd *FoodsCmd) runCreate(ctx context.Context, c *cli.Command) error {
	sess, err := cmd.app.RequireLogin()
	if err != nil {
		return err
	}

	food := client.Food{
		FoodName: cmd.foodName,
		Type1:    cmd.type1,
		Type2:    cmd.type2,
	}

	if !cmd.interactive && cmd.foodName == "" && cmd.fileReader.Provided() {
		var err error
		food, err = cmd.fileReader.Read()
		if err != nil {
			return err
		}
	}

	if cmd.interactive {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Dish name").
				Validate(validate.Required("name")).
				Value(&food.FoodName),
			huh.NewSelect[string]().
				Title("Dish type").
				Options(
					huh.NewOption("Pasta", "PASTA"),
					huh.NewOption("Pica", "PICA"),
					huh.NewOption("Salata", "SALATA"),
				).
				Value(&food.Type1),
			huh.NewSelect[string]().
				Title("Dietary type").
				Options(
					huh.NewOption("Posno", "POSNO"),
					huh.NewOption("Mrsno", "MRSNO"),
				).
				Value(&food.Type2),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("create form: %w", err)
		}
	}

	// local validation, no network call on failure
	for _, check := range []struct{ field, value string }{
		{"name", food.FoodName},
		{"type1", food.Type1},
		{"type2", food.Type2},
	} {
		if err := validate.Required(check.field)(check.value); err != nil {
			return err
		}
	}

	created, err := cmd.app.Client.CreateFood(ctx, food, sess.UserID)
	if err != nil {
		return fmt.Errorf("create food: %w", err)
	}

	if cmd.imagePath != "" && created.ID != "" {
		if err := cmd.uploadImage(ctx, created.ID, cmd.imagePath); err != nil {
			// the item exists either way; report the upload failure only
			fmt.Fprintf(os.Stderr, "item created, image upload failed: %v\n", err)
		}
	}

	fmt.Fprintf(c.Root().Writer, "Created %s (%s)\n", created.FoodName, created.ID)
	return nil
}

func (cmd *FoodsCmd) runUpdate(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("food id is required")
	}
	if err := validate.Required("name")(cmd.foodName); err != nil {
		return err
	}

	updated, err := cmd.app.Client.UpdateFood(ctx, id, client.Food{FoodName: cmd.foodName})
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Updated %s (%s)\n", updated.FoodName, id)
	return nil
}

func (cmd *FoodsCmd) runDelete(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("food id is required")
	}

	if err := cmd.app.Client.DeleteFood(ctx, id); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Deleted %s\n", id)
	return nil
}

func (cmd *FoodsCmd) runImage(ctx context.Context, c *cli.Command) error {
	id := c.Args().Get(0)
	path := c.Args().Get(1)
	if id == "" || path == "" {
		return fmt.Errorf("usage: canteen foods image <id> <path>")
	}

	if err := cmd.uploadImage(ctx, id, path); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Uploaded %s for %s\n", filepath.Base(path), id)
	return nil
}

func (cmd *FoodsCmd) uploadImage(ctx context.Context, foodID, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := cmd.app.Client.UploadFoodImage(ctx, foodID, filepath.Base(path), f); err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	return nil
}
