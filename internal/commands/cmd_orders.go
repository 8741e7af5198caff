package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/pkg/iojson"
)

type OrdersCmd struct {
	flags *Flags
	app   *canteen.App

	// flags
	jsonOutput bool
}

// NewOrdersCmd creates a new orders command
func NewOrdersCmd(flags *Flags, app *canteen.App) *OrdersCmd {
	return &OrdersCmd{flags: flags, app: app}
}

// Register adds the orders command to the application
func (cmd *OrdersCmd) Register(app *cli.Command) *cli.Command {
	jsonFlag := &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON lines",
		Destination: &cmd.jsonOutput,
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "order",
		Usage:     "Order a catalog item",
		UsageText: "canteen order <food-id>",
		Action:    cmd.runPlace,
	})

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "orders",
		Usage:     "Place and manage food orders",
		UsageText: "canteen orders <command>",
		Commands: []*cli.Command{
			{
				Name:      "place",
				Usage:     "Order a catalog item",
				UsageText: "canteen orders place <food-id>",
				Action:    cmd.runPlace,
			},
			{
				Name:      "ls",
				Usage:     "List all orders",
				UsageText: "canteen orders ls [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runLs,
			},
			{
				Name:      "mine",
				Usage:     "List the logged-in user's orders",
				UsageText: "canteen orders mine [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runMine,
			},
			{
				Name:      "accepted",
				Usage:     "List accepted orders",
				UsageText: "canteen orders accepted [--json]",
				Flags:     []cli.Flag{jsonFlag},
				Action:    cmd.runAccepted,
			},
			{
				Name:      "accept",
				Usage:     "Accept an order",
				UsageText: "canteen orders accept <order-id>",
				Action:    cmd.runAccept,
			},
			{
				Name:      "cancel",
				Usage:     "Cancel an order",
				UsageText: "canteen orders cancel <order-id>",
				Action:    cmd.runCancel,
			},
		},
	})

	return app
}

func (cmd *OrdersCmd) runPlace(ctx context.Context, c *cli.Command) error {
	foodID := c.Args().First()
	if foodID == "" {
		return fmt.Errorf("food id is required")
	}

	sess, err := cmd.app.RequireLogin()
	if err != nil {
		return err
	}

	order, err := cmd.app.Client.CreateOrder(ctx, foodID, sess.UserID)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Order %s placed\n", order.ID)
	return nil
}

func (cmd *OrdersCmd) runLs(ctx context.Context, c *cli.Command) error {
	orders, err := cmd.app.Client.Orders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	return cmd.write(c, orders)
}

func (cmd *OrdersCmd) runMine(ctx context.Context, c *cli.Command) error {
	sess, err := cmd.app.RequireLogin()
	if err != nil {
		return err
	}

	orders, err := cmd.app.Client.MyOrders(ctx, sess.UserID)
	if err != nil {
		return fmt.Errorf("list my orders: %w", err)
	}
	return cmd.write(c, orders)
}

func (cmd *OrdersCmd) runAccepted(ctx context.Context, c *cli.Command) error {
	orders, err := cmd.app.Client.AcceptedOrders(ctx)
	if err != nil {
		return fmt.Errorf("list accepted orders: %w", err)
	}
	return cmd.write(c, orders)
}

func (cmd *OrdersCmd) runAccept(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("order id is required")
	}

	order, err := cmd.app.Client.AcceptOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("accept order: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Order %s accepted\n", order.ID)
	return nil
}

func (cmd *OrdersCmd) runCancel(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("order id is required")
	}

	if err := cmd.app.Client.CancelOrder(ctx, id); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Order %s cancelled\n", id)
	return nil
}

func (cmd *OrdersCmd) write(c *cli.Command, orders []client.Order) error {
	out := c.Root().Writer

	if len(orders) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No orders found\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, o := range orders {
			if err := iojson.WriteLine(out, o); err != nil {
				return fmt.Errorf("encode order: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tFOOD\tUSER\tACCEPTED\tCANCELLED")
	for _, o := range orders {
		name := o.Food.FoodName
		if name == "" {
			name = o.Food.ID
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, name, o.UserID, o.StatusO, o.StatusO2)
	}
	return w.Flush()
}
