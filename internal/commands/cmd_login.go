package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/internal/core/session"
	"github.com/colonyops/canteen/internal/core/validate"
)

type LoginCmd struct {
	flags *Flags
	app   *canteen.App

	// flags
	interactive bool
	userID      string
	role        string
	fullName    string
	token       string
}

// NewLoginCmd creates a new login command
func NewLoginCmd(flags *Flags, app *canteen.App) *LoginCmd {
	return &LoginCmd{flags: flags, app: app}
}

// Register adds the login and logout commands to the application
func (cmd *LoginCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "login",
			Usage:     "Store a gateway identity and token locally",
			UsageText: "canteen login [--interactive | --user-id ... --role ... --token ...]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "interactive",
					Aliases:     []string{"i"},
					Usage:       "fill in the session via a form",
					Destination: &cmd.interactive,
				},
				&cli.StringFlag{Name: "user-id", Usage: "gateway user id", Destination: &cmd.userID},
				&cli.StringFlag{Name: "role", Usage: "user role (student, cook, doctor)", Destination: &cmd.role},
				&cli.StringFlag{Name: "name", Usage: "display name", Destination: &cmd.fullName},
				&cli.StringFlag{
					Name:        "token",
					Usage:       "bearer token for authenticated calls",
					Sources:     cli.EnvVars("CANTEEN_TOKEN"),
					Destination: &cmd.token,
				},
			},
			Action: cmd.runLogin,
		},
		&cli.Command{
			Name:      "logout",
			Usage:     "Remove the stored session",
			UsageText: "canteen logout",
			Action:    cmd.runLogout,
		},
	)

	return app
}

func (cmd *LoginCmd) runLogin(ctx context.Context, c *cli.Command) error {
	sess := session.Session{
		UserID:   cmd.userID,
		Role:     cmd.role,
		FullName: cmd.fullName,
		Token:    cmd.token,
	}
	if sess.Role == "" {
		sess.Role = session.RoleStudent
	}

	if cmd.interactive {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("User ID").
				Validate(validate.Required("user id")).
				Value(&sess.UserID),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Student", session.RoleStudent),
					huh.NewOption("Cook", session.RoleCook),
					huh.NewOption("Doctor", session.RoleDoctor),
				).
				Value(&sess.Role),
			huh.NewInput().
				Title("Display name").
				Value(&sess.FullName),
			huh.NewInput().
				Title("Bearer token").
				EchoMode(huh.EchoModePassword).
				Value(&sess.Token),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("login form: %w", err)
		}
	}

	if err := validate.Required("user id")(sess.UserID); err != nil {
		return err
	}

	if err := session.Save(cmd.app.Config.DataDir, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	cmd.app.Session = sess
	fmt.Fprintf(c.Root().Writer, "Logged in as %s (%s)\n", sess.UserID, sess.Role)
	return nil
}

func (cmd *LoginCmd) runLogout(ctx context.Context, c *cli.Command) error {
	if err := session.Clear(cmd.app.Config.DataDir); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	cmd.app.Session = session.Session{}
	fmt.Fprintln(c.Root().Writer, "Logged out")
	return nil
}
