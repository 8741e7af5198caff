package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/canteen/internal/canteen"
	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/commands"
	"github.com/colonyops/canteen/internal/core/config"
	"github.com/colonyops/canteen/internal/core/session"
	"github.com/colonyops/canteen/internal/core/styles"
	"github.com/colonyops/canteen/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser  func()
		canteenApp = &canteen.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "canteen",
		Usage:     "Browse the canteen menu, rate dishes, and manage orders",
		UsageText: "canteen [global options] command [command options]",
		Description: `Canteen is a terminal client for the student food gateway.

Run 'canteen' with no arguments to open the interactive menu browser.
Run 'canteen login' first to enable rating, commenting, and ordering.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("CANTEEN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/canteen.log)",
				Sources:     cli.EnvVars("CANTEEN_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("CANTEEN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("CANTEEN_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "gateway",
				Usage:       "base URL of the food gateway (overrides config)",
				Sources:     cli.EnvVars("CANTEEN_GATEWAY"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/canteen.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "canteen.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if gw := c.String("gateway"); gw != "" {
				cfg.Gateway.BaseURL = gw
			}

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			sess, err := session.Load(cfg.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load session: %w", err)
			}

			// The token source reads through the app so that login/logout in
			// the same process is picked up by later calls.
			gw := client.New(cfg.Gateway.BaseURL, func() string {
				return canteenApp.Session.Token
			})

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*canteenApp = *canteen.NewApp(cfg, sess, gw)
			canteenApp.Version = build()

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, canteenApp)

	app = commands.NewLoginCmd(flags, canteenApp).Register(app)
	app = commands.NewFoodsCmd(flags, canteenApp).Register(app)
	app = commands.NewOrdersCmd(flags, canteenApp).Register(app)
	app = commands.NewRateCmd(flags, canteenApp).Register(app)
	app = commands.NewCommentCmd(flags, canteenApp).Register(app)
	app = commands.NewRecommendCmd(flags, canteenApp).Register(app)
	app = commands.NewTherapiesCmd(flags, canteenApp).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'canteen --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
