package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kirillkom/library-searchbox/internal/adapters/terminal"
	"github.com/kirillkom/library-searchbox/internal/bootstrap"
	"github.com/kirillkom/library-searchbox/internal/config"
	"github.com/kirillkom/library-searchbox/internal/core/usecase"
	"github.com/kirillkom/library-searchbox/internal/observability/logging"
)

const serviceName = "searchbox-cli"

func main() {
	app := &cli.Command{
		Name:  "searchbox",
		Usage: "Interactive library search box over the name service",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "in-app",
				Usage: "Behave like the in-app shell: open URLs and searches without redirects",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "Submit one query, print the navigation and exit",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level written to stderr",
				Value: "warn",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(logging.NewLogger(os.Stderr, serviceName, c.String("log-level")))

	app, err := bootstrap.New(ctx, cfg, bootstrap.RoleCLI, serviceName)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer app.Close()

	keyboard := &terminal.Keyboard{}
	box := usecase.NewSearchBox(
		app.Resolver,
		app.Suggester,
		app.Grouper,
		app.Navigator,
		terminal.NewHost(os.Stdout, c.Bool("in-app")),
		usecase.SearchBoxOptions{
			Keyboard:         keyboard,
			EnglishInterface: cfg.EnglishInterface(),
			HideKeyboard:     cfg.HideKeyboard,
		},
	)

	if query := c.String("query"); query != "" {
		if _, ok := box.Submit(ctx, query); !ok {
			return errors.New("query could not be resolved")
		}
		return nil
	}

	fmt.Fprintln(os.Stdout, "library search box, :help for commands")
	return terminal.NewSession(box, keyboard, os.Stdout).Run(ctx, os.Stdin)
}
