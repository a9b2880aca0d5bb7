// Richdump parses a markup file, lays it out and prints the result.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/rjkroege/richui/config"
	"github.com/rjkroege/richui/input"
	"github.com/rjkroege/richui/richtext"
)

const appName = "richdump"

type env struct {
	cfg *config.Config
	log *zap.Logger
}

type envKey struct{}

func envFromContext(ctx context.Context) *env {
	return ctx.Value(envKey{}).(*env)
}

// initializeAppContext loads the configuration and the logger once the
// command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)

	var err error
	configFile := cmd.String("config")
	if e.cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		e.cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if cmd.IsSet("width") {
		e.cfg.Layout.MaxWidth = int(cmd.Int("width"))
	}
	e.log = e.cfg.Logging.Prepare(appName)

	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		e.log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)
	if e.log == nil {
		return nil
	}
	e.log.Debug("Program ended")
	if er := e.log.Sync(); er != nil && !errors.Is(er, syscall.EINVAL) && !errors.Is(er, syscall.ENOTTY) {
		// Syncing a console fails on some systems.
		err = multierr.Append(err, fmt.Errorf("unable to sync log: %w", er))
	}
	return
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if e := envFromContext(ctx); e.log != nil {
		e.log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{}), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "lays out a markup file and prints elements, hit regions and text",
		Version:         runtime.Version(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		ArgsUsage:       "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "wrap at `PIXELS`, 0 disables wrapping"},
			&cli.BoolFlag{Name: "watch", Usage: "print again whenever the file changes"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages"},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "dumpconfig",
				Usage:  "Dumps the actual configuration (YAML)",
				Action: outputConfiguration,
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func run(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected exactly one markup file, got %d arguments", cmd.NArg())
	}
	fname := cmd.Args().Get(0)

	r, err := newWidget(e, fname)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := render(os.Stdout, r, fname); err != nil {
		return err
	}
	if !cmd.Bool("watch") {
		return nil
	}
	return watch(ctx, e.log, fname, func() error {
		fmt.Fprintln(os.Stdout)
		return render(os.Stdout, r, fname)
	})
}

func newWidget(e *env, fname string) (*richtext.Richtext, error) {
	fonts, err := e.cfg.FontSet()
	if err != nil {
		return nil, fmt.Errorf("unable to load fonts: %w", err)
	}
	dir, err := filepath.Abs(filepath.Dir(fname))
	if err != nil {
		return nil, fmt.Errorf("unable to locate %s: %w", fname, err)
	}
	opts := append(e.cfg.WidgetOptions(e.log), richtext.WithBaseDir(dir))
	return richtext.New(fonts, opts...), nil
}

// render reads fname into r, waits for its images and dumps the layout.
func render(w io.Writer, r *richtext.Richtext, fname string) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("unable to read markup: %w", err)
	}
	if err := r.SetText(string(data)); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	r.WaitImages()
	r.Update(input.Pointer{})
	return dump(w, r.Result())
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	data, err := config.Dump(e.cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
