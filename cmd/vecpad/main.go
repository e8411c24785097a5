// cmd/vecpad/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/opd-ai/vecpad/pkg/config"
	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/render"
)

const usage = `usage: vecpad [flags]
       vecpad [flags] replay <script.yaml>

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vecpad: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("vecpad", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	configPath := flags.StringP("config", "c", "", "path to a JSON or YAML configuration file")
	backend := flags.StringP("backend", "b", "", "display backend: engo, ebiten, terminal or null")
	width := flags.Float64("width", 0, "canvas width in pixels")
	height := flags.Float64("height", 0, "canvas height in pixels")
	initial := flags.IntP("initial-vectors", "n", 0, "vectors added before the first frame")
	logLevel := flags.String("log-level", "", "DEBUG, INFO, WARN or ERROR")
	output := flags.StringP("output", "o", "", "replay: write the final frame here (.svg, .png, '-' or other for ASCII)")
	writeConfig := flags.String("write-config", "", "write the effective configuration to this file and exit")

	err := flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if flags.Changed("backend") {
		cfg.Window.Backend = *backend
	}
	if flags.Changed("width") {
		cfg.Window.Width = *width
	}
	if flags.Changed("height") {
		cfg.Window.Height = *height
	}
	if flags.Changed("initial-vectors") {
		cfg.Canvas.InitialVectors = *initial
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewLoggerWithWriter(stderr, logging.ParseLevel(cfg.LogLevel))

	if *writeConfig != "" {
		if err := config.SaveConfig(cfg, *writeConfig); err != nil {
			return err
		}
		logger.Info(ctx, "configuration written", "path", *writeConfig)
		return nil
	}

	opts, err := sessionOptions(cfg, logger)
	if err != nil {
		return err
	}

	switch flags.Arg(0) {
	case "":
	case "replay":
		if flags.NArg() != 2 {
			return errors.New("replay takes exactly one script path")
		}
		return runReplay(ctx, flags.Arg(1), opts, *output, stdout, logger)
	default:
		return fmt.Errorf("unknown command %q", flags.Arg(0))
	}

	session := engine.NewSession(opts)
	switch cfg.Window.Backend {
	case config.BackendTerminal:
		return ignoreCancel(runTerminal(ctx, session, cfg, stdin, stdout, logger))
	case config.BackendNull:
		return ignoreCancel(session.Run(ctx, render.NewNullSurface(logger), cfg.Window.FPS))
	default:
		return runWindow(session, cfg, logger)
	}
}

// loadConfig reads path, or starts from the defaults when path is empty,
// then applies VECPAD_* environment overrides
func loadConfig(path string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sessionOptions(cfg *config.Config, logger *logging.Logger) (engine.Options, error) {
	sceneOpts, err := cfg.SceneOptions()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Scene:          sceneOpts,
		Style:          cfg.ArrowStyle(),
		InitialVectors: cfg.Canvas.InitialVectors,
		Logger:         logger,
	}, nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
