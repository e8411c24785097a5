// cmd/vecpad/replay.go
package main

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/replay"
)

// runReplay plays a script headlessly, prints the final snapshot as YAML
// and optionally exports the final frame. The frame is written even when
// the script's expectation fails.
func runReplay(ctx context.Context, path string, opts engine.Options, output string, stdout io.Writer, logger *logging.Logger) error {
	script, err := replay.Load(path)
	if err != nil {
		return err
	}

	session := engine.NewSession(script.SessionOptions(opts))
	result, runErr := replay.NewRunner(logger).Run(ctx, script, session)

	switch output {
	case "":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(result.Snapshot); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
	case "-":
		if err := replay.WriteFrame(stdout, session, replay.FormatASCII); err != nil {
			return err
		}
	default:
		if err := replay.SaveFrame(output, session); err != nil {
			return err
		}
		logger.Info(ctx, "frame written", "path", output)
	}

	return runErr
}
