// cmd/vecpad/terminal.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/vecpad/pkg/config"
	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/render"
	"github.com/opd-ai/vecpad/pkg/replay"
	"github.com/opd-ai/vecpad/pkg/validation"
)

// maxTerminalFPS caps terminal repaints
const maxTerminalFPS = 10

const clearScreen = "\x1b[H\x1b[2J"

// Warnings about bad stdin lines are capped per second
const maxInputWarnings = 5

// runTerminal repaints the session as ASCII and reads replay steps, one
// YAML mapping per line, from stdin
func runTerminal(ctx context.Context, session *engine.Session, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *logging.Logger) error {
	cols := max(1, int(cfg.Window.Width)/replay.CellWidth)
	rows := max(1, int(cfg.Window.Height)/replay.CellHeight)
	surface := render.NewTerminalSurface(cols, rows, cfg.Window.Width, cfg.Window.Height)

	go readSteps(ctx, stdin, session, logger)

	fps := min(cfg.Window.FPS, maxTerminalFPS)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			session.Tick(surface)
			fmt.Fprint(stdout, clearScreen)
			if err := surface.Present(stdout); err != nil {
				return err
			}
		}
	}
}

// readSteps queues each stdin line as a replay step until EOF or ctx ends.
// Malformed lines are skipped, and logged unless they arrive faster than
// maxInputWarnings per second.
func readSteps(ctx context.Context, r io.Reader, session *engine.Session, logger *logging.Logger) {
	limiter := validation.NewRateLimiter(maxInputWarnings, time.Second)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var step replay.Step
		if err := yaml.Unmarshal([]byte(line), &step); err != nil {
			if limiter.Allow("unreadable") {
				logger.Warn(ctx, "unreadable input line", "line", line, "error", err.Error())
			}
			continue
		}
		events, err := step.Events()
		if err != nil {
			if limiter.Allow("invalid") {
				logger.Warn(ctx, "invalid input line", "line", line, "error", err.Error())
			}
			continue
		}
		session.Enqueue(events...)
	}
	if err := scanner.Err(); err != nil {
		logger.Error(ctx, "stdin read failed", err)
	}
}
