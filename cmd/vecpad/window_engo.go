//go:build !ebiten

// cmd/vecpad/window_engo.go
package main

import (
	"fmt"

	"github.com/opd-ai/vecpad/pkg/config"
	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/logging"
	engorender "github.com/opd-ai/vecpad/pkg/render/engo"
)

func runWindow(session *engine.Session, cfg *config.Config, logger *logging.Logger) error {
	if cfg.Window.Backend != config.BackendEngo {
		return fmt.Errorf("backend %q is not built in, rebuild with -tags ebiten", cfg.Window.Backend)
	}

	engorender.Run(session, engorender.WindowOptions{
		Title:  cfg.Window.Title,
		Width:  int(cfg.Window.Width),
		Height: int(cfg.Window.Height),
		FPS:    cfg.Window.FPS,
	}, logger)
	return nil
}
