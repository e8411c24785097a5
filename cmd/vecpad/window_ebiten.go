//go:build ebiten

// cmd/vecpad/window_ebiten.go
package main

import (
	"fmt"

	"github.com/opd-ai/vecpad/pkg/config"
	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/logging"
	ebitenrender "github.com/opd-ai/vecpad/pkg/render/ebiten"
)

func runWindow(session *engine.Session, cfg *config.Config, logger *logging.Logger) error {
	if cfg.Window.Backend != config.BackendEbiten {
		return fmt.Errorf("backend %q is not built in, rebuild without -tags ebiten", cfg.Window.Backend)
	}

	return ebitenrender.Run(session, ebitenrender.WindowOptions{
		Title:  cfg.Window.Title,
		Width:  int(cfg.Window.Width),
		Height: int(cfg.Window.Height),
		FPS:    cfg.Window.FPS,
	}, logger)
}
