package replay

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/render"
)

// Format selects how a frame is exported
type Format string

const (
	FormatSVG   Format = "svg"
	FormatPNG   Format = "png"
	FormatASCII Format = "ascii"
)

// Canvas pixels per terminal cell in ASCII exports
const (
	CellWidth  = 10
	CellHeight = 20
)

// FormatForPath picks SVG or PNG by extension and ASCII for anything else
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".png":
		return FormatPNG
	default:
		return FormatASCII
	}
}

// WriteFrame renders the session's current state to w
func WriteFrame(w io.Writer, session *engine.Session, format Format) error {
	width, height := session.Size()

	switch format {
	case FormatSVG:
		surface := render.NewSVGSurface(int(width), int(height))
		session.Render(surface)
		_, err := surface.WriteTo(w)
		return err
	case FormatPNG:
		surface, err := render.NewImageSurface(int(width), int(height))
		if err != nil {
			return err
		}
		session.Render(surface)
		return surface.WritePNG(w)
	case FormatASCII:
		cols := max(1, int(width)/CellWidth)
		rows := max(1, int(height)/CellHeight)
		surface := render.NewTerminalSurface(cols, rows, width, height)
		session.Render(surface)
		return surface.Present(w)
	default:
		return fmt.Errorf("unknown frame format %q", format)
	}
}

// SaveFrame writes the current frame to path in the format its extension implies
func SaveFrame(path string, session *engine.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return logging.WrapError(err, "failed to create frame file")
	}
	if err := WriteFrame(f, session, FormatForPath(path)); err != nil {
		f.Close()
		return logging.WrapError(err, "failed to write %s frame", FormatForPath(path))
	}
	return f.Close()
}
