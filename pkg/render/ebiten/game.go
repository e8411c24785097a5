//go:build ebiten

package ebiten

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/input"
	"github.com/opd-ai/vecpad/pkg/logging"
)

// WindowOptions configures the ebiten window
type WindowOptions struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

var keyBindings = []struct {
	code ebiten.Key
	key  input.Key
}{
	{code: ebiten.KeyEnter, key: input.KeyEnter},
	{code: ebiten.KeyNumpadEnter, key: input.KeyEnter},
	{code: ebiten.KeyBackspace, key: input.KeyBackspace},
	{code: ebiten.KeyEscape, key: input.KeyEscape},
}

// Game adapts a session to ebiten.Game. Update queues input and processes
// it; Draw renders the session.
type Game struct {
	session *engine.Session
	surface *Surface
	width   int
	height  int

	lastX, lastY int
	chars        []rune
}

// NewGame creates a game for session
func NewGame(session *engine.Session) (*Game, error) {
	surface, err := NewSurface()
	if err != nil {
		return nil, err
	}
	w, h := session.Size()
	return &Game{session: session, surface: surface, width: int(w), height: int(h)}, nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	px, py := float64(x), float64(y)

	if x != g.lastX || y != g.lastY {
		g.session.Enqueue(input.Move(px, py))
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.session.Enqueue(input.Press(px, py))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.session.Enqueue(input.Release(px, py))
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.session.Enqueue(input.Char(r))
	}
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.code) {
			g.session.Enqueue(input.KeyPress(b.key))
		}
	}

	g.session.Process()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.session.Render(g.surface)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it closes
func Run(session *engine.Session, opts WindowOptions, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	g, err := NewGame(session)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}

	logger.Info(session.Context(), "ebiten window opening", "width", opts.Width, "height", opts.Height)
	err = ebiten.RunGame(g)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	logger.Info(session.Context(), "ebiten window closed", "frames", session.Frame())
	return nil
}
