// pkg/render/engo/scene.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/vecpad/pkg/engine"
	"github.com/opd-ai/vecpad/pkg/logging"
	"github.com/opd-ai/vecpad/pkg/render"
)

// SceneType is the engo scene name
const SceneType = "VectorScene"

// WindowOptions configures the engo window
type WindowOptions struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

// VectorScene hosts a session in an engo window
type VectorScene struct {
	session *engine.Session
	logger  *logging.Logger
}

// NewVectorScene creates a new scene around session
func NewVectorScene(session *engine.Session, logger *logging.Logger) *VectorScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &VectorScene{session: session, logger: logger}
}

// Type returns the scene type (required by Engo)
func (scene *VectorScene) Type() string {
	return SceneType
}

// Preload is called before the scene starts (required by Engo)
func (scene *VectorScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *VectorScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(scene.session.Context(), "engo updater is not an ecs world")
		engo.Exit()
		return
	}

	common.SetBackground(render.DefaultTheme().Background)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	inputSystem := NewInputSystem(scene.session)
	world.AddSystem(inputSystem)
	engo.Mailbox.Listen(textMessageType, inputSystem.HandleText)

	frames, err := NewFrameSystem(scene.session)
	if err != nil {
		scene.logger.Error(scene.session.Context(), "failed to create frame surface", err)
		engo.Exit()
		return
	}
	frames.Attach(renderSystem)
	world.AddSystem(frames)

	scene.logger.Info(scene.session.Context(), "engo scene ready")
}

// Exit is called when the window closes
func (scene *VectorScene) Exit() {
	scene.logger.Info(scene.session.Context(), "engo window closed", "frames", scene.session.Frame())
}

// Run opens the window and blocks until it closes
func Run(session *engine.Session, opts WindowOptions, logger *logging.Logger) {
	engo.Run(engo.RunOptions{
		Title:        opts.Title,
		Width:        opts.Width,
		Height:       opts.Height,
		FPSLimit:     opts.FPS,
		NotResizable: true,
	}, NewVectorScene(session, logger))
}
