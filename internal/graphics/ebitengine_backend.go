//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitengineBackend implements the Backend interface using Ebitengine
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *ebitengineGame
}

// EbitengineWindow implements the Window interface for Ebitengine
type EbitengineWindow struct {
	backend *EbitengineBackend
	title   string
	width   int
	height  int
	game    *ebitengineGame
	running bool
	events  []InputEvent
}

// ebitengineGame implements ebiten.Game for the viewer
type ebitengineGame struct {
	window       *EbitengineWindow
	frameImage   *ebiten.Image
	imageBuffer  *image.RGBA
	windowWidth  int
	windowHeight int
	update       func() error
}

// NewEbitengineBackend creates a new Ebitengine graphics backend
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("Ebitengine backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates an Ebitengine window
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	game := &ebitengineGame{
		windowWidth:  width,
		windowHeight: height,
		frameImage:   ebiten.NewImage(FrameWidth, FrameHeight),
		imageBuffer:  image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
	}

	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}

	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)

	return window, nil
}

// Cleanup releases all Ebitengine resources
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true if running in headless mode
func (b *EbitengineBackend) IsHeadless() bool {
	return b.config.Headless
}

// GetName returns the backend name
func (b *EbitengineBackend) GetName() string {
	return "Ebitengine"
}

// SetTitle sets the window title
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions
func (w *EbitengineWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *EbitengineWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns the events collected since the last poll
func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame renders a frame buffer to the window
func (w *EbitengineWindow) RenderFrame(frameBuffer [FrameWidth * FrameHeight]uint32) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}

	img := w.game.imageBuffer
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			pixel := frameBuffer[y*FrameWidth+x]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(pixel >> 16),
				G: uint8(pixel >> 8),
				B: uint8(pixel),
				A: 255,
			})
		}
	}
	w.game.frameImage.WritePixels(img.Pix)
	return nil
}

// Run starts the Ebitengine game loop
func (w *EbitengineWindow) Run(update func() error) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	w.game.update = update
	return ebiten.RunGame(w.game)
}

// Cleanup releases window resources
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Update implements ebiten.Game.Update
func (g *ebitengineGame) Update() error {
	if g.window == nil {
		return nil
	}

	g.processInput()

	if !g.window.running {
		return ebiten.Termination
	}
	if g.update != nil {
		return g.update()
	}
	return nil
}

// Draw implements ebiten.Game.Draw
func (g *ebitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 255})

	// Scale to fit while keeping the aspect ratio, centered
	scaleX := float64(g.windowWidth) / FrameWidth
	scaleY := float64(g.windowHeight) / FrameHeight
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - FrameWidth*scale) / 2
	offsetY := (float64(g.windowHeight) - FrameHeight*scale) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.frameImage, op)
}

// Layout implements ebiten.Game.Layout
func (g *ebitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// processInput translates keyboard input into viewer events
func (g *ebitengineGame) processInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.window.events = append(g.window.events, InputEvent{Type: InputEventTypeQuit, Pressed: true})
		g.window.running = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.window.events = append(g.window.events, InputEvent{Type: InputEventTypeKey, Key: KeySpace, Pressed: true})
	}
}
