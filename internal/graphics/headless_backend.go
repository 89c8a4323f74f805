package graphics

import (
	"fmt"
	"os"
)

// HeadlessBackend implements the Backend interface for headless operation
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements the Window interface for headless operation.
// It keeps the last rendered frame so callers can dump it to disk.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int
	lastFrame  [FrameWidth * FrameHeight]uint32
}

// NewHeadlessBackend creates a new headless graphics backend
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize initializes the headless backend
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates a headless "window" (no actual window)
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	return &HeadlessWindow{
		title:   title,
		width:   width,
		height:  height,
		running: true,
	}, nil
}

// Cleanup releases all headless resources
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true (this is a headless backend)
func (b *HeadlessBackend) IsHeadless() bool {
	return true
}

// GetName returns the backend name
func (b *HeadlessBackend) GetName() string {
	return "Headless"
}

// SetTitle sets the window title (for logging purposes)
func (w *HeadlessWindow) SetTitle(title string) {
	w.title = title
}

// GetSize returns window dimensions
func (w *HeadlessWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *HeadlessWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns an empty events list (no input in headless mode)
func (w *HeadlessWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame stores the frame for later inspection
func (w *HeadlessWindow) RenderFrame(frameBuffer [FrameWidth * FrameHeight]uint32) error {
	w.frameCount++
	w.lastFrame = frameBuffer
	return nil
}

// Run calls update for a single frame and returns
func (w *HeadlessWindow) Run(update func() error) error {
	if update == nil {
		return nil
	}
	return update()
}

// LastFrame returns the most recently rendered frame
func (w *HeadlessWindow) LastFrame() [FrameWidth * FrameHeight]uint32 {
	return w.lastFrame
}

// GetFrameCount returns the number of frames rendered so far
func (w *HeadlessWindow) GetFrameCount() int {
	return w.frameCount
}

// SaveFrameAsPPM saves the last rendered frame as a PPM image file
func (w *HeadlessWindow) SaveFrameAsPPM(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	// PPM header
	fmt.Fprintf(file, "P3\n%d %d\n255\n", FrameWidth, FrameHeight)

	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			pixel := w.lastFrame[y*FrameWidth+x]
			fmt.Fprintf(file, "%d %d %d ", (pixel>>16)&0xFF, (pixel>>8)&0xFF, pixel&0xFF)
		}
		fmt.Fprintf(file, "\n")
	}

	return nil
}

// Cleanup releases window resources
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}
