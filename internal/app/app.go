package app

import (
	"fmt"
	"log"

	"nescart/internal/cartridge"
	"nescart/internal/cheats"
	"nescart/internal/graphics"
	"nescart/internal/ines"
	"nescart/internal/memory"
)

// Application ties a loaded ROM, its mapper and the CHR viewer together
type Application struct {
	config *Config
	cheats *cheats.Engine

	rom    *cartridge.RomData
	mapper cartridge.Mapper
	cpuMem *memory.Memory
	ppuMem *memory.PPUMemory

	backend graphics.Backend
	window  graphics.Window

	// Viewer state: pattern tables by default, nametable 0 after toggling
	viewNametable bool
}

// NewApplication creates an application with configuration loaded from
// configPath. When headless is set, the headless video backend is forced
// regardless of the configured one.
func NewApplication(configPath string, headless bool) (*Application, error) {
	config := NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("couldn't load configuration: %w", err)
	}

	if headless {
		config.Video.Backend = string(graphics.BackendHeadless)
	}

	return &Application{
		config: config,
		cheats: cheats.NewEngine(),
	}, nil
}

// GetConfig returns the active configuration
func (a *Application) GetConfig() *Config {
	return a.config
}

// Cheats returns the application's cheat engine
func (a *Application) Cheats() *cheats.Engine {
	return a.cheats
}

// Mapper returns the active mapper, or nil before LoadROM
func (a *Application) Mapper() cartridge.Mapper {
	return a.mapper
}

// LoadROM parses an iNES file, builds its mapper and attaches it to the
// CPU and PPU buses
func (a *Application) LoadROM(path string) error {
	rom, err := ines.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("couldn't load ROM %s: %w", path, err)
	}

	mapper, err := cartridge.NewMapper(rom, cartridge.Options{
		SaveFolder: a.config.Paths.SaveData,
		Cheats:     a.cheats,
	})
	if err != nil {
		return fmt.Errorf("couldn't configure mapper for %s: %w", path, err)
	}

	a.rom = rom
	a.mapper = mapper

	a.cpuMem = memory.New()
	a.cpuMem.AttachCartridge(mapper)
	a.ppuMem = memory.NewPPUMemory(mapper)

	if a.config.Debug.EnableLogging {
		log.Printf("loaded %s: mapper %d, %s", path, rom.MapperID, a.RomInfo())
	}
	return nil
}

// RomInfo returns a one-line summary of the loaded ROM
func (a *Application) RomInfo() string {
	if a.rom == nil {
		return "no ROM loaded"
	}
	chr := fmt.Sprintf("%dK CHR ROM", len(a.rom.ChrRom)/1024)
	if len(a.rom.ChrRom) == 0 {
		chr = "CHR RAM"
	}
	region := "NTSC"
	if a.rom.IsPalRom {
		region = "PAL"
	}
	battery := ""
	if a.mapper.HasBattery() {
		battery = ", battery"
	}
	return fmt.Sprintf("mapper %d, %dK PRG ROM, %s, %s mirroring, %s%s, CRC32 %08X",
		a.rom.MapperID, len(a.rom.PrgRom)/1024, chr,
		a.mapper.MirroringType(), region, battery, a.rom.Crc32)
}

// Run opens the viewer window and drives it until it closes. In headless
// mode a single frame is rendered and kept for SaveFrame.
func (a *Application) Run() error {
	if a.mapper == nil {
		return fmt.Errorf("no ROM loaded")
	}

	backendType := graphics.BackendType(a.config.Video.Backend)
	a.backend = graphics.CreateBackend(backendType)

	width := graphics.FrameWidth * a.config.Window.Scale
	height := graphics.FrameHeight * a.config.Window.Scale
	title := fmt.Sprintf("nescart - %s", a.RomInfo())

	if err := a.backend.Initialize(graphics.Config{
		WindowTitle:  title,
		WindowWidth:  width,
		WindowHeight: height,
		VSync:        a.config.Video.VSync,
		Headless:     a.backend.IsHeadless(),
	}); err != nil {
		return fmt.Errorf("couldn't initialize %s backend: %w", a.backend.GetName(), err)
	}

	window, err := a.backend.CreateWindow(title, width, height)
	if err != nil {
		return fmt.Errorf("couldn't create window: %w", err)
	}
	a.window = window

	var frame [graphics.FrameWidth * graphics.FrameHeight]uint32
	return window.Run(func() error {
		for _, event := range window.PollEvents() {
			if event.Type == graphics.InputEventTypeKey && event.Key == graphics.KeySpace {
				a.viewNametable = !a.viewNametable
			}
		}
		if a.viewNametable {
			graphics.RenderNametable(a.mapper, 0, 0, &frame)
		} else {
			graphics.RenderPatternTables(a.mapper, &frame)
		}
		return window.RenderFrame(frame)
	})
}

// SaveFrame dumps the last rendered frame to a PPM file. Only available
// with the headless backend.
func (a *Application) SaveFrame(path string) error {
	headless, ok := graphics.AsHeadlessWindow(a.window)
	if !ok {
		return fmt.Errorf("frame dumps require the headless backend")
	}
	return headless.SaveFrameAsPPM(path)
}

// Cleanup flushes battery RAM and releases the video backend
func (a *Application) Cleanup() error {
	var err error
	if a.mapper != nil {
		err = a.mapper.Shutdown()
	}
	if a.window != nil {
		if cerr := a.window.Cleanup(); err == nil {
			err = cerr
		}
	}
	if a.backend != nil {
		if cerr := a.backend.Cleanup(); err == nil {
			err = cerr
		}
	}
	return err
}
