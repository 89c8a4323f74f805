// Package cartridge implements the cartridge memory-mapping subsystem of the
// emulator: the page-table machinery every CPU and PPU bus access goes
// through, the bank-switching primitives concrete mappers use to reconfigure
// it, nametable mirroring, battery-backed save RAM and save states.
package cartridge

// MirrorMode represents nametable mirroring mode
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreenA
	MirrorSingleScreenB
	MirrorFourScreen
)

// String returns a human-readable name for the mirroring mode
func (m MirrorMode) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleScreenA:
		return "single-screen A"
	case MirrorSingleScreenB:
		return "single-screen B"
	case MirrorFourScreen:
		return "four-screen"
	}
	return "unknown"
}

// RomData carries everything a mapper consumes from a parsed ROM image.
// It is produced by the ines package (or built by hand in tests).
type RomData struct {
	Filename   string
	MapperID   uint8
	Mirroring  MirrorMode
	PrgRom     []uint8
	ChrRom     []uint8
	HasBattery bool
	IsPalRom   bool
	Crc32      uint32
}
