// Package memory implements the CPU and PPU bus facades that sit between
// the processor cores and the cartridge memory-mapping subsystem.
package memory

import (
	"nescart/internal/cartridge"
)

// CartridgeInterface is the slice of the mapper the buses need
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	GetMemoryRanges(ranges *cartridge.MemoryRanges)
	SetDefaultNametables(nametableA, nametableB []uint8)
}

// Memory represents the CPU-visible memory map: 2KB internal RAM, the
// cartridge space the mapper claims, and open bus everywhere else. PPU,
// APU and input registers belong to their own cores and read as open bus
// here.
type Memory struct {
	// Internal RAM (2KB, mirrored to 8KB)
	ram [0x800]uint8

	cartridge CartridgeInterface

	// Which addresses the mapper claimed via GetMemoryRanges, split by
	// operation. Built once at attach time so the hot path stays a pair
	// of array lookups.
	readClaims  [0x10000]bool
	writeClaims [0x10000]bool

	// Open bus - last value read from bus (for unmapped areas)
	openBusValue uint8
}

// New creates a CPU memory map with no cartridge attached
func New() *Memory {
	mem := &Memory{}
	mem.initializePowerUpRAM()
	return mem
}

// AttachCartridge routes the address ranges the mapper claims to it
func (m *Memory) AttachCartridge(cart CartridgeInterface) {
	m.cartridge = cart

	var ranges cartridge.MemoryRanges
	cart.GetMemoryRanges(&ranges)
	for addr := 0; addr <= 0xFFFF; addr++ {
		m.readClaims[addr] = ranges.Claims(cartridge.MemoryRead, uint16(addr))
		m.writeClaims[addr] = ranges.Claims(cartridge.MemoryWrite, uint16(addr))
	}
}

// initializePowerUpRAM initializes RAM with an alternating 0x00/0xFF
// power-up pattern.
// Real NES RAM does not come up zeroed, and some games depend on that.
func (m *Memory) initializePowerUpRAM() {
	for i := 0; i < 0x800; i++ {
		if i%2 == 0 {
			m.ram[i] = 0x00
		} else {
			m.ram[i] = 0xFF
		}
	}
}

// Read reads a byte from the given address
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		// Internal RAM (mirrored)
		value = m.ram[address&0x07FF]

	case m.cartridge != nil && m.readClaims[address]:
		value = m.cartridge.ReadPRG(address)

	default:
		// Unclaimed areas return the value lingering on the bus
		value = m.openBusValue
	}

	m.openBusValue = value
	return value
}

// Write writes a byte to the given address
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case m.cartridge != nil && m.writeClaims[address]:
		m.cartridge.WritePRG(address, value)
	}
}

// PPUMemory represents the PPU's memory space: pattern tables and
// nametables go through the mapper's CHR page table, palette RAM lives
// here. The two console-internal nametable pages are owned here and lent
// to the mapper, which decides which page each nametable window exposes.
type PPUMemory struct {
	nametableA [0x400]uint8
	nametableB [0x400]uint8
	paletteRAM [32]uint8

	cartridge CartridgeInterface
}

// NewPPUMemory creates the PPU memory map and hands the internal
// nametable pages to the mapper
func NewPPUMemory(cart CartridgeInterface) *PPUMemory {
	pm := &PPUMemory{cartridge: cart}

	// Background color positions should come up black
	for i := 0; i < 32; i += 4 {
		pm.paletteRAM[i] = 0x0F
	}

	cart.SetDefaultNametables(pm.nametableA[:], pm.nametableB[:])
	return pm
}

// Read reads from PPU memory space ($0000-$3FFF)
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x3F00:
		return pm.cartridge.ReadCHR(foldNametableMirror(address))
	default:
		return pm.paletteRAM[paletteIndex(address)]
	}
}

// Write writes to PPU memory space ($0000-$3FFF)
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x3F00:
		pm.cartridge.WriteCHR(foldNametableMirror(address), value)
	default:
		pm.paletteRAM[paletteIndex(address)] = value
	}
}

// foldNametableMirror folds the $3000-$3EFF mirror back onto $2000-$2EFF
func foldNametableMirror(address uint16) uint16 {
	if address >= 0x3000 {
		return address - 0x1000
	}
	return address
}

// paletteIndex resolves palette mirroring: 32-byte wrap plus the
// $3F10/$3F14/$3F18/$3F1C aliases of the background positions
func paletteIndex(address uint16) uint16 {
	index := address & 0x1F
	if index >= 0x10 && index%4 == 0 {
		index -= 0x10
	}
	return index
}
