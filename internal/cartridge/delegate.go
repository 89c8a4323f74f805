package cartridge

import "io"

// Delegate supplies the per-board geometry and register semantics a concrete
// mapper layers on top of MapperBase. MapperBase consults it during
// Initialize and on every register dispatch; a concrete mapper implements it
// by embedding BaseDelegate and overriding what differs from NROM.
type Delegate interface {
	// Page geometry
	PRGPageSize() uint32
	CHRPageSize() uint32
	CHRRAMPageSize() uint32
	SaveRAMPageSize() uint32
	WorkRAMPageSize() uint32

	// Arena sizes
	SaveRAMSize() uint32
	WorkRAMSize() uint32
	CHRRAMSize() uint32

	// Register window and policy flags
	RegisterStartAddress() uint16
	RegisterEndAddress() uint16
	AllowRegisterRead() bool
	HasBusConflicts() bool
	ForceBattery() bool

	// Lifecycle hooks, called at the end of MapperBase.Initialize
	InitMapper()
	InitMapperFromRom(rom *RomData)

	// Register semantics
	WriteRegister(addr uint16, value uint8)
	ReadRegister(addr uint16) uint8

	// Mapper-specific save-state payload, streamed after the base state
	SaveExtraState(w io.Writer) error
	LoadExtraState(r io.Reader) error
}

// BaseDelegate provides the conservative defaults: 16 KiB PRG pages, 8 KiB
// CHR pages, 8 KiB save and work RAM, registers across 0x8000-0xFFFF and
// no-op register semantics. The defaults satisfy NROM.
type BaseDelegate struct{}

func (BaseDelegate) PRGPageSize() uint32     { return 0x4000 }
func (BaseDelegate) CHRPageSize() uint32     { return 0x2000 }
func (BaseDelegate) CHRRAMPageSize() uint32  { return 0x2000 }
func (BaseDelegate) SaveRAMPageSize() uint32 { return 0x2000 }
func (BaseDelegate) WorkRAMPageSize() uint32 { return 0x2000 }

func (BaseDelegate) SaveRAMSize() uint32 { return 0x2000 }
func (BaseDelegate) WorkRAMSize() uint32 { return 0x2000 }
func (BaseDelegate) CHRRAMSize() uint32  { return 0x2000 }

func (BaseDelegate) RegisterStartAddress() uint16 { return 0x8000 }
func (BaseDelegate) RegisterEndAddress() uint16   { return 0xFFFF }
func (BaseDelegate) AllowRegisterRead() bool      { return false }
func (BaseDelegate) HasBusConflicts() bool        { return false }
func (BaseDelegate) ForceBattery() bool           { return false }

func (BaseDelegate) InitMapper()                    {}
func (BaseDelegate) InitMapperFromRom(*RomData)     {}
func (BaseDelegate) WriteRegister(uint16, uint8)    {}
func (BaseDelegate) ReadRegister(uint16) uint8      { return 0 }
func (BaseDelegate) SaveExtraState(io.Writer) error { return nil }
func (BaseDelegate) LoadExtraState(io.Reader) error { return nil }

// baseHolder wires the shared MapperBase into a concrete mapper struct.
// The factory calls attach before Initialize runs.
type baseHolder struct {
	*MapperBase
}

func (h *baseHolder) attach(base *MapperBase) {
	h.MapperBase = base
}
