package cartridge

import (
	"fmt"
	"io"

	"nescart/internal/cheats"
)

// Mapper is the bus-facing contract of a configured cartridge. The CPU and
// PPU cores call only these entry points; everything else on MapperBase is
// tooling surface (debugger helpers, bank-switch primitives for the
// concrete mappers themselves).
type Mapper interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	NotifyVRAMAddressChange(addr uint16)
	GetMemoryRanges(ranges *MemoryRanges)

	SetDefaultNametables(nametableA, nametableB []uint8)
	SetMirroringType(mode MirrorMode)
	MirroringType() MirrorMode

	HasBattery() bool
	SaveState(w io.Writer) error
	LoadState(r io.Reader) error
	Shutdown() error
}

// MemoryOperation distinguishes read and write claims on the CPU bus
type MemoryOperation uint8

const (
	MemoryRead MemoryOperation = iota
	MemoryWrite
)

type handlerRange struct {
	op         MemoryOperation
	start, end uint16
}

// MemoryRanges collects the CPU bus ranges a mapper claims. The bus builds
// its routing table from it once, at attach time.
type MemoryRanges struct {
	handlers []handlerRange
}

// AddHandler claims an inclusive address range for the given operation
func (r *MemoryRanges) AddHandler(op MemoryOperation, startAddr, endAddr uint16) {
	r.handlers = append(r.handlers, handlerRange{op, startAddr, endAddr})
}

// Claims reports whether addr falls inside a claimed range for op
func (r *MemoryRanges) Claims(op MemoryOperation, addr uint16) bool {
	for _, h := range r.handlers {
		if h.op == op && addr >= h.start && addr <= h.end {
			return true
		}
	}
	return false
}

// Options carries the host-side collaborators a mapper needs. Both fields
// are optional: an empty SaveFolder stores battery files next to the ROM,
// and a nil cheat engine disables cheat reapplication.
type Options struct {
	SaveFolder string
	Cheats     *cheats.Engine
}

// NewMapper builds and initializes the mapper for the ROM's mapper ID.
// There is exactly one mapper instance per loaded ROM.
func NewMapper(rom *RomData, opts Options) (Mapper, error) {
	var delegate Delegate
	switch rom.MapperID {
	case 0:
		delegate = &Mapper000{}
	case 2:
		delegate = &Mapper002{}
	case 3:
		delegate = &Mapper003{}
	case 7:
		delegate = &Mapper007{}
	default:
		return nil, fmt.Errorf("unsupported mapper: %d", rom.MapperID)
	}

	base := newMapperBase(delegate, opts)
	delegate.(interface{ attach(*MapperBase) }).attach(base)
	if err := base.Initialize(rom); err != nil {
		return nil, err
	}
	return delegate.(Mapper), nil
}
