package cartridge

import (
	"encoding/binary"
	"io"
)

// Mapper007 implements AxROM (mapper 7): 32 KiB PRG banks selected by the
// low register bits, CHR RAM, and single-screen mirroring switched by
// register bit 4.
type Mapper007 struct {
	BaseDelegate
	baseHolder

	reg uint8
}

func (m *Mapper007) PRGPageSize() uint32 { return 0x8000 }

// InitMapper maps the first 32 KiB bank and starts on screen A
func (m *Mapper007) InitMapper() {
	m.SelectPRGPage(0, 0, PrgMemoryPrgRom)
	m.SelectCHRPage(0, 0, ChrMemoryDefault)
	m.SetMirroringType(MirrorSingleScreenA)
}

// WriteRegister selects the PRG bank and the visible screen
func (m *Mapper007) WriteRegister(addr uint16, value uint8) {
	m.reg = value
	m.SelectPRGPage(0, int16(value&0x07), PrgMemoryPrgRom)
	if value&0x10 != 0 {
		m.SetMirroringType(MirrorSingleScreenB)
	} else {
		m.SetMirroringType(MirrorSingleScreenA)
	}
}

// SaveExtraState streams the last register write
func (m *Mapper007) SaveExtraState(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, m.reg)
}

// LoadExtraState restores the register and reapplies it
func (m *Mapper007) LoadExtraState(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &m.reg); err != nil {
		return err
	}
	m.WriteRegister(0x8000, m.reg)
	return nil
}
