package cartridge

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Save states stream, in order: CHR RAM, mirroring mode, work RAM, save
// RAM, the 64 PRG and 64 CHR bank selections, and the four nametable slot
// indexes, all little-endian. The page tables themselves are not streamed;
// LoadState rebuilds them by replaying every recorded bank selection, so a
// restored mapper ends up with tables identical to the saved one.

// SaveState writes the base mapper state followed by the delegate's own
// payload
func (m *MapperBase) SaveState(w io.Writer) error {
	for _, field := range []any{
		m.chrRam,
		uint8(m.mirroring),
		m.workRam,
		m.saveRam,
		m.prgPageNumbers[:],
		m.chrPageNumbers[:],
		m.nametableIndexes[:],
	} {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	return m.delegate.SaveExtraState(w)
}

// LoadState restores the base mapper state, replays the recorded bank and
// nametable selections to rebuild both page tables, then reads the
// delegate's payload
func (m *MapperBase) LoadState(r io.Reader) error {
	var mirroring uint8
	for _, field := range []any{
		m.chrRam,
		&mirroring,
		m.workRam,
		m.saveRam,
		m.prgPageNumbers[:],
		m.chrPageNumbers[:],
		m.nametableIndexes[:],
	} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("load state: %w", err)
		}
	}
	m.mirroring = MirrorMode(mirroring)

	for i := uint16(0); i < 64; i++ {
		if m.prgPageNumbers[i] != unselectedPage {
			m.SelectPRGPage(i, int16(uint16(m.prgPageNumbers[i])), PrgMemoryPrgRom)
		}
	}
	for i := uint16(0); i < 64; i++ {
		if m.chrPageNumbers[i] != unselectedPage {
			m.SelectCHRPage(i, uint16(m.chrPageNumbers[i]), ChrMemoryDefault)
		}
	}
	for i := uint8(0); i < 4; i++ {
		m.SetNametable(i, m.nametableIndexes[i])
	}

	return m.delegate.LoadExtraState(r)
}
