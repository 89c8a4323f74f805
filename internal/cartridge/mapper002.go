package cartridge

// Mapper002 implements UxROM (mapper 2): a switchable 16 KiB PRG bank at
// 0x8000 with the last bank fixed at 0xC000, CHR RAM, and bus conflicts on
// register writes (the register overlaps ROM, so the written value is
// ANDed with the ROM byte underneath).
type Mapper002 struct {
	BaseDelegate
	baseHolder
}

func (m *Mapper002) HasBusConflicts() bool { return true }

// InitMapper maps the first bank switchable and pins the last bank
func (m *Mapper002) InitMapper() {
	m.SelectPRGPage(0, 0, PrgMemoryPrgRom)
	m.SelectPRGPage(1, -1, PrgMemoryPrgRom)
	m.SelectCHRPage(0, 0, ChrMemoryDefault)
}

// WriteRegister selects the 16 KiB bank exposed at 0x8000
func (m *Mapper002) WriteRegister(addr uint16, value uint8) {
	m.SelectPRGPage(0, int16(value), PrgMemoryPrgRom)
}
