package cartridge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nescart/internal/cheats"
)

// ErrInvalidArgument reports a mapping request the page-table machinery
// cannot represent: a range that is not 256-byte aligned, an unknown memory
// type, or a source arena that does not exist on this board.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// prgAddressRangeSize is the CPU window PRG-ROM banks appear in
	// (0x8000-0xFFFF)
	prgAddressRangeSize = 0x8000

	// nametableSize is one PPU nametable page
	nametableSize = 0x400

	// unselectedPage marks a bank slot no Select*Page call has touched yet.
	// Save-state restore skips these slots when replaying selections.
	unselectedPage = 0xEEEEEEEE
)

// MapperBase implements the machinery every concrete mapper shares: the
// 256-entry CPU and PPU page tables, the bank-switching primitives that
// mutate them, the register-address set, nametable mirroring, battery
// persistence and save states. A concrete mapper embeds a *MapperBase and
// supplies the board-specific geometry through the Delegate interface.
//
// All methods assume the single-threaded bus model: nothing here blocks or
// locks, and the effect of a register write is visible to the very next
// bus access.
type MapperBase struct {
	delegate Delegate
	opts     Options

	romFilename     string
	batteryFilename string
	mirroring       MirrorMode
	hasBattery      bool
	isPalRom        bool
	crc32           uint32

	// Arenas. Fixed-size after Initialize, except the lazily allocated
	// cartridge nametable pages.
	prgRom         []uint8
	originalPrgRom []uint8
	chrRom         []uint8
	chrRam         []uint8
	saveRam        []uint8
	workRam        []uint8

	prgSize    uint32
	chrRomSize uint32
	chrRamSize uint32
	// Cached at Initialize so Shutdown never consults the delegate
	saveRamSize uint32
	workRamSize uint32

	onlyChrRam        bool
	allowRegisterRead bool
	hasBusConflicts   bool

	// isRegisterAddr marks the CPU addresses that dispatch to the
	// delegate's register handlers instead of the page tables
	isRegisterAddr [0x10000]bool

	// Page tables: one entry per 256-byte window of the 16-bit address
	// space. pages and access are always updated together; refs records
	// which arena byte each entry starts at for the absolute-address
	// translation helpers.
	prgPages  [256][]uint8
	prgAccess [256]MemoryAccess
	prgRefs   [256]pageRef
	chrPages  [256][]uint8
	chrAccess [256]MemoryAccess
	chrRefs   [256]pageRef

	// Last selected bank per logical slot, replayed on save-state load
	prgPageNumbers [64]uint32
	chrPageNumbers [64]uint32

	// Nametable sources: indexes 0-1 are the console's internal pages
	// (borrowed, never freed here), 2-3 are cartridge RAM allocated on
	// first use, 4-9 are mapper-supplied buffers.
	nesNametableRam  [2][]uint8
	cartNametableRam [8][]uint8
	nametableIndexes [4]uint8

	cheatEngine *cheats.Engine
}

func newMapperBase(delegate Delegate, opts Options) *MapperBase {
	return &MapperBase{
		delegate:    delegate,
		opts:        opts,
		cheatEngine: opts.Cheats,
	}
}

// Initialize copies the ROM into owned arenas, allocates the RAM arenas,
// resets the page tables and runs the delegate's init hooks. It must be
// called exactly once, before any bus access.
func (m *MapperBase) Initialize(rom *RomData) error {
	m.romFilename = rom.Filename
	m.batteryFilename = m.batteryFilePath()
	m.saveRamSize = m.delegate.SaveRAMSize()
	m.workRamSize = m.delegate.WorkRAMSize()
	m.allowRegisterRead = m.delegate.AllowRegisterRead()

	m.AddRegisterRange(m.delegate.RegisterStartAddress(), m.delegate.RegisterEndAddress())

	m.mirroring = rom.Mirroring
	m.prgSize = uint32(len(rom.PrgRom))
	m.chrRomSize = uint32(len(rom.ChrRom))
	if m.prgSize == 0 {
		return fmt.Errorf("initialize: empty PRG ROM: %w", ErrInvalidArgument)
	}

	m.prgRom = make([]uint8, m.prgSize)
	copy(m.prgRom, rom.PrgRom)
	m.originalPrgRom = make([]uint8, m.prgSize)
	copy(m.originalPrgRom, rom.PrgRom)
	m.chrRom = make([]uint8, m.chrRomSize)
	copy(m.chrRom, rom.ChrRom)

	m.hasBattery = rom.HasBattery || m.delegate.ForceBattery()
	m.isPalRom = rom.IsPalRom
	m.crc32 = rom.Crc32
	m.hasBusConflicts = m.delegate.HasBusConflicts()

	m.saveRam = make([]uint8, m.saveRamSize)
	m.workRam = make([]uint8, m.workRamSize)

	for i := range m.prgPageNumbers {
		m.prgPageNumbers[i] = unselectedPage
		m.chrPageNumbers[i] = unselectedPage
	}

	// Page tables start fully unmapped; every slot reads as open bus
	// until the delegate installs its mappings.
	for i := 0; i < 256; i++ {
		m.prgPages[i] = nil
		m.prgAccess[i] = AccessNone
		m.prgRefs[i] = pageRef{}
		m.chrPages[i] = nil
		m.chrAccess[i] = AccessNone
		m.chrRefs[i] = pageRef{}
	}

	if m.hasBattery {
		m.loadBattery()
	}

	if m.chrRomSize == 0 {
		// Boards without CHR ROM carry CHR RAM instead
		m.onlyChrRam = true
		m.initializeChrRam()
		m.chrRomSize = m.chrRamSize
	}

	// Default work/save RAM mapping in the 0x6000-0x7FFF window
	ramType := PrgMemoryWorkRam
	if m.hasBattery {
		ramType = PrgMemorySaveRam
	}
	if err := m.SetCpuMemoryMapping(0x6000, 0x7FFF, 0, ramType, AccessDefault); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	m.delegate.InitMapper()
	m.delegate.InitMapperFromRom(rom)

	if m.cheatEngine != nil {
		m.cheatEngine.RegisterListener(m)
		m.applyCheats()
	}
	return nil
}

// Shutdown flushes battery RAM to disk and detaches from the cheat bus.
// The arenas themselves are reclaimed by the garbage collector.
func (m *MapperBase) Shutdown() error {
	var err error
	if m.hasBattery {
		err = m.SaveBattery()
	}
	if m.cheatEngine != nil {
		m.cheatEngine.UnregisterListener(m)
	}
	return err
}

// internalPrgPageSize caps the delegate's PRG page size at the ROM size so
// a page never spans past the end of the arena
func (m *MapperBase) internalPrgPageSize() uint32 {
	return min(m.delegate.PRGPageSize(), m.prgSize)
}

func (m *MapperBase) internalChrPageSize() uint32 {
	return min(m.delegate.CHRPageSize(), m.chrRomSize)
}

// PRGPageCount returns how many PRG pages the ROM holds at the effective
// page size. ROMs smaller than one page count as a single page.
func (m *MapperBase) PRGPageCount() uint32 {
	return m.prgSize / m.internalPrgPageSize()
}

// CHRPageCount returns how many CHR pages the active CHR memory holds
func (m *MapperBase) CHRPageCount() uint32 {
	return m.chrRomSize / m.internalChrPageSize()
}

func (m *MapperBase) initializeChrRam() {
	m.chrRamSize = m.delegate.CHRRAMSize()
	if m.chrRamSize > 0 {
		m.chrRam = make([]uint8, m.chrRamSize)
	}
}

// SetCpuMemoryMapping installs pageNumber of the selected arena into every
// 256-byte slot of [startAddr, endAddr]. Both bounds must sit on 256-byte
// page boundaries. Negative page numbers count back from the end of the
// arena; positive ones wrap modulo the page count.
func (m *MapperBase) SetCpuMemoryMapping(startAddr, endAddr uint16, pageNumber int16, memType PrgMemoryType, access MemoryAccess) error {
	if startAddr&0xFF != 0 || endAddr&0xFF != 0xFF {
		return fmt.Errorf("cpu mapping %04X-%04X must span whole 256-byte pages: %w", startAddr, endAddr, ErrInvalidArgument)
	}

	var source []uint8
	var kind memorySource
	var pageCount, pageSize uint32
	defaultAccess := AccessRead
	switch memType {
	case PrgMemoryPrgRom:
		source = m.prgRom
		kind = sourcePrgRom
		pageCount = m.PRGPageCount()
		pageSize = m.internalPrgPageSize()
	case PrgMemorySaveRam:
		source = m.saveRam
		kind = sourceSaveRam
		pageSize = m.delegate.SaveRAMPageSize()
		pageCount = m.saveRamSize / pageSize
		defaultAccess = AccessReadWrite
	case PrgMemoryWorkRam:
		source = m.workRam
		kind = sourceWorkRam
		pageSize = m.delegate.WorkRAMPageSize()
		pageCount = m.workRamSize / pageSize
		defaultAccess = AccessReadWrite
	default:
		return fmt.Errorf("prg memory type %d: %w", memType, ErrInvalidArgument)
	}
	if pageCount == 0 {
		return fmt.Errorf("no %s present on this board: %w", prgMemoryTypeName(memType), ErrInvalidArgument)
	}

	page := int32(pageNumber)
	if page < 0 {
		// Page counts are not always powers of two, so wrap explicitly
		// instead of masking
		page += int32(pageCount)
		if page < 0 {
			return fmt.Errorf("page %d out of range for %d pages: %w", pageNumber, pageCount, ErrInvalidArgument)
		}
	} else {
		page %= int32(pageCount)
	}
	offset := uint32(page) * pageSize

	if access == AccessDefault {
		access = defaultAccess
	}
	for i, j := startAddr>>8, uint32(0); i <= endAddr>>8; i, j = i+1, j+1 {
		o := offset + j*0x100
		m.prgPages[i] = source[o : o+0x100]
		m.prgAccess[i] = access
		m.prgRefs[i] = pageRef{kind, o}
	}
	return nil
}

func prgMemoryTypeName(t PrgMemoryType) string {
	switch t {
	case PrgMemoryPrgRom:
		return "PRG ROM"
	case PrgMemorySaveRam:
		return "save RAM"
	case PrgMemoryWorkRam:
		return "work RAM"
	}
	return "memory"
}

// SetPpuMemoryMapping installs pageNumber of the selected CHR arena into
// every 256-byte slot of [startAddr, endAddr]
func (m *MapperBase) SetPpuMemoryMapping(startAddr, endAddr, pageNumber uint16, memType ChrMemoryType, access MemoryAccess) error {
	var source []uint8
	var kind memorySource
	var pageCount, pageSize uint32
	defaultAccess := AccessRead
	switch memType {
	case ChrMemoryDefault:
		pageCount = m.CHRPageCount()
		pageSize = m.internalChrPageSize()
		if m.onlyChrRam {
			source = m.chrRam
			kind = sourceChrRam
			defaultAccess = AccessReadWrite
		} else {
			source = m.chrRom
			kind = sourceChrRom
		}
	case ChrMemoryChrRom:
		pageCount = m.CHRPageCount()
		pageSize = m.internalChrPageSize()
		source = m.chrRom
		kind = sourceChrRom
	case ChrMemoryChrRam:
		pageSize = m.delegate.CHRRAMPageSize()
		pageCount = m.chrRamSize / pageSize
		source = m.chrRam
		kind = sourceChrRam
		defaultAccess = AccessReadWrite
	default:
		return fmt.Errorf("chr memory type %d: %w", memType, ErrInvalidArgument)
	}
	if pageCount == 0 {
		return fmt.Errorf("no CHR memory present on this board: %w", ErrInvalidArgument)
	}

	offset := (uint32(pageNumber) % pageCount) * pageSize
	if access == AccessDefault {
		access = defaultAccess
	}
	return m.setPpuPages(startAddr, endAddr, source[offset:], pageRef{kind, offset}, access)
}

// SetPpuMemoryMappingSource installs a raw byte buffer into the PPU page
// table. A nil source unmaps the range, producing open-bus behavior.
func (m *MapperBase) SetPpuMemoryMappingSource(startAddr, endAddr uint16, source []uint8, access MemoryAccess) error {
	if access == AccessDefault {
		access = AccessReadWrite
	}
	return m.setPpuPages(startAddr, endAddr, source, pageRef{source: sourceExternal}, access)
}

// RemovePpuMemoryMapping unmaps a PPU range, simulating open bus
func (m *MapperBase) RemovePpuMemoryMapping(startAddr, endAddr uint16) error {
	return m.setPpuPages(startAddr, endAddr, nil, pageRef{}, AccessNone)
}

func (m *MapperBase) setPpuPages(startAddr, endAddr uint16, source []uint8, ref pageRef, access MemoryAccess) error {
	if startAddr&0xFF != 0 || endAddr&0xFF != 0xFF {
		return fmt.Errorf("ppu mapping %04X-%04X must span whole 256-byte pages: %w", startAddr, endAddr, ErrInvalidArgument)
	}

	for i, j := startAddr>>8, uint32(0); i <= endAddr>>8; i, j = i+1, j+1 {
		if source == nil {
			m.chrPages[i] = nil
			m.chrAccess[i] = AccessNone
			m.chrRefs[i] = pageRef{}
			continue
		}
		o := j * 0x100
		m.chrPages[i] = source[o : o+0x100]
		m.chrAccess[i] = access
		m.chrRefs[i] = pageRef{ref.source, ref.offset + o}
	}
	return nil
}

// SelectPRGPage maps one PRG page into the CPU window at
// 0x8000 + slot*pageSize and records the selection for save-state replay.
// ROMs smaller than the full 32 KiB window are repeated across it,
// whichever slot was asked for.
func (m *MapperBase) SelectPRGPage(slot uint16, page int16, memType PrgMemoryType) {
	m.prgPageNumbers[slot] = uint32(uint16(page))

	if m.prgSize < prgAddressRangeSize {
		repeats := uint16(prgAddressRangeSize / m.prgSize)
		for i := uint16(0); i < repeats; i++ {
			startAddr := 0x8000 + i*uint16(m.prgSize)
			endAddr := startAddr + uint16(m.prgSize) - 1
			_ = m.SetCpuMemoryMapping(startAddr, endAddr, 0, memType, AccessDefault)
		}
	} else {
		pageSize := uint16(m.internalPrgPageSize())
		startAddr := 0x8000 + slot*pageSize
		endAddr := startAddr + pageSize - 1
		_ = m.SetCpuMemoryMapping(startAddr, endAddr, page, memType, AccessDefault)
	}
}

// SelectPrgPage2x maps two consecutive PRG pages starting at slot*2
func (m *MapperBase) SelectPrgPage2x(slot uint16, page int16, memType PrgMemoryType) {
	m.SelectPRGPage(slot*2, page, memType)
	m.SelectPRGPage(slot*2+1, page+1, memType)
}

// SelectPrgPage4x maps four consecutive PRG pages starting at slot*4
func (m *MapperBase) SelectPrgPage4x(slot uint16, page int16, memType PrgMemoryType) {
	m.SelectPrgPage2x(slot*2, page, memType)
	m.SelectPrgPage2x(slot*2+1, page+2, memType)
}

// SelectCHRPage maps one CHR page into the PPU window at slot*pageSize and
// records the selection for save-state replay
func (m *MapperBase) SelectCHRPage(slot, page uint16, memType ChrMemoryType) {
	m.chrPageNumbers[slot] = uint32(page)

	pageSize := uint16(m.internalChrPageSize())
	startAddr := slot * pageSize
	endAddr := startAddr + pageSize - 1
	_ = m.SetPpuMemoryMapping(startAddr, endAddr, page, memType, AccessDefault)
}

// SelectChrPage2x maps two consecutive CHR pages starting at slot*2
func (m *MapperBase) SelectChrPage2x(slot, page uint16, memType ChrMemoryType) {
	m.SelectCHRPage(slot*2, page, memType)
	m.SelectCHRPage(slot*2+1, page+1, memType)
}

// SelectChrPage4x maps four consecutive CHR pages starting at slot*4
func (m *MapperBase) SelectChrPage4x(slot, page uint16, memType ChrMemoryType) {
	m.SelectChrPage2x(slot*2, page, memType)
	m.SelectChrPage2x(slot*2+1, page+2, memType)
}

// SelectChrPage8x maps eight consecutive CHR pages starting at slot*8
func (m *MapperBase) SelectChrPage8x(slot, page uint16, memType ChrMemoryType) {
	m.SelectChrPage4x(slot*2, page, memType)
	m.SelectChrPage4x(slot*2+1, page+4, memType)
}

// AddRegisterRange marks an inclusive CPU address range as register space
func (m *MapperBase) AddRegisterRange(startAddr, endAddr uint16) {
	for i := uint32(startAddr); i <= uint32(endAddr); i++ {
		m.isRegisterAddr[i] = true
	}
}

// RemoveRegisterRange clears an inclusive CPU address range from register
// space
func (m *MapperBase) RemoveRegisterRange(startAddr, endAddr uint16) {
	for i := uint32(startAddr); i <= uint32(endAddr); i++ {
		m.isRegisterAddr[i] = false
	}
}

// ReadPRG handles a CPU read. Register addresses dispatch to the delegate
// when register reads are enabled; otherwise the page table decides, and
// unmapped or read-protected slots return the open-bus value (the high
// byte of the address, approximating the lingering data bus).
func (m *MapperBase) ReadPRG(addr uint16) uint8 {
	if m.allowRegisterRead && m.isRegisterAddr[addr] {
		return m.delegate.ReadRegister(addr)
	}
	if m.prgAccess[addr>>8]&AccessRead != 0 {
		return m.prgPages[addr>>8][addr&0xFF]
	}
	return uint8(addr >> 8)
}

// WritePRG handles a CPU write. Register addresses dispatch to the
// delegate, ANDing the value with the mapped ROM byte first on boards with
// bus conflicts; everything else goes through the page table, and writes to
// write-protected slots are dropped.
func (m *MapperBase) WritePRG(addr uint16, value uint8) {
	if m.isRegisterAddr[addr] {
		if m.hasBusConflicts {
			if page := m.prgPages[addr>>8]; page != nil {
				value &= page[addr&0xFF]
			}
		}
		m.delegate.WriteRegister(addr, value)
		return
	}
	m.writePrgRam(addr, value)
}

func (m *MapperBase) writePrgRam(addr uint16, value uint8) {
	if m.prgAccess[addr>>8]&AccessWrite != 0 {
		m.prgPages[addr>>8][addr&0xFF] = value
	}
}

// internalReadPRG reads through the PRG page table without triggering
// register dispatch. Concrete mappers use it to peek at mapped code bytes.
func (m *MapperBase) internalReadPRG(addr uint16) uint8 {
	if page := m.prgPages[addr>>8]; page != nil {
		return page[addr&0xFF]
	}
	return 0
}

// ReadCHR handles a PPU read; unmapped or read-protected slots return 0
func (m *MapperBase) ReadCHR(addr uint16) uint8 {
	if m.chrAccess[addr>>8]&AccessRead != 0 {
		return m.chrPages[addr>>8][addr&0xFF]
	}
	return 0
}

// WriteCHR handles a PPU write; writes to write-protected slots are dropped
func (m *MapperBase) WriteCHR(addr uint16, value uint8) {
	if m.chrAccess[addr>>8]&AccessWrite != 0 {
		m.chrPages[addr>>8][addr&0xFF] = value
	}
}

// NotifyVRAMAddressChange is called when the address on the PPU memory bus
// changes. The base does nothing; scanline-counting mappers override it.
func (m *MapperBase) NotifyVRAMAddressChange(addr uint16) {
}

// GetMemoryRanges reports the CPU bus ranges this mapper claims
func (m *MapperBase) GetMemoryRanges(ranges *MemoryRanges) {
	ranges.AddHandler(MemoryRead, 0x4018, 0xFFFF)
	ranges.AddHandler(MemoryWrite, 0x4018, 0xFFFF)
}

// SetDefaultNametables hands the mapper the console's two internal
// nametable pages and installs the current mirroring arrangement. The
// buffers are borrowed for the lifetime of the mapper.
func (m *MapperBase) SetDefaultNametables(nametableA, nametableB []uint8) {
	m.nesNametableRam[0] = nametableA
	m.nesNametableRam[1] = nametableB
	m.SetMirroringType(m.mirroring)
}

// AddNametable registers a mapper-supplied nametable buffer under an index
// from 4 to 9. Indexes 0-3 belong to the console pages and the two
// cartridge RAM pages; indexes above 9 do not fit the nametable table.
func (m *MapperBase) AddNametable(index uint8, nametable []uint8) {
	if index < 4 {
		panic("cartridge: AddNametable index must be >= 4")
	}
	m.cartNametableRam[index-2] = nametable
}

func (m *MapperBase) nametable(index uint8) []uint8 {
	if index <= 1 {
		return m.nesNametableRam[index]
	}
	return m.cartNametableRam[index-2]
}

// SetNametable points one of the four PPU nametable slots at the physical
// page identified by index, allocating the cartridge RAM pages on first use
func (m *MapperBase) SetNametable(slot, index uint8) {
	if index == 2 && m.cartNametableRam[0] == nil {
		m.cartNametableRam[0] = make([]uint8, nametableSize)
	}
	if index == 3 && m.cartNametableRam[1] == nil {
		m.cartNametableRam[1] = make([]uint8, nametableSize)
	}

	m.nametableIndexes[slot] = index

	startAddr := 0x2000 + uint16(slot)*nametableSize
	_ = m.setPpuPages(startAddr, startAddr+nametableSize-1, m.nametable(index),
		pageRef{sourceNametable, uint32(index) * nametableSize}, AccessReadWrite)
}

// SetNametables configures all four nametable slots at once
func (m *MapperBase) SetNametables(index0, index1, index2, index3 uint8) {
	m.SetNametable(0, index0)
	m.SetNametable(1, index1)
	m.SetNametable(2, index2)
	m.SetNametable(3, index3)
}

// SetMirroringType installs one of the standard nametable arrangements
func (m *MapperBase) SetMirroringType(mode MirrorMode) {
	m.mirroring = mode
	switch mode {
	case MirrorVertical:
		m.SetNametables(0, 1, 0, 1)
	case MirrorHorizontal:
		m.SetNametables(0, 0, 1, 1)
	case MirrorFourScreen:
		m.SetNametables(0, 1, 2, 3)
	case MirrorSingleScreenA:
		m.SetNametables(0, 0, 0, 0)
	case MirrorSingleScreenB:
		m.SetNametables(1, 1, 1, 1)
	}
}

// MirroringType returns the current nametable arrangement
func (m *MapperBase) MirroringType() MirrorMode {
	return m.mirroring
}

// ToAbsoluteAddress translates a live CPU address to its byte offset in
// PRG ROM, or -1 if the slot does not currently point into PRG ROM
func (m *MapperBase) ToAbsoluteAddress(addr uint16) int32 {
	if ref := m.prgRefs[addr>>8]; ref.source == sourcePrgRom {
		return int32(ref.offset) + int32(addr&0xFF)
	}
	return -1
}

// ToAbsoluteRAMAddress translates a live CPU address to its byte offset in
// work RAM, or -1
func (m *MapperBase) ToAbsoluteRAMAddress(addr uint16) int32 {
	if ref := m.prgRefs[addr>>8]; ref.source == sourceWorkRam {
		return int32(ref.offset) + int32(addr&0xFF)
	}
	return -1
}

// ToAbsoluteCHRAddress translates a live PPU address to its byte offset in
// CHR ROM, or -1
func (m *MapperBase) ToAbsoluteCHRAddress(addr uint16) int32 {
	if ref := m.chrRefs[addr>>8]; ref.source == sourceChrRom {
		return int32(ref.offset) + int32(addr&0xFF)
	}
	return -1
}

// FromAbsoluteAddress finds a CPU address whose slot currently exposes the
// given PRG-ROM byte offset, scanning slots from low addresses up, or -1 if
// the offset is not mapped anywhere
func (m *MapperBase) FromAbsoluteAddress(offset uint32) int32 {
	for i := 0; i < 256; i++ {
		ref := m.prgRefs[i]
		if ref.source == sourcePrgRom && offset >= ref.offset && offset < ref.offset+0x100 {
			return int32(i)<<8 + int32(offset-ref.offset)
		}
	}
	// Offset is currently not mapped
	return -1
}

// HasBattery reports whether save RAM persists to disk
func (m *MapperBase) HasBattery() bool {
	return m.hasBattery
}

// IsPalRom reports whether the ROM targets a PAL console
func (m *MapperBase) IsPalRom() bool {
	return m.isPalRom
}

// Crc32 returns the ROM checksum recorded at load time
func (m *MapperBase) Crc32() uint32 {
	return m.crc32
}

// BatteryFilename returns the path battery RAM is persisted to
func (m *MapperBase) BatteryFilename() string {
	return m.batteryFilename
}

// PrgRom returns the live PRG-ROM arena. Debugger and cheat tooling read
// it; the arena is shared, not a copy.
func (m *MapperBase) PrgRom() []uint8 {
	return m.prgRom
}

// WorkRam returns the live work-RAM arena
func (m *MapperBase) WorkRam() []uint8 {
	return m.workRam
}

func (m *MapperBase) batteryFilePath() string {
	name := filepath.Base(m.romFilename)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".sav"
	folder := m.opts.SaveFolder
	if folder == "" {
		folder = filepath.Dir(m.romFilename)
	}
	return filepath.Join(folder, name)
}

// loadBattery reads persisted save RAM and installs the default save-RAM
// mapping most battery boards use. A missing file leaves the RAM zeroed; a
// short file fills what it can.
func (m *MapperBase) loadBattery() {
	if data, err := os.ReadFile(m.batteryFilename); err == nil {
		copy(m.saveRam, data)
	}
	_ = m.SetCpuMemoryMapping(0x6000, 0x7FFF, 0, PrgMemorySaveRam, AccessDefault)
}

// SaveBattery writes save RAM to disk as raw bytes, no header
func (m *MapperBase) SaveBattery() error {
	if err := os.WriteFile(m.batteryFilename, m.saveRam, 0o644); err != nil {
		return fmt.Errorf("failed to write battery file: %w", err)
	}
	return nil
}

// RestoreOriginalPrgRom rewinds the PRG arena to its state at load time
func (m *MapperBase) RestoreOriginalPrgRom() {
	copy(m.prgRom, m.originalPrgRom)
}

func (m *MapperBase) applyCheats() {
	m.RestoreOriginalPrgRom()
	m.cheatEngine.ApplyPrgCodes(m.prgRom)
}

// ProcessNotification reapplies the cheat list whenever it changes
func (m *MapperBase) ProcessNotification(n cheats.Notification) {
	switch n {
	case cheats.CheatAdded, cheats.CheatRemoved:
		if m.cheatEngine != nil {
			m.applyCheats()
		}
	}
}
