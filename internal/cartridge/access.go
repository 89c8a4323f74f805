package cartridge

// MemoryAccess describes which bus operations a 256-byte page allows.
// AccessDefault asks the mapping primitive to pick the natural access for
// the source memory (read-only for ROM, read/write for RAM).
type MemoryAccess int8

const (
	AccessDefault   MemoryAccess = -1
	AccessNone      MemoryAccess = 0
	AccessRead      MemoryAccess = 1 << 0
	AccessWrite     MemoryAccess = 1 << 1
	AccessReadWrite MemoryAccess = AccessRead | AccessWrite
)

// PrgMemoryType selects the source arena for a CPU-side mapping
type PrgMemoryType uint8

const (
	PrgMemoryPrgRom PrgMemoryType = iota
	PrgMemorySaveRam
	PrgMemoryWorkRam
)

// ChrMemoryType selects the source arena for a PPU-side mapping.
// ChrMemoryDefault resolves to CHR RAM on CHR-RAM-only boards and to
// CHR ROM everywhere else.
type ChrMemoryType uint8

const (
	ChrMemoryDefault ChrMemoryType = iota
	ChrMemoryChrRom
	ChrMemoryChrRam
)

// memorySource identifies the arena a page-table entry points into.
// Recording it next to the page slice keeps the absolute-address
// translation helpers free of pointer arithmetic.
type memorySource uint8

const (
	sourceNone memorySource = iota
	sourcePrgRom
	sourceSaveRam
	sourceWorkRam
	sourceChrRom
	sourceChrRam
	sourceNametable
	sourceExternal
)

// pageRef records the arena and byte offset a 256-byte slot starts at
type pageRef struct {
	source memorySource
	offset uint32
}
