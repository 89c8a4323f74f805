package cartridge

import "testing"

// Nametable switchboard tests: the five mirroring arrangements, lazy
// cartridge nametable allocation and mapper-supplied pages.

func TestHorizontalMirroring_SharesTopAndBottomPairs(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{})
	setupNametables(mapper)
	mapper.SetMirroringType(MirrorHorizontal)

	mapper.WriteCHR(0x2000, 0x42)
	if got := mapper.ReadCHR(0x2400); got != 0x42 {
		t.Errorf("horizontal: 0x2400 = 0x%02X, want shared byte 0x42", got)
	}
	if got := mapper.ReadCHR(0x2800); got == 0x42 {
		t.Errorf("horizontal: 0x2800 shares with 0x2000, want distinct page")
	}
	if got := mapper.ReadCHR(0x2C00); got == 0x42 {
		t.Errorf("horizontal: 0x2C00 shares with 0x2000, want distinct page")
	}

	mapper.WriteCHR(0x2800, 0x24)
	if got := mapper.ReadCHR(0x2C00); got != 0x24 {
		t.Errorf("horizontal: 0x2C00 = 0x%02X, want shared byte 0x24", got)
	}
}

func TestVerticalMirroring_SharesAlternatingSlots(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{})
	setupNametables(mapper)
	mapper.SetMirroringType(MirrorVertical)

	mapper.WriteCHR(0x2000, 0x11)
	mapper.WriteCHR(0x2400, 0x22)
	if got := mapper.ReadCHR(0x2800); got != 0x11 {
		t.Errorf("vertical: 0x2800 = 0x%02X, want 0x11", got)
	}
	if got := mapper.ReadCHR(0x2C00); got != 0x22 {
		t.Errorf("vertical: 0x2C00 = 0x%02X, want 0x22", got)
	}
}

func TestSingleScreenMirroring_AllSlotsShare(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{})
	ntA, ntB := setupNametables(mapper)

	mapper.SetMirroringType(MirrorSingleScreenA)
	mapper.WriteCHR(0x2C00, 0x7A)
	for _, addr := range []uint16{0x2000, 0x2400, 0x2800} {
		if got := mapper.ReadCHR(addr); got != 0x7A {
			t.Errorf("screen A: 0x%04X = 0x%02X, want 0x7A", addr, got)
		}
	}
	if ntA[0] != 0x7A {
		t.Errorf("screen A writes landed in 0x%02X, want console page A", ntA[0])
	}

	mapper.SetMirroringType(MirrorSingleScreenB)
	mapper.WriteCHR(0x2000, 0x7B)
	if ntB[0] != 0x7B {
		t.Errorf("screen B writes landed in 0x%02X, want console page B", ntB[0])
	}
}

func TestFourScreenMirroring_AllSlotsDistinct(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{})
	setupNametables(mapper)
	mapper.SetMirroringType(MirrorFourScreen)

	for slot := uint16(0); slot < 4; slot++ {
		mapper.WriteCHR(0x2000+slot*0x400, uint8(0xA0+slot))
	}
	for slot := uint16(0); slot < 4; slot++ {
		if got := mapper.ReadCHR(0x2000 + slot*0x400); got != uint8(0xA0+slot) {
			t.Errorf("four-screen slot %d = 0x%02X, want 0x%02X", slot, got, 0xA0+slot)
		}
	}
}

func TestCartNametables_AllocatedLazily(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{})
	base := mapper.(*Mapper000).MapperBase
	setupNametables(mapper)

	if base.cartNametableRam[0] != nil || base.cartNametableRam[1] != nil {
		t.Fatal("cartridge nametable RAM allocated before first use")
	}
	base.SetNametable(0, 2)
	if base.cartNametableRam[0] == nil {
		t.Fatal("cartridge nametable RAM 0 not allocated on selection")
	}
	if base.cartNametableRam[1] != nil {
		t.Fatal("cartridge nametable RAM 1 allocated without selection")
	}
}

func TestAddNametable_InstallsMapperSuppliedPage(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{})
	base := mapper.(*Mapper000).MapperBase
	setupNametables(mapper)

	extra := make([]uint8, nametableSize)
	extra[0x10] = 0xEE
	base.AddNametable(4, extra)
	base.SetNametable(1, 4)

	if got := base.ReadCHR(0x2410); got != 0xEE {
		t.Errorf("mapper-supplied nametable read 0x%02X, want 0xEE", got)
	}
}

func TestAddNametable_RejectsReservedIndexes(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{})
	base := mapper.(*Mapper000).MapperBase

	defer func() {
		if recover() == nil {
			t.Fatal("AddNametable(2, ...) did not panic")
		}
	}()
	base.AddNametable(2, make([]uint8, nametableSize))
}
