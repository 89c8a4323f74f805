package cartridge

import "testing"

// Behavior tests for the bundled boards.

func TestMapper002_SwitchesPrgBankAtC000Fixed(t *testing.T) {
	rom := testRomData(2, 0x20000, 0)
	mapper := mustNewMapper(t, rom, Options{})

	lastBank := rom.PrgRom[0x20000-0x4000]
	if got := mapper.ReadPRG(0xC000); got != lastBank {
		t.Fatalf("fixed bank read 0x%02X, want 0x%02X", got, lastBank)
	}

	// 0x80FF holds 0xFF in bank 0, so the bus-conflict AND passes the
	// bank number through unchanged
	mapper.WritePRG(0x80FF, 2)
	if got := mapper.ReadPRG(0x8000); got != rom.PrgRom[2*0x4000] {
		t.Errorf("switched bank read 0x%02X, want bank-2 byte 0x%02X", got, rom.PrgRom[2*0x4000])
	}
	if got := mapper.ReadPRG(0xC000); got != lastBank {
		t.Errorf("fixed bank moved after switch: 0x%02X, want 0x%02X", got, lastBank)
	}
}

func TestMapper002_ChrRamIsWritable(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(2, 0x20000, 0), Options{})

	mapper.WriteCHR(0x0456, 0x5C)
	if got := mapper.ReadCHR(0x0456); got != 0x5C {
		t.Errorf("CHR RAM readback = 0x%02X, want 0x5C", got)
	}
}

func TestMapper003_SwitchesChrBank(t *testing.T) {
	rom := testRomData(3, 0x8000, 0x8000)
	mapper := mustNewMapper(t, rom, Options{})

	if got := mapper.ReadCHR(0x0000); got != rom.ChrRom[0] {
		t.Fatalf("initial CHR read 0x%02X, want 0x%02X", got, rom.ChrRom[0])
	}

	mapper.WritePRG(0x80FF, 2)
	if got := mapper.ReadCHR(0x0000); got != rom.ChrRom[2*0x2000] {
		t.Errorf("switched CHR read 0x%02X, want bank-2 byte 0x%02X", got, rom.ChrRom[2*0x2000])
	}

	// CHR ROM stays write-protected
	mapper.WriteCHR(0x0000, 0x12)
	if got := mapper.ReadCHR(0x0000); got == 0x12 {
		t.Errorf("write to CHR ROM stuck")
	}
}

func TestMapper007_SwitchesBankAndScreen(t *testing.T) {
	rom := testRomData(7, 0x40000, 0)
	mapper := mustNewMapper(t, rom, Options{})
	setupNametables(mapper)

	if mapper.MirroringType() != MirrorSingleScreenA {
		t.Fatalf("initial mirroring %v, want screen A", mapper.MirroringType())
	}

	mapper.WritePRG(0x8000, 0x15) // bank 5, screen B
	if got := mapper.ReadPRG(0x8000); got != rom.PrgRom[5*0x8000] {
		t.Errorf("bank read 0x%02X, want bank-5 byte 0x%02X", got, rom.PrgRom[5*0x8000])
	}
	if mapper.MirroringType() != MirrorSingleScreenB {
		t.Errorf("mirroring %v, want screen B", mapper.MirroringType())
	}

	mapper.WritePRG(0x8000, 0x01) // bank 1, screen A
	if mapper.MirroringType() != MirrorSingleScreenA {
		t.Errorf("mirroring %v, want screen A", mapper.MirroringType())
	}
}

func TestMapper000_WorkRamWithoutBattery(t *testing.T) {
	mapper := mustNewMapper(t, testRomData(0, 0x8000, 0x2000), Options{})

	mapper.WritePRG(0x6ABC, 0x31)
	if got := mapper.ReadPRG(0x6ABC); got != 0x31 {
		t.Errorf("work RAM readback = 0x%02X, want 0x31", got)
	}
	// ROM space rejects stray writes
	mapper.WritePRG(0x8000, 0x00)
	if got := mapper.ReadPRG(0x8000); got != mapper.(*Mapper000).prgRom[0] {
		t.Errorf("PRG ROM modified by write")
	}
}
