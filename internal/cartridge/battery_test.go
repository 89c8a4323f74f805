package cartridge

import (
	"os"
	"path/filepath"
	"testing"
)

// Battery persistence tests: save RAM round trips through the .sav file,
// missing and short files load silently.

func TestBattery_SaveRamSurvivesRestart(t *testing.T) {
	saveDir := t.TempDir()
	rom := testRomData(0, 0x4000, 0x2000)
	rom.HasBattery = true

	mapper := mustNewMapper(t, rom, Options{SaveFolder: saveDir})
	mapper.WritePRG(0x6000, 0x42)
	if got := mapper.ReadPRG(0x6000); got != 0x42 {
		t.Fatalf("save RAM readback = 0x%02X, want 0x42", got)
	}
	if err := mapper.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	// A fresh instance loads the battery file before the mapper runs
	restarted := mustNewMapper(t, rom, Options{SaveFolder: saveDir})
	if got := restarted.ReadPRG(0x6000); got != 0x42 {
		t.Errorf("save RAM after restart = 0x%02X, want 0x42", got)
	}
}

func TestBattery_FileFormatIsRawBytes(t *testing.T) {
	saveDir := t.TempDir()
	rom := testRomData(0, 0x4000, 0x2000)
	rom.HasBattery = true

	mapper := mustNewMapper(t, rom, Options{SaveFolder: saveDir})
	mapper.WritePRG(0x6000, 0x99)
	if err := mapper.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(saveDir, "test-mapper000.sav"))
	if err != nil {
		t.Fatalf("battery file not written: %v", err)
	}
	if len(data) != 0x2000 {
		t.Errorf("battery file is %d bytes, want save RAM size 0x2000", len(data))
	}
	if data[0] != 0x99 {
		t.Errorf("battery file byte 0 = 0x%02X, want 0x99", data[0])
	}
}

func TestBattery_MissingFileLoadsZeroed(t *testing.T) {
	rom := testRomData(0, 0x4000, 0x2000)
	rom.HasBattery = true

	mapper := mustNewMapper(t, rom, Options{SaveFolder: t.TempDir()})
	if got := mapper.ReadPRG(0x7FFF); got != 0 {
		t.Errorf("save RAM without battery file = 0x%02X, want 0", got)
	}
}

func TestBattery_ShortFileFillsWhatItCan(t *testing.T) {
	saveDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(saveDir, "test-mapper000.sav"), []uint8{1, 2, 3, 4}, 0o644); err != nil {
		t.Fatal(err)
	}

	rom := testRomData(0, 0x4000, 0x2000)
	rom.HasBattery = true
	mapper := mustNewMapper(t, rom, Options{SaveFolder: saveDir})

	for i, want := range []uint8{1, 2, 3, 4} {
		if got := mapper.ReadPRG(0x6000 + uint16(i)); got != want {
			t.Errorf("save RAM[%d] = 0x%02X, want 0x%02X", i, got, want)
		}
	}
	if got := mapper.ReadPRG(0x6004); got != 0 {
		t.Errorf("save RAM beyond short file = 0x%02X, want 0", got)
	}
}

func TestNoBattery_NothingWrittenOnShutdown(t *testing.T) {
	saveDir := t.TempDir()
	mapper := mustNewMapper(t, testRomData(0, 0x4000, 0x2000), Options{SaveFolder: saveDir})
	mapper.WritePRG(0x6000, 0x42) // lands in work RAM instead
	if err := mapper.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	entries, err := os.ReadDir(saveDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("battery-less mapper wrote %d files", len(entries))
	}
}
