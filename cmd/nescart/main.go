// Package main implements the nescart cartridge inspector executable: it
// loads a ROM through the cartridge memory-mapping subsystem and opens a
// CHR viewer over the live mapper.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"

	"nescart/internal/app"
	"nescart/internal/version"
)

func main() {
	// Parse command line flags
	var (
		romFile     = flag.String("rom", "", "Path to NES ROM file")
		configFile  = flag.String("config", "", "Path to configuration file")
		headless    = flag.Bool("headless", false, "Run without a window (dump a frame instead)")
		dumpFile    = flag.String("dump", "patterns.ppm", "Frame dump path for headless mode")
		showInfo    = flag.Bool("info", false, "Print cartridge information and exit")
		showVersion = flag.Bool("version", false, "Show version information")
		profileCPU  = flag.Bool("profile", false, "Write a CPU profile to the current directory")
	)
	flag.Parse()

	if *showVersion {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "usage: nescart -rom <file.nes> [-info] [-headless] [-config <path>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	setupGracefulShutdown()

	// Determine config file path
	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	application, err := app.NewApplication(configPath, *headless)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("Application cleanup error: %v", err)
		}
	}()

	if err := application.LoadROM(*romFile); err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}
	fmt.Printf("🎮 %s\n", application.RomInfo())

	if *showInfo {
		return
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}

	if *headless {
		if err := application.SaveFrame(*dumpFile); err != nil {
			log.Fatalf("Failed to dump frame: %v", err)
		}
		fmt.Printf("🖥️  Frame written to %s\n", *dumpFile)
	}
}

// setupGracefulShutdown exits on Ctrl+C instead of letting Ebitengine
// swallow the signal
func setupGracefulShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		os.Exit(0)
	}()
}
