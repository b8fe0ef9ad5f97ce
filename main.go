package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"pageturn/internal/config"
	"pageturn/internal/eventbus"
	"pageturn/internal/render"
	"pageturn/internal/ui"
)

func main() {
	// Parse command line arguments
	var dumpDir string
	flag.StringVar(&dumpDir, "dump", "", "Write composed frames as PNGs to this directory")
	flag.Parse()

	// Positional argument is the document to open; default to a small
	// synthetic document so the viewer starts with something on screen.
	docPath := "synth:12"
	if flag.NArg() > 0 {
		docPath = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("pageturn.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg := loadOrCreateConfig(configSvc)
	if dumpDir != "" {
		cfg.DumpDir = dumpDir
	}

	// Background render service picks up render requests from the bus
	renderSvc := render.NewService(bus)

	// Create UI model
	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(bus, cfg, render.NewSynthEngine(), renderSvc, ui.NewPresenter(cfg.DumpDir))
	uiModel.OpenInitial(docPath)

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Forward render completions and errors from the bus into the program
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, et := range []eventbus.EventType{
		eventbus.EventPageRendered,
		eventbus.EventRenderFailed,
		eventbus.EventDocumentOpenFailed,
		eventbus.EventCacheInvalidated,
		eventbus.EventError,
	} {
		bus.Subscribe(et, forwardEvent)
	}

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Quit cleanly when the shutdown context fires
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Persist config for the next session
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}

	close(eventChan)
	cancel()
}

// loadOrCreateConfig loads the config next to the current directory if
// present, otherwise from the user config dir, creating defaults on first
// run.
func loadOrCreateConfig(configSvc config.ConfigService) *config.Config {
	if wd, err := os.Getwd(); err == nil {
		local := filepath.Join(wd, ".pageturn.toml")
		if _, err := os.Stat(local); err == nil {
			if cfg, err := configSvc.LoadFromPath(local); err == nil {
				log.Printf("Loaded config from %s", local)
				return cfg
			}
		}
	}

	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		return config.DefaultConfig()
	}
	return cfg
}
