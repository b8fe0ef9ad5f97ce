package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"pageturn/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version int `toml:"version"`

	// Rendering and caching
	CacheCapacity int    `toml:"cache_capacity"` // bitmaps kept, entry count
	DumpDir       string `toml:"dump_dir"`       // write composed frames as PNG here; empty disables

	// Animation
	FlipDurationMs int     `toml:"flip_duration_ms"`
	TargetFPS      int     `toml:"target_fps"`
	ZoomStep       float64 `toml:"zoom_step"`

	// Session defaults
	ViewDefaults ViewDefaults `toml:"view"`
}

// ViewDefaults are the modes a freshly opened document starts in
type ViewDefaults struct {
	FitMode  bool `toml:"fit_mode"`
	DualPage bool `toml:"dual_page"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	pageturnDir := filepath.Join(configDir, "pageturn")
	os.MkdirAll(pageturnDir, 0755)

	return &configService{
		filePath: filepath.Join(pageturnDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if os.IsNotExist(err) {
		cfg = DefaultConfig()
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		CacheCapacity:  10,
		FlipDurationMs: 300,
		TargetFPS:      30,
		ZoomStep:       1.25,
		ViewDefaults: ViewDefaults{
			FitMode:  true,
			DualPage: false,
		},
	}
}

// normalize clamps nonsense values back to usable defaults so a hand
// edited config cannot stall the frame loop.
func (c *Config) normalize() {
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = 10
	}
	if c.FlipDurationMs <= 0 {
		c.FlipDurationMs = 300
	}
	if c.TargetFPS <= 0 || c.TargetFPS > 240 {
		c.TargetFPS = 30
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = 1.25
	}
}
