// Package config loads engine settings from YAML with environment variable fallbacks.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when a field is left empty in the YAML document.
const (
	EnvConfigPath   = "OXY_CONFIG"
	EnvLogLevel     = "OXY_LOG_LEVEL"
	EnvLogFormat    = "OXY_LOG_FORMAT"
	EnvApplyWorkers = "OXY_APPLY_WORKERS"
)

// Config is the root configuration document.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Scene   SceneConfig   `yaml:"scene"`
	Terrain TerrainConfig `yaml:"terrain"`
}

// LogConfig controls the process-wide logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SceneConfig controls the scene graph.
type SceneConfig struct {
	// ApplyWorkers is the size of the worker pool used to apply animation output to many nodes at once.
	ApplyWorkers    int  `yaml:"apply_workers"`
	ProfilerEnabled bool `yaml:"profiler_enabled"`
	// TickRate is the number of graph updates per second run by the engine loop.
	TickRate float64 `yaml:"tick_rate"`
}

// TerrainConfig holds the defaults used when new terrains are created.
type TerrainConfig struct {
	ChunkSize           float32 `yaml:"chunk_size"`
	HeightmapResolution int     `yaml:"heightmap_resolution"`
	MaskResolution      int     `yaml:"mask_resolution"`
	// MaskPropertyName is the material property a terrain layer binds its per-chunk mask to.
	MaskPropertyName string `yaml:"mask_property_name"`
}

// Default returns the configuration used when no file is supplied, after environment overrides.
//
// Returns:
//   - *Config: the default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a YAML configuration file. When path is empty the OXY_CONFIG environment
// variable is consulted; when that is empty too, Default is returned.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *Config: the parsed configuration with defaults filled in
//   - error: when the file cannot be read or parsed
func Load(path string) (*Config, error) {
	path = common.Coalesce(path, os.Getenv(EnvConfigPath))
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document. Fields left empty fall back to the environment, then to defaults.
//
// Parameters:
//   - data: the YAML bytes
//
// Returns:
//   - *Config: the parsed configuration
//   - error: when the document is malformed
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ApplyLogging installs the Log section into the process-wide logger.
//
// Returns:
//   - error: when the level or format is invalid
func (c *Config) ApplyLogging() error {
	return common.ConfigureLogger(c.Log.Level, c.Log.Format)
}

func (c *Config) applyDefaults() {
	c.Log.Level = common.Coalesce(c.Log.Level, os.Getenv(EnvLogLevel), "info")
	c.Log.Format = common.Coalesce(c.Log.Format, os.Getenv(EnvLogFormat), "text")

	c.Scene.ApplyWorkers = common.Coalesce(c.Scene.ApplyWorkers, envInt(EnvApplyWorkers), max(runtime.NumCPU()-1, 1))
	c.Scene.TickRate = common.Coalesce(c.Scene.TickRate, 60)

	c.Terrain.ChunkSize = common.Coalesce(c.Terrain.ChunkSize, 16)
	c.Terrain.HeightmapResolution = common.Coalesce(c.Terrain.HeightmapResolution, 33)
	c.Terrain.MaskResolution = common.Coalesce(c.Terrain.MaskResolution, 64)
	c.Terrain.MaskPropertyName = common.Coalesce(c.Terrain.MaskPropertyName, "maskTexture")
}

// envInt returns the positive integer stored in the named variable, or zero.
func envInt(name string) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
