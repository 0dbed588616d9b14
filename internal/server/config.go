package server

import (
	"log"
	"runtime"
	"strconv"
	"strings"

	"github.com/ironsheep/image-transform-mcp/internal/cache"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel   = "IMAGE_MCP_LOG_LEVEL"
	EnvTileSize   = "IMAGE_TRANSFORM_TILE_SIZE"
	EnvWorkers    = "IMAGE_TRANSFORM_WORKERS"
	EnvCacheTiles = "IMAGE_TRANSFORM_CACHE_TILES"
)

// Config holds the server settings.
type Config struct {
	// LogLevel is "debug" or "info".
	LogLevel string

	// TileSize is the edge length of the tiles images are split into.
	TileSize int

	// Workers bounds the goroutines used to render one transform.
	Workers int

	// CacheTiles is the number of computed tiles kept across tool calls.
	CacheTiles int
}

// DefaultConfig returns the settings used when no environment overrides are
// present.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		TileSize:   raster.DefaultTileSize,
		Workers:    runtime.GOMAXPROCS(0),
		CacheTiles: cache.DefaultTiles,
	}
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

// ConfigFromEnv builds a Config from the environment, looked up with getenv
// (normally os.Getenv). Invalid values are logged and replaced by defaults.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	switch level := strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel))); level {
	case "":
	case "debug", "info":
		cfg.LogLevel = level
	default:
		log.Printf("Ignoring %s=%q: want debug or info", EnvLogLevel, level)
	}

	cfg.TileSize = positiveInt(getenv, EnvTileSize, cfg.TileSize)
	cfg.Workers = positiveInt(getenv, EnvWorkers, cfg.Workers)
	cfg.CacheTiles = positiveInt(getenv, EnvCacheTiles, cfg.CacheTiles)
	return cfg
}

func positiveInt(getenv func(string) string, name string, def int) int {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Ignoring %s=%q: want a positive integer", name, raw)
		return def
	}
	return v
}
