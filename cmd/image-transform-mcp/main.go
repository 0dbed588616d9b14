package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/image-transform-mcp/internal/server"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-transform-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-transform-mcp - MCP server for affine image transforms")
			fmt.Println()
			fmt.Println("Usage: image-transform-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug          Enable debug logging\n", server.EnvLogLevel)
			fmt.Printf("  %s=N        Tile edge length in pixels (default 64)\n", server.EnvTileSize)
			fmt.Printf("  %s=N          Goroutines per transform (default GOMAXPROCS)\n", server.EnvWorkers)
			fmt.Printf("  %s=N      Computed tiles kept between calls (default 4096)\n", server.EnvCacheTiles)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv(os.Getenv)
	if cfg.Debug() {
		log.Printf("Image Transform MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Tile size %d, %d workers, %d cached tiles", cfg.TileSize, cfg.Workers, cfg.CacheTiles)
		transform.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
