package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vo-lang/image/dispatch"
	"github.com/vo-lang/image/imageops"
	"github.com/vo-lang/image/registry"
	"github.com/vo-lang/image/service"
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
			fmt.Printf("image-host %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-host - line-oriented JSON server for the image store")
			fmt.Println()
			fmt.Println("Usage: image-host [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_HOST_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("The server reads one JSON request per line from stdin and")
			fmt.Println("writes one JSON response per line to stdout.")
			return
		}
	}

	// Log to stderr; stdout carries the protocol.
	log := newLogger(os.Getenv("IMAGE_HOST_LOG_LEVEL"))
	defer log.Sync()

	log.Debug("starting image host",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit))

	svc := service.New(registry.New(), imageops.New(), service.WithLogger(log))
	srv := dispatch.NewServer(dispatch.New(svc), dispatch.WithLogger(log))
	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if level == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return log
}
