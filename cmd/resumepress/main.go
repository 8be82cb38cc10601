package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// NewLogger builds the application logger. Verbose drops the level to debug.
func NewLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func main() {
	runner := &Runner{}

	app := &cli.Command{
		Name:           "resumepress",
		Usage:          "Build, preview, and export resumes as PDF",
		Version:        "0.1.0",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(runner),
			resetPaymentCommand(runner),
			backupCommand(runner),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		NewLogger(false).Fatalf("application error: %v", err)
	}
}
