package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is unactionable

	app := newCLIApp(logger)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a production logger writing to stderr, leaving stdout
// free for artifact streaming.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
