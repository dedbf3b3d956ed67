// Package cli provides the command-line interface for the debate service.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Version information - will be set during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// NewApp creates and configures the CLI application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "parley",
		Usage:   "Multi-model AI debate service and content tools",
		Version: Version,
		Commands: []*cli.Command{
			serveCommand(),
			contentCommand(),
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}
}

// newLogger creates a logger honoring the command's log-level flag.
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	if parsed, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}
