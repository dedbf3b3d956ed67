package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/parley-ai/parley/pkg/api"
)

// serveCommand starts the debate API server.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the debate API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Value: "127.0.0.1",
				Usage: "Host to bind the server to",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: 9000,
				Usage: "Port to bind the server to",
			},
			&cli.StringSliceFlag{
				Name:  "allow-origins",
				Usage: "Origins to allow for CORS (default: all)",
			},
			&cli.StringFlag{
				Name:  "store-uri",
				Usage: "Debate store URI (e.g. 'redis://localhost:6379/0'; empty for in-memory)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Logging level (debug, info, warn, error)",
			},
		},
		Action: func(c *cli.Context) error {
			server, err := api.NewServer(&api.ServerConfig{
				Host:         c.String("host"),
				Port:         c.Int("port"),
				AllowOrigins: c.StringSlice("allow-origins"),
				StoreURI:     c.String("store-uri"),
				LogLevel:     c.String("log-level"),
			})
			if err != nil {
				return err
			}
			return server.Start()
		},
	}
}
