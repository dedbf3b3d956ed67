package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/parley-ai/parley/pkg/content"
	"github.com/parley-ai/parley/pkg/llm"
)

// contentCommand runs the YouTube content generation pipeline.
func contentCommand() *cli.Command {
	return &cli.Command{
		Name:  "content",
		Usage: "Generate YouTube content from a transcript",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "transcript",
				Usage:    "Path to the transcript file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "knowledge-base",
				Usage:    "Path to the target audience / tone guidelines file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Value: ".",
				Usage: "Directory to write generated content to",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "Logging level (debug, info, warn, error)",
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c.String("log-level"))

			transcript, err := os.ReadFile(c.String("transcript"))
			if err != nil {
				return fmt.Errorf("failed to read transcript: %w", err)
			}
			knowledgeBase, err := os.ReadFile(c.String("knowledge-base"))
			if err != nil {
				return fmt.Errorf("failed to read knowledge base: %w", err)
			}

			generator, err := content.NewGenerator(llm.NewRegistry(logger), logger)
			if err != nil {
				return err
			}

			result, err := generator.GenerateAll(c.Context, string(transcript), string(knowledgeBase))
			if err != nil {
				return err
			}

			outputs := map[string]string{
				"output_timestamps.txt":         result.Timestamps,
				"output_marketing_summary.txt":  result.MarketingSummary,
				"output_titles.txt":             result.Titles,
				"output_thumbnail_concepts.txt": result.Thumbnails,
				"output_show_notes.txt":         result.ShowNotes,
			}

			outDir := c.String("output-dir")
			for name, body := range outputs {
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				logger.WithField("path", path).Info("saved output")
			}
			return nil
		},
	}
}
