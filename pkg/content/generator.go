// Package content chains LLM calls to produce YouTube video content from a
// transcript: timestamps, a marketing summary, SEO titles, thumbnail
// concepts, and show notes.
package content

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/parley-ai/parley/pkg/core"
)

// Models used per pipeline step.
const (
	timestampsModel = "gpt-4o-mini"
	summaryModel    = "gemini-2.0-flash-lite"
	titlesModel     = "claude-sonnet-4-5-20250929"
	thumbnailsModel = "gemini-2.0-flash-lite"
	showNotesModel  = "gemini-2.0-flash-lite"
)

// ConnectionResolver resolves model identifiers to provider connections.
type ConnectionResolver interface {
	Connection(model string) (core.LLMConnection, error)
	ValidateCredentials(models ...string) error
}

// Result holds the output of every pipeline step.
type Result struct {
	Timestamps       string
	MarketingSummary string
	Titles           string
	Thumbnails       string
	ShowNotes        string
}

// Generator runs the content pipeline.
type Generator struct {
	resolver ConnectionResolver
	logger   *logrus.Logger
}

// NewGenerator creates a generator, failing with a configuration error when
// any step's provider credential is missing.
func NewGenerator(resolver ConnectionResolver, logger *logrus.Logger) (*Generator, error) {
	if logger == nil {
		logger = logrus.New()
	}

	var missing []string
	for _, model := range []string{timestampsModel, summaryModel, titlesModel} {
		if err := resolver.ValidateCredentials(model); err != nil {
			missing = append(missing, model)
		}
	}
	if len(missing) > 0 {
		return nil, core.ConfigurationErrorf("missing provider credentials for: %s", strings.Join(missing, ", "))
	}

	return &Generator{resolver: resolver, logger: logger}, nil
}

// GenerateAll runs the full pipeline. Steps 1, 2, and 5 are sequential; the
// titles and thumbnails steps both depend only on the marketing summary and
// run in parallel.
func (g *Generator) GenerateAll(ctx context.Context, transcript, knowledgeBase string) (*Result, error) {
	result := &Result{}

	timestamps, err := g.Timestamps(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("timestamps step failed: %w", err)
	}
	result.Timestamps = timestamps

	summary, err := g.MarketingSummary(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("marketing summary step failed: %w", err)
	}
	result.MarketingSummary = summary

	var wg sync.WaitGroup
	var titlesErr, thumbnailsErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Titles, titlesErr = g.SEOTitles(ctx, summary, knowledgeBase)
	}()
	go func() {
		defer wg.Done()
		result.Thumbnails, thumbnailsErr = g.ThumbnailConcepts(ctx, summary)
	}()
	wg.Wait()

	if titlesErr != nil {
		return nil, fmt.Errorf("titles step failed: %w", titlesErr)
	}
	if thumbnailsErr != nil {
		return nil, fmt.Errorf("thumbnails step failed: %w", thumbnailsErr)
	}

	notes, err := g.ShowNotes(ctx, transcript, knowledgeBase)
	if err != nil {
		return nil, fmt.Errorf("show notes step failed: %w", err)
	}
	result.ShowNotes = notes

	return result, nil
}

// Timestamps generates copy-pastable YouTube description timestamps.
func (g *Generator) Timestamps(ctx context.Context, transcript string) (string, error) {
	g.logger.WithField("model", timestampsModel).Info("generating timestamps")
	return g.generate(ctx, timestampsModel, fmt.Sprintf(timestampsPrompt, transcript))
}

// MarketingSummary generates a marketing-focused summary of the transcript.
func (g *Generator) MarketingSummary(ctx context.Context, transcript string) (string, error) {
	g.logger.WithField("model", summaryModel).Info("generating marketing summary")
	return g.generate(ctx, summaryModel, fmt.Sprintf(summaryPrompt, transcript))
}

// SEOTitles generates five SEO-optimized video titles from the summary.
func (g *Generator) SEOTitles(ctx context.Context, summary, knowledgeBase string) (string, error) {
	g.logger.WithField("model", titlesModel).Info("generating SEO titles")
	return g.generate(ctx, titlesModel, fmt.Sprintf(titlesPrompt, knowledgeBase, summary))
}

// ThumbnailConcepts generates five thumbnail concepts from the summary.
func (g *Generator) ThumbnailConcepts(ctx context.Context, summary string) (string, error) {
	g.logger.WithField("model", thumbnailsModel).Info("generating thumbnail concepts")
	return g.generate(ctx, thumbnailsModel, fmt.Sprintf(thumbnailsPrompt, summary))
}

// ShowNotes generates SEO-optimized show notes.
func (g *Generator) ShowNotes(ctx context.Context, transcript, knowledgeBase string) (string, error) {
	g.logger.WithField("model", showNotesModel).Info("generating show notes")
	return g.generate(ctx, showNotesModel, fmt.Sprintf(showNotesPrompt, knowledgeBase, transcript))
}

func (g *Generator) generate(ctx context.Context, model, prompt string) (string, error) {
	conn, err := g.resolver.Connection(model)
	if err != nil {
		return "", err
	}

	resp, err := conn.GenerateContent(ctx, &core.ChatRequest{
		Model:    model,
		Messages: []core.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
