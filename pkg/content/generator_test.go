package content

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parley-ai/parley/pkg/core"
)

// stubConnection answers every prompt with a per-model canned string and
// records the prompts it saw.
type stubConnection struct {
	mu      sync.Mutex
	prompts map[string][]string
	barrier *sync.WaitGroup // when set, titles and thumbnails rendezvous here
}

func (s *stubConnection) GenerateContent(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	prompt := req.Messages[0].Content

	s.mu.Lock()
	if s.prompts == nil {
		s.prompts = make(map[string][]string)
	}
	s.prompts[req.Model] = append(s.prompts[req.Model], prompt)
	s.mu.Unlock()

	// Several steps share a model, so the rendezvous keys on the prompt text.
	if s.barrier != nil && (strings.Contains(prompt, "video titles") || strings.Contains(prompt, "thumbnail concepts")) {
		s.barrier.Done()
		s.barrier.Wait()
	}
	return &core.ChatResponse{Content: "output for " + req.Model, Model: req.Model}, nil
}

func (s *stubConnection) Close(ctx context.Context) error {
	return nil
}

func (s *stubConnection) promptsFor(model string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompts[model]
}

type stubResolver struct {
	conn        *stubConnection
	validateErr error
}

func (r *stubResolver) Connection(model string) (core.LLMConnection, error) {
	return r.conn, nil
}

func (r *stubResolver) ValidateCredentials(models ...string) error {
	return r.validateErr
}

func TestGenerateAll(t *testing.T) {
	conn := &stubConnection{}
	g, err := NewGenerator(&stubResolver{conn: conn}, nil)
	require.NoError(t, err)

	result, err := g.GenerateAll(context.Background(), "the transcript", "the knowledge base")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Timestamps)
	assert.NotEmpty(t, result.MarketingSummary)
	assert.NotEmpty(t, result.Titles)
	assert.NotEmpty(t, result.Thumbnails)
	assert.NotEmpty(t, result.ShowNotes)
}

func TestGenerateAllPromptInputs(t *testing.T) {
	conn := &stubConnection{}
	g, err := NewGenerator(&stubResolver{conn: conn}, nil)
	require.NoError(t, err)

	_, err = g.GenerateAll(context.Background(), "the transcript", "the knowledge base")
	require.NoError(t, err)

	// Timestamps and summary work from the transcript.
	require.Len(t, conn.promptsFor(timestampsModel), 1)
	assert.Contains(t, conn.promptsFor(timestampsModel)[0], "the transcript")

	// Titles work from the summary produced upstream, not the raw transcript.
	titlesPrompts := conn.promptsFor(titlesModel)
	require.Len(t, titlesPrompts, 1)
	assert.Contains(t, titlesPrompts[0], "output for "+summaryModel)
	assert.Contains(t, titlesPrompts[0], "the knowledge base")

	// Show notes see both the transcript and the knowledge base. The show
	// notes model also serves other steps, so find the prompt carrying both.
	found := false
	for _, p := range conn.promptsFor(showNotesModel) {
		if strings.Contains(p, "the transcript") && strings.Contains(p, "the knowledge base") {
			found = true
		}
	}
	assert.True(t, found, "no prompt combined the transcript and knowledge base")
}

func TestTitlesAndThumbnailsRunConcurrently(t *testing.T) {
	var barrier sync.WaitGroup
	barrier.Add(2)
	conn := &stubConnection{barrier: &barrier}
	g, err := NewGenerator(&stubResolver{conn: conn}, nil)
	require.NoError(t, err)

	// Both steps must be in flight at once for the rendezvous to release;
	// sequential execution would never get past the barrier.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := g.GenerateAll(context.Background(), "t", "kb")
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("titles and thumbnails did not run concurrently")
	}
}

func TestNewGeneratorMissingCredentials(t *testing.T) {
	resolver := &stubResolver{
		conn:        &stubConnection{},
		validateErr: core.ConfigurationErrorf("no credential"),
	}

	_, err := NewGenerator(resolver, nil)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindConfiguration))
	assert.Contains(t, err.Error(), titlesModel)
}

func TestStepFailureStopsPipeline(t *testing.T) {
	g, err := NewGenerator(&failingResolver{}, nil)
	require.NoError(t, err)

	_, err = g.GenerateAll(context.Background(), "t", "kb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timestamps step failed")
	assert.True(t, core.IsKind(err, core.KindConfiguration))
}

// failingResolver validates fine but cannot hand out connections.
type failingResolver struct{}

func (r *failingResolver) Connection(model string) (core.LLMConnection, error) {
	return nil, core.ConfigurationErrorf("no credential for %s", model)
}

func (r *failingResolver) ValidateCredentials(models ...string) error {
	return nil
}
