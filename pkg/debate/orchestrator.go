// Package debate drives turn sequencing and adjudication for debate sessions.
package debate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/parley-ai/parley/pkg/core"
)

// ConnectionResolver resolves model identifiers to provider connections.
// Implemented by llm.Registry.
type ConnectionResolver interface {
	Connection(model string) (core.LLMConnection, error)
	ValidateCredentials(models ...string) error
}

// EventType distinguishes watcher notifications.
type EventType string

const (
	EventTurn   EventType = "turn"
	EventStatus EventType = "status"
)

// Event is a notification delivered to debate watchers while a run executes.
type Event struct {
	DebateID string      `json:"debate_id"`
	Type     EventType   `json:"type"`
	Turn     *core.Turn  `json:"turn,omitempty"`
	Status   core.Status `json:"status"`
}

// Orchestrator drives a debate through its turn sequence.
// At most one run executes per debate ID at a time.
type Orchestrator struct {
	store    core.DebateStore
	resolver ConnectionResolver
	logger   *logrus.Logger

	mu       sync.Mutex
	inflight map[string]struct{}

	watcherMu sync.Mutex
	watchers  map[string][]chan Event
}

// NewOrchestrator creates an orchestrator over the given store and resolver.
func NewOrchestrator(store core.DebateStore, resolver ConnectionResolver, logger *logrus.Logger) *Orchestrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Orchestrator{
		store:    store,
		resolver: resolver,
		logger:   logger,
		inflight: make(map[string]struct{}),
		watchers: make(map[string][]chan Event),
	}
}

// Create allocates a new debate in status created with no turns.
func (o *Orchestrator) Create(ctx context.Context, proposition, forModel, againstModel string) (*core.Debate, error) {
	debate := &core.Debate{
		ID:           uuid.New().String(),
		Proposition:  proposition,
		ForModel:     forModel,
		AgainstModel: againstModel,
		Status:       core.StatusCreated,
		Turns:        make([]core.Turn, 0),
		CreatedAt:    time.Now().UTC(),
	}
	if err := o.store.Create(ctx, debate); err != nil {
		return nil, err
	}

	o.logger.WithFields(logrus.Fields{
		"debate_id": debate.ID,
		"for":       forModel,
		"against":   againstModel,
	}).Info("debate created")
	return debate, nil
}

// Run executes the debate's full turn sequence: five rounds, the for side
// speaking strictly before the against side within each round. Both sides'
// credentials are validated before the first turn is generated. A failed
// generation aborts the run and reports which turn failed; turns already
// appended are preserved.
func (o *Orchestrator) Run(ctx context.Context, id string) (*core.Debate, error) {
	if err := o.acquire(id); err != nil {
		return nil, err
	}
	defer o.release(id)

	debate, err := o.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch debate.Status {
	case core.StatusCompleted, core.StatusAdjudicated:
		return nil, core.StateErrorf("debate %s is already completed", id)
	case core.StatusCreated:
		debate.Status = core.StatusInProgress
		if err := o.store.Update(ctx, debate); err != nil {
			return nil, err
		}
		o.publish(Event{DebateID: id, Type: EventStatus, Status: debate.Status})
	}

	// Fail before any turn is appended when a credential is missing.
	if err := o.resolver.ValidateCredentials(debate.ForModel, debate.AgainstModel); err != nil {
		return nil, err
	}

	for round := 1; round <= core.TurnsPerSide; round++ {
		for _, side := range []core.Side{core.SideFor, core.SideAgainst} {
			if debate.TurnCount(side) >= round {
				continue // already generated by an earlier, partially failed run
			}
			if err := o.generateTurn(ctx, debate, side, round); err != nil {
				return nil, fmt.Errorf("turn generation failed (%s side, round %d): %w", side, round, err)
			}
		}
	}

	debate.Status = core.StatusCompleted
	if err := o.store.Update(ctx, debate); err != nil {
		return nil, err
	}
	o.publish(Event{DebateID: id, Type: EventStatus, Status: debate.Status})

	o.logger.WithField("debate_id", id).Info("debate completed")
	return debate, nil
}

// generateTurn produces one turn and persists it immediately so partial
// progress survives a later failure.
func (o *Orchestrator) generateTurn(ctx context.Context, debate *core.Debate, side core.Side, round int) error {
	model := debate.Model(side)
	conn, err := o.resolver.Connection(model)
	if err != nil {
		return err
	}

	resp, err := conn.GenerateContent(ctx, &core.ChatRequest{
		Model:    model,
		System:   systemPrompt(side, debate.Proposition),
		Messages: historyForSide(debate.Turns, side),
	})
	if err != nil {
		return err
	}

	turn := core.Turn{
		Side:      side,
		Index:     round,
		Text:      resp.Content,
		Timestamp: time.Now().UTC(),
	}
	debate.Turns = append(debate.Turns, turn)
	if err := o.store.Update(ctx, debate); err != nil {
		return err
	}

	o.logger.WithFields(logrus.Fields{
		"debate_id": debate.ID,
		"side":      side,
		"round":     round,
		"model":     model,
	}).Info("turn generated")

	o.publish(Event{DebateID: debate.ID, Type: EventTurn, Turn: &turn, Status: debate.Status})
	return nil
}

// acquire claims the single run slot for a debate ID.
func (o *Orchestrator) acquire(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, busy := o.inflight[id]; busy {
		return core.StateErrorf("debate %s already has a run in progress", id)
	}
	o.inflight[id] = struct{}{}
	return nil
}

func (o *Orchestrator) release(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inflight, id)
}

// Watch subscribes to a debate's events. The returned cancel function must be
// called to unsubscribe. Slow watchers miss events rather than block a run.
func (o *Orchestrator) Watch(debateID string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	o.watcherMu.Lock()
	o.watchers[debateID] = append(o.watchers[debateID], ch)
	o.watcherMu.Unlock()

	cancel := func() {
		o.watcherMu.Lock()
		defer o.watcherMu.Unlock()
		chans := o.watchers[debateID]
		for i, existing := range chans {
			if existing == ch {
				o.watchers[debateID] = append(chans[:i], chans[i+1:]...)
				close(ch)
				break
			}
		}
		if len(o.watchers[debateID]) == 0 {
			delete(o.watchers, debateID)
		}
	}
	return ch, cancel
}

func (o *Orchestrator) publish(event Event) {
	o.watcherMu.Lock()
	defer o.watcherMu.Unlock()

	for _, ch := range o.watchers[event.DebateID] {
		select {
		case ch <- event:
		default:
		}
	}
}
