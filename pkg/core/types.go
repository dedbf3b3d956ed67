// Package core defines the fundamental types and interfaces for the debate service.
package core

import (
	"time"
)

// Side identifies which position a participant argues.
type Side string

const (
	SideFor     Side = "for"
	SideAgainst Side = "against"
)

// Opponent returns the opposing side.
func (s Side) Opponent() Side {
	if s == SideFor {
		return SideAgainst
	}
	return SideFor
}

// Valid reports whether the side is one of the two known positions.
func (s Side) Valid() bool {
	return s == SideFor || s == SideAgainst
}

// Status represents the lifecycle state of a debate.
// Transitions: created -> in_progress -> completed -> adjudicated.
type Status string

const (
	StatusCreated     Status = "created"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusAdjudicated Status = "adjudicated"
)

// TurnsPerSide is the fixed number of turns each side gets.
const TurnsPerSide = 5

// Turn is a single model-generated argument contribution.
// Turns are immutable once appended; transcript order equals generation order.
type Turn struct {
	Side      Side      `json:"side"`
	Index     int       `json:"index"` // 1..TurnsPerSide, per side
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Winner values for a verdict.
const (
	WinnerFor     = "for"
	WinnerAgainst = "against"
	WinnerTie     = "tie"
)

// Verdict is the adjudicator's judgment over a finished transcript.
type Verdict struct {
	Winner       string  `json:"winner"` // "for", "against", or "tie"
	ForScore     float64 `json:"for_score"`
	AgainstScore float64 `json:"against_score"`
	Reasoning    string  `json:"reasoning"`
}

// Debate holds the full state of one debate session.
type Debate struct {
	ID           string    `json:"debate_id"`
	Proposition  string    `json:"proposition"`
	ForModel     string    `json:"for_model"`
	AgainstModel string    `json:"against_model"`
	Status       Status    `json:"status"`
	Turns        []Turn    `json:"turns"`
	Verdict      *Verdict  `json:"verdict,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Model returns the model identifier arguing the given side.
func (d *Debate) Model(side Side) string {
	if side == SideFor {
		return d.ForModel
	}
	return d.AgainstModel
}

// TurnCount returns how many turns the given side has taken.
func (d *Debate) TurnCount(side Side) int {
	n := 0
	for _, t := range d.Turns {
		if t.Side == side {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (d *Debate) Clone() *Debate {
	clone := *d
	clone.Turns = make([]Turn, len(d.Turns))
	copy(clone.Turns, d.Turns)
	if d.Verdict != nil {
		v := *d.Verdict
		clone.Verdict = &v
	}
	return &clone
}

// Message is a single entry in a chat history sent to a provider.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is a uniform completion request across providers.
type ChatRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// ChatResponse is a uniform completion response across providers.
type ChatResponse struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}
