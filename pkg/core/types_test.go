package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, SideAgainst, SideFor.Opponent())
	assert.Equal(t, SideFor, SideAgainst.Opponent())
}

func TestSideValid(t *testing.T) {
	assert.True(t, SideFor.Valid())
	assert.True(t, SideAgainst.Valid())
	assert.False(t, Side("neutral").Valid())
}

func TestDebateModel(t *testing.T) {
	d := &Debate{ForModel: "claude-sonnet-4-5-20250929", AgainstModel: "gpt-4o"}
	assert.Equal(t, "claude-sonnet-4-5-20250929", d.Model(SideFor))
	assert.Equal(t, "gpt-4o", d.Model(SideAgainst))
}

func TestDebateTurnCount(t *testing.T) {
	d := &Debate{Turns: []Turn{
		{Side: SideFor, Index: 1},
		{Side: SideAgainst, Index: 1},
		{Side: SideFor, Index: 2},
	}}
	assert.Equal(t, 2, d.TurnCount(SideFor))
	assert.Equal(t, 1, d.TurnCount(SideAgainst))
}

func TestDebateClone(t *testing.T) {
	d := &Debate{
		ID:      "d1",
		Status:  StatusCompleted,
		Turns:   []Turn{{Side: SideFor, Index: 1, Text: "opening"}},
		Verdict: &Verdict{Winner: WinnerFor, ForScore: 80, AgainstScore: 60, Reasoning: "stronger"},
	}

	clone := d.Clone()
	clone.Turns[0].Text = "mutated"
	clone.Turns = append(clone.Turns, Turn{Side: SideAgainst, Index: 1})
	clone.Verdict.Winner = WinnerTie

	assert.Equal(t, "opening", d.Turns[0].Text)
	assert.Len(t, d.Turns, 1)
	assert.Equal(t, WinnerFor, d.Verdict.Winner)
}
