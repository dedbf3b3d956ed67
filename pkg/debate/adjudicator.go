package debate

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/parley-ai/parley/pkg/core"
)

// Adjudicator scores a finished transcript with a designated judge model.
type Adjudicator struct {
	store    core.DebateStore
	resolver ConnectionResolver
	logger   *logrus.Logger
}

// NewAdjudicator creates an adjudicator over the given store and resolver.
func NewAdjudicator(store core.DebateStore, resolver ConnectionResolver, logger *logrus.Logger) *Adjudicator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Adjudicator{store: store, resolver: resolver, logger: logger}
}

// Adjudicate judges a completed debate and stores the verdict.
// Valid only when the debate's status is completed; the verdict is created
// once and the debate transitions to adjudicated.
func (a *Adjudicator) Adjudicate(ctx context.Context, id, judgeModel string) (*core.Verdict, error) {
	debate, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch debate.Status {
	case core.StatusAdjudicated:
		return nil, core.StateErrorf("debate %s is already adjudicated", id)
	case core.StatusCompleted:
	default:
		return nil, core.StateErrorf("debate %s must be completed before adjudication (status: %s)", id, debate.Status)
	}

	conn, err := a.resolver.Connection(judgeModel)
	if err != nil {
		return nil, err
	}

	resp, err := conn.GenerateContent(ctx, &core.ChatRequest{
		Model:  judgeModel,
		System: adjudicatorSystemPrompt,
		Messages: []core.Message{
			{Role: "user", Content: adjudicatorPrompt(debate.Proposition, debate.Turns)},
		},
	})
	if err != nil {
		return nil, err
	}

	verdict, err := parseVerdict(resp.Content)
	if err != nil {
		return nil, err
	}

	debate.Verdict = verdict
	debate.Status = core.StatusAdjudicated
	if err := a.store.Update(ctx, debate); err != nil {
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"debate_id": id,
		"judge":     judgeModel,
		"winner":    verdict.Winner,
	}).Info("debate adjudicated")
	return verdict, nil
}

// parseVerdict decodes the judge's JSON output, tolerating a surrounding
// markdown code fence. Both scores must be present, not merely zero.
func parseVerdict(raw string) (*core.Verdict, error) {
	var decoded struct {
		Winner       string   `json:"winner"`
		ForScore     *float64 `json:"for_score"`
		AgainstScore *float64 `json:"against_score"`
		Reasoning    string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &decoded); err != nil {
		return nil, core.ParseErrorf(err, "judge output is not valid JSON")
	}

	switch decoded.Winner {
	case core.WinnerFor, core.WinnerAgainst, core.WinnerTie:
	default:
		return nil, core.ParseErrorf(nil, "judge output has invalid winner %q", decoded.Winner)
	}
	if decoded.ForScore == nil || decoded.AgainstScore == nil {
		return nil, core.ParseErrorf(nil, "judge output is missing scores")
	}
	if decoded.Reasoning == "" {
		return nil, core.ParseErrorf(nil, "judge output is missing reasoning")
	}

	return &core.Verdict{
		Winner:       decoded.Winner,
		ForScore:     *decoded.ForScore,
		AgainstScore: *decoded.AgainstScore,
		Reasoning:    decoded.Reasoning,
	}, nil
}
