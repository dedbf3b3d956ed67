package debate

import (
	"fmt"
	"strings"

	"github.com/parley-ai/parley/pkg/core"
)

// systemPrompt frames one side's role for the whole debate.
func systemPrompt(side core.Side, proposition string) string {
	position := "FOR"
	direction := "supporting"
	if side == core.SideAgainst {
		position = "AGAINST"
		direction = "opposing"
	}
	return fmt.Sprintf(`You are participating in a formal debate. Your role is to argue %s the following proposition:

%q

Provide clear, logical arguments %s this position. Be persuasive but respectful. Keep your responses concise (2-3 paragraphs max). Address counterarguments when raised by your opponent.`, position, proposition, direction)
}

// historyForSide maps the transcript into a chat history from one side's
// perspective: its own turns appear as assistant messages, the opponent's as
// user messages. An empty history gets an opening instruction so every
// request carries at least one user message.
func historyForSide(turns []core.Turn, side core.Side) []core.Message {
	if len(turns) == 0 {
		return []core.Message{{Role: "user", Content: "Present your opening argument."}}
	}

	messages := make([]core.Message, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Side == side {
			role = "assistant"
		}
		messages = append(messages, core.Message{Role: role, Content: turn.Text})
	}
	if messages[len(messages)-1].Role == "assistant" {
		messages = append(messages, core.Message{Role: "user", Content: "Continue with your next argument."})
	}
	return messages
}

// adjudicatorSystemPrompt is the judge's system framing.
const adjudicatorSystemPrompt = "You are an expert debate adjudicator. Respond only with valid JSON."

// adjudicatorPrompt builds the single judging prompt over the full transcript.
func adjudicatorPrompt(proposition string, turns []core.Turn) string {
	var transcript strings.Builder
	for i, turn := range turns {
		if i > 0 {
			transcript.WriteString("\n\n")
		}
		label := "FOR"
		if turn.Side == core.SideAgainst {
			label = "AGAINST"
		}
		transcript.WriteString(label)
		transcript.WriteString(": ")
		transcript.WriteString(turn.Text)
	}

	return fmt.Sprintf(`You are an expert debate adjudicator. You have been asked to evaluate the following debate on the proposition:

%q

DEBATE TRANSCRIPT:
%s

Please evaluate this debate and provide your judgment in the following JSON format:
{
    "winner": "for|against|tie",
    "for_score": <score from 0-100>,
    "against_score": <score from 0-100>,
    "reasoning": "<detailed explanation of your decision>"
}

Evaluate based on:
- Strength and logic of arguments
- Use of evidence and examples
- Rebuttal effectiveness
- Clarity and persuasiveness
- Overall coherence

Respond ONLY with valid JSON, nothing else.`, proposition, transcript.String())
}

// stripCodeFence extracts the body of a markdown code block if the judge
// wrapped its JSON in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	for _, fence := range []string{"```json", "```"} {
		if start := strings.Index(s, fence); start != -1 {
			rest := s[start+len(fence):]
			if end := strings.Index(rest, "```"); end != -1 {
				return strings.TrimSpace(rest[:end])
			}
		}
	}
	return s
}
