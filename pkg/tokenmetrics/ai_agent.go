package tokenmetrics

import (
	"context"
	"net/http"
	"strings"
)

// Message is one user turn sent to the AI agent.
type Message struct {
	User string `json:"user"`
}

type agentRequest struct {
	Messages []Message `json:"messages"`
}

// AIAgentService talks to the Token Metrics AI chat agent.
type AIAgentService struct{ resource }

// Ask sends a single prompt and returns the full envelope.
func (s *AIAgentService) Ask(ctx context.Context, prompt string) (Envelope, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	return s.AskMessages(ctx, []Message{{User: prompt}})
}

// AskMessages sends a conversation; blank turns are dropped.
func (s *AIAgentService) AskMessages(ctx context.Context, msgs []Message) (Envelope, error) {
	turns := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.User) != "" {
			turns = append(turns, m)
		}
	}
	if len(turns) == 0 {
		return nil, ErrEmptyPrompt
	}
	return s.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   s.path,
		Body:   agentRequest{Messages: turns},
	})
}

// AnswerText asks prompt and returns only the answer text.
func (s *AIAgentService) AnswerText(ctx context.Context, prompt string) (string, error) {
	env, err := s.Ask(ctx, prompt)
	if err != nil {
		return "", err
	}
	answer, ok := env.Answer()
	if !ok {
		return "", ErrNoAnswer
	}
	return answer, nil
}
