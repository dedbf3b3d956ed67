package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/parley-ai/parley/pkg/core"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	defaultMaxTokens = 2048
)

var _ core.LLMConnection = (*AnthropicConnection)(nil)

// AnthropicConnection implements LLMConnection for the Anthropic messages API.
type AnthropicConnection struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicConnection creates a connection to the Anthropic API.
// An empty baseURL selects the production endpoint.
func NewAnthropicConnection(apiKey, baseURL string) *AnthropicConnection {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &AnthropicConnection{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// GenerateContent sends a request to the Anthropic messages API.
func (c *AnthropicConnection) GenerateContent(ctx context.Context, request *core.ChatRequest) (*core.ChatResponse, error) {
	maxTokens := request.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	payload := anthropicRequest{
		Model:       request.Model,
		MaxTokens:   maxTokens,
		System:      request.System,
		Temperature: request.Temperature,
	}
	for _, msg := range request.Messages {
		payload.Messages = append(payload.Messages, anthropicMessage{
			Role:    mapChatRole(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.ProviderErrorf(err, "anthropic request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, core.ProviderErrorf(nil, "anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, core.ProviderErrorf(err, "failed to decode anthropic response")
	}
	if len(apiResp.Content) == 0 || apiResp.Content[0].Text == "" {
		return nil, core.ProviderErrorf(nil, "anthropic returned an empty response")
	}

	return &core.ChatResponse{
		Content:    apiResp.Content[0].Text,
		Model:      apiResp.Model,
		TokensUsed: apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
	}, nil
}

// Close closes the connection (no-op for HTTP-based connections).
func (c *AnthropicConnection) Close(ctx context.Context) error {
	return nil
}

// mapChatRole normalizes history roles to the user/assistant pair every
// provider understands.
func mapChatRole(role string) string {
	if role == "assistant" || role == "model" {
		return "assistant"
	}
	return "user"
}
