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
	openAIBaseURL   = "https://api.openai.com"
	deepSeekBaseURL = "https://api.deepseek.com"
)

var _ core.LLMConnection = (*OpenAIConnection)(nil)

// OpenAIConnection implements LLMConnection for chat-completions compatible
// APIs. DeepSeek exposes the same wire format, so both providers share it.
type OpenAIConnection struct {
	name       string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIConnection creates a connection to the OpenAI API.
// An empty baseURL selects the production endpoint.
func NewOpenAIConnection(apiKey, baseURL string) *OpenAIConnection {
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	return newChatCompletionsConnection("openai", apiKey, baseURL)
}

// NewDeepSeekConnection creates a connection to the DeepSeek API, which is
// chat-completions compatible.
func NewDeepSeekConnection(apiKey, baseURL string) *OpenAIConnection {
	if baseURL == "" {
		baseURL = deepSeekBaseURL
	}
	return newChatCompletionsConnection("deepseek", apiKey, baseURL)
}

func newChatCompletionsConnection(name, apiKey, baseURL string) *OpenAIConnection {
	return &OpenAIConnection{
		name:    name,
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatCompletionsRequest struct {
	Model       string                   `json:"model"`
	Messages    []chatCompletionsMessage `json:"messages"`
	MaxTokens   int                      `json:"max_tokens,omitempty"`
	Temperature *float64                 `json:"temperature,omitempty"`
}

type chatCompletionsMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// GenerateContent sends a request to the chat completions API.
func (c *OpenAIConnection) GenerateContent(ctx context.Context, request *core.ChatRequest) (*core.ChatResponse, error) {
	payload := chatCompletionsRequest{
		Model:       request.Model,
		MaxTokens:   request.MaxTokens,
		Temperature: request.Temperature,
	}
	if request.System != "" {
		payload.Messages = append(payload.Messages, chatCompletionsMessage{Role: "system", Content: request.System})
	}
	for _, msg := range request.Messages {
		payload.Messages = append(payload.Messages, chatCompletionsMessage{
			Role:    mapChatRole(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.ProviderErrorf(err, "%s request failed", c.name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, core.ProviderErrorf(nil, "%s API error (status %d): %s", c.name, resp.StatusCode, string(respBody))
	}

	var apiResp chatCompletionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, core.ProviderErrorf(err, "failed to decode %s response", c.name)
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return nil, core.ProviderErrorf(nil, "%s returned an empty response", c.name)
	}

	return &core.ChatResponse{
		Content:    apiResp.Choices[0].Message.Content,
		Model:      apiResp.Model,
		TokensUsed: apiResp.Usage.TotalTokens,
	}, nil
}

// Close closes the connection (no-op for HTTP-based connections).
func (c *OpenAIConnection) Close(ctx context.Context) error {
	return nil
}
