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

const geminiBaseURL = "https://generativelanguage.googleapis.com"

var _ core.LLMConnection = (*GeminiConnection)(nil)

// GeminiConnection implements LLMConnection for the Gemini generateContent API.
type GeminiConnection struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiConnection creates a connection to the Gemini API.
// An empty baseURL selects the production endpoint.
func NewGeminiConnection(apiKey, baseURL string) *GeminiConnection {
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &GeminiConnection{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// GenerateContent sends a request to the Gemini generateContent API.
func (c *GeminiConnection) GenerateContent(ctx context.Context, request *core.ChatRequest) (*core.ChatResponse, error) {
	payload := geminiRequest{}
	if request.System != "" {
		payload.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: request.System}},
		}
	}
	for _, msg := range request.Messages {
		role := "user"
		if mapChatRole(msg.Role) == "assistant" {
			role = "model"
		}
		payload.Contents = append(payload.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	if request.MaxTokens > 0 || request.Temperature != nil {
		payload.GenerationConfig = &geminiGenerationConfig{
			Temperature:     request.Temperature,
			MaxOutputTokens: request.MaxTokens,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, request.Model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.ProviderErrorf(err, "gemini request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, core.ProviderErrorf(nil, "gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, core.ProviderErrorf(err, "failed to decode gemini response")
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, core.ProviderErrorf(nil, "gemini returned an empty response")
	}

	var text strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return nil, core.ProviderErrorf(nil, "gemini returned an empty response")
	}

	return &core.ChatResponse{
		Content:    text.String(),
		Model:      request.Model,
		TokensUsed: apiResp.UsageMetadata.TotalTokenCount,
	}, nil
}

// Close closes the connection (no-op for HTTP-based connections).
func (c *GeminiConnection) Close(ctx context.Context) error {
	return nil
}
