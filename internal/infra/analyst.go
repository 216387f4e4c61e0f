package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AnalystMessage is one turn of the prompt sent to the hosted model.
type AnalystMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// AnalystRequest is the generation request body. The context message carries
// the serialized store data, the second message the user's question.
type AnalystRequest struct {
	Model    string           `json:"model"`
	Messages []AnalystMessage `json:"messages"`
}

// AnalystResponse is the hosted model's reply envelope.
type AnalystResponse struct {
	Text string `json:"text"`
}

// AnalystClient talks to the hosted text-generation service. The call is
// one-shot: no retries here — resilience policy (circuit breaker, fallback
// text) lives in the analyst service.
type AnalystClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewAnalystClient(baseURL, apiKey, model string) *AnalystClient {
	return &AnalystClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate sends the context + question pair and returns the model's answer.
func (c *AnalystClient) Generate(ctx context.Context, contextText, question string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("analyst: api key not configured")
	}

	payload := AnalystRequest{
		Model: c.model,
		Messages: []AnalystMessage{
			{Role: "user", Text: contextText},
			{Role: "user", Text: question},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("analyst: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("analyst: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyst: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analyst: service returned %d", resp.StatusCode)
	}

	var result AnalystResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("analyst: decode response: %w", err)
	}
	return result.Text, nil
}
