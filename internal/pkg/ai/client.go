package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
)

// Result is the fulfillment payload for one question.
type Result struct {
	Explanation       string
	SimpleExplanation string
	Steps             model.StepList
	Difficulty        string
}

// Client talks to the chat-completion style explanation provider.
type Client struct {
	cfg        *config.AIConfig
	httpClient *http.Client
}

func NewClient(cfg *config.AIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Explain asks the provider for a parent-friendly explanation of a
// homework question.
func (c *Client) Explain(ctx context.Context, content, subject, gradeLevel string) (*Result, error) {
	prompt := fmt.Sprintf(`You are a friendly homework helper for parents. A parent needs help explaining this %s question to their child in grade %s.

Question: %s

Please provide:
1. A simple, parent-friendly explanation
2. Step-by-step solution if applicable
3. Difficulty level (easy/medium/hard)
4. Tips for the parent to help their child understand

Keep the language simple and encouraging.`, subject, gradeLevel, content)

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ai api error: status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode ai response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("ai api error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("ai api returned no choices")
	}

	answer := chatResp.Choices[0].Message.Content
	return buildResult(answer), nil
}

// buildResult shapes the raw completion into the stored fields. The
// provider answers free-form, so the short form is a truncation and the
// full text doubles as the single step.
func buildResult(answer string) *Result {
	simple := answer
	if len(simple) > 200 {
		simple = simple[:200] + "..."
	}

	return &Result{
		Explanation:       answer,
		SimpleExplanation: simple,
		Steps: model.StepList{
			{Step: 1, Description: answer},
		},
		Difficulty: "medium",
	}
}
