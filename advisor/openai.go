package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/angas/loadshift-go/optimize"
	"github.com/angas/loadshift-go/slice"
)

const maxAdviceLength = 200

// OpenAI asks an OpenAI-compatible chat completions endpoint for advice and
// falls back to the offline advisor when the call fails, so Advise never
// returns an error to the caller.
type OpenAI struct {
	logger   *slog.Logger
	client   *http.Client
	baseURL  string
	apiKey   string
	model    string
	fallback *Offline
}

func NewOpenAI(logger *slog.Logger, baseURL, apiKey, model string) *OpenAI {
	return &OpenAI{
		logger:   logger,
		client:   &http.Client{Timeout: time.Second * 30},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		model:    model,
		fallback: NewOffline(logger),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (a *OpenAI) Advise(ctx context.Context, req Request) (Advice, error) {
	text, err := a.complete(ctx, req)
	if err != nil {
		a.logger.Warn("advisor request failed, using offline advice", slog.Any("error", err))
		return a.fallback.Advise(ctx, req)
	}

	return Advice{
		Text:       truncateText(text, maxAdviceLength),
		Reasoning:  extractReasoning(text),
		Plan:       planFromResult(req.Result),
		Confidence: 0.85,
	}, nil
}

// truncateText cuts on a rune boundary, the text contains currency signs.
func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func (a *OpenAI) complete(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an energy advisor. Give short, concrete advice on when to run flexible electricity loads. Answer in plain text."},
			{Role: "user", Content: a.prompt(req)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call advisor endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("response contains empty message")
	}

	return text, nil
}

func (a *OpenAI) prompt(req Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Zone %s on %s. Baseline cost €%.2f, optimized cost €%.2f, savings €%.2f (%.1f%%).\n",
		req.Zone, req.Date, req.Result.BaselineCost, req.Result.OptimizedCost, req.Result.Savings, req.Result.SavingsPercent)

	if len(req.Result.Schedule) > 0 {
		hourLabels := slice.Map(req.Result.Schedule, func(sh optimize.ShiftHour) string {
			return fmt.Sprintf("%02d:00 (%.2f kWh at €%.5f/kWh)", sh.Hour.Hour, sh.ShiftKWh, sh.PriceKWh)
		})
		fmt.Fprintf(&sb, "Cheapest hours: %s.\n", strings.Join(hourLabels, ", "))
	}
	if len(req.Preferences) > 0 {
		fmt.Fprintf(&sb, "User preferences: %s.\n", strings.Join(req.Preferences, "; "))
	}
	if req.Context != "" {
		fmt.Fprintf(&sb, "User question: %s\n", req.Context)
	}
	sb.WriteString("Explain when to shift the load and why.")

	return sb.String()
}
