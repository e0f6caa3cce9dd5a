// Package openrouter implements oracle.Advisor via the OpenRouter
// chat-completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GOAT858/Bid2Win/internal/oracle"
)

type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type cardSuggestion struct {
	SuggestedCardID string `json:"suggestedCardId"`
	Reasoning       string `json:"reasoning"`
}

type bidSuggestion struct {
	Bid       int    `json:"bid"`
	Reasoning string `json:"reasoning"`
}

func (c *Client) SuggestCard(ctx context.Context, in oracle.SuggestInput) (string, error) {
	var out cardSuggestion
	if err := c.withFallbacks(ctx, cardPrompt(in), cardSchema, &out); err != nil {
		return "", err
	}
	return out.SuggestedCardID, nil
}

func (c *Client) SuggestBid(ctx context.Context, hand []string) (int, error) {
	var out bidSuggestion
	if err := c.withFallbacks(ctx, bidPrompt(hand), bidSchema, &out); err != nil {
		return 0, err
	}
	return out.Bid, nil
}

func (c *Client) withFallbacks(ctx context.Context, user, schema string, out any) error {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		err := c.suggestWithModel(ctx, model, user, schema, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}
	return lastErr
}

// suggestWithModel calls one model and, when the reply is not the JSON
// the schema asks for, retries once with a reformat prompt.
func (c *Client) suggestWithModel(ctx context.Context, model, user, schema string, out any) error {
	content, err := c.callLLM(ctx, model, systemPrompt, user)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		c.logger.WarnContext(ctx, "model returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content, schema))
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(content), out); err != nil {
			return fmt.Errorf("invalid suggestion JSON: %w", err)
		}
	}
	return nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

const systemPrompt = `You are an expert card player in a game called Bid2Win.

Rules:
- Card ids are "RANK-SUIT", e.g. "A-HEARTS" or "3-SPADES".
- Points are A, K, Q, J, 10 (10 pts each); the 3-SPADES alone is worth 30.
- You must follow the lead suit if you hold it.
- Trump beats all other suits regardless of rank.

Respond with ONLY a JSON object (no markdown, no code fences, no extra
text) matching the schema given in the user message.`

const (
	cardSchema = `{"suggestedCardId": "<card id>", "reasoning": "<short>"}`
	bidSchema  = `{"bid": <number>, "reasoning": "<short>"}`
)

func cardPrompt(in oracle.SuggestInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hand: %s\n", strings.Join(in.Hand, ", "))
	if len(in.Trick) == 0 {
		b.WriteString("Current trick: empty, you lead.\n")
	} else {
		b.WriteString("Current trick:\n")
		for _, p := range in.Trick {
			fmt.Fprintf(&b, "  %s played %s\n", p.PlayerID, p.CardID)
		}
	}
	if in.LeadSuit != "" {
		fmt.Fprintf(&b, "Lead suit: %s\n", in.LeadSuit)
	}
	if in.TrumpSuit != "" {
		fmt.Fprintf(&b, "Trump suit: %s\n", in.TrumpSuit)
	}
	fmt.Fprintf(&b, "Am I the bidder? %t\nCurrent bid: %d\n", in.IsBidder, in.CurrentBid)
	b.WriteString("\nSuggest which card to play from the hand.\n")
	b.WriteString("Schema: " + cardSchema)
	return b.String()
}

func bidPrompt(hand []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hand: %s\n", strings.Join(hand, ", "))
	b.WriteString("\nSuggest a bid between 100 and 190 in steps of 10, or 0 to pass.\n")
	b.WriteString("Schema: " + bidSchema)
	return b.String()
}

func retryPrompt(badJSON, schema string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
%s`, badJSON, schema)
}
