// Package wisdom wraps the generative-text collaborator: a daily quote for
// the home screen and a mentor-style reading of vent entries. Every call has a
// usable static fallback, so the rest of the app never blocks or fails on the
// model being unavailable.
package wisdom

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/omarhani/rafiq/internal/logger"
)

// Wisdom is one daily quote.
type Wisdom struct {
	Content  string `json:"content"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// VentAnalysis is the mentor's reading of a vent entry.
type VentAnalysis struct {
	Feedback       string  `json:"feedback"`
	Mood           string  `json:"mood"`
	SentimentScore float64 `json:"sentiment_score"`
}

var fallbackWisdom = Wisdom{
	Content:  "Success is not final, failure is not fatal: it is the courage to continue that counts.",
	Source:   "Winston Churchill",
	Category: "Stoic",
}

var errorWisdom = Wisdom{
	Content:  "The best way to predict the future is to create it.",
	Source:   "Peter Drucker",
	Category: "Growth",
}

var fallbackAnalysis = VentAnalysis{
	Feedback: "I hear you. Add an API key to unlock my full analysis capabilities.",
	Mood:     "Neutral",
}

var errorAnalysis = VentAnalysis{
	Feedback: "I am having trouble connecting to my neural core. But know that your feelings are valid. Keep going.",
	Mood:     "Unknown",
}

// Client talks to the chat-completion backend. A nil inner client (no API
// key configured) serves static fallbacks only.
type Client struct {
	api   *openai.Client
	model string
	log   *logger.Logger
}

func NewClient(apiKey, model string, baseLog *logger.Logger) *Client {
	c := &Client{model: model, log: baseLog.With("component", "wisdom")}
	if apiKey == "" {
		c.log.Info("no API key configured, serving static fallbacks")
		return c
	}
	c.api = openai.NewClient(apiKey)
	return c
}

// DailyWisdom returns a short quote for the day. Never returns an error:
// failures fall back to a canned quote.
func (c *Client) DailyWisdom(ctx context.Context) Wisdom {
	if c.api == nil {
		return fallbackWisdom
	}

	prompt := `Generate a profound, short piece of wisdom for a high-achieving student.
It should be Stoic, Islamic, or Scientific.
Format JSON: { "content": "...", "source": "...", "category": "..." }`

	var out Wisdom
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		c.log.Warn("wisdom generation failed", "error", err)
		return errorWisdom
	}
	if out.Content == "" {
		return errorWisdom
	}
	return out
}

// AnalyzeVent returns the mentor's reading of a vent entry. Never returns an
// error: failures fall back to a canned response.
func (c *Client) AnalyzeVent(ctx context.Context, ventText string) VentAnalysis {
	if c.api == nil {
		return fallbackAnalysis
	}

	prompt := `You are Rafiq, a wise, Socratic mentor for a student.
The student wrote: "` + ventText + `"

1. Analyze their mood (one word: Anxious, Burned Out, Determined, etc.).
2. Provide a "Socratic" response (ask a question that leads them to insight, or give a stoic perspective). Keep it under 50 words.
3. Give a sentiment score (-1.0 to 1.0).

Format JSON: { "feedback": "...", "mood": "...", "sentiment_score": 0.0 }`

	var out VentAnalysis
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		c.log.Warn("vent analysis failed", "error", err)
		return errorAnalysis
	}
	if out.Feedback == "" {
		return errorAnalysis
	}
	return out
}

func (c *Client) generateJSON(ctx context.Context, prompt string, out interface{}) error {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return errNoChoices
	}
	return json.Unmarshal([]byte(stripFences(resp.Choices[0].Message.Content)), out)
}

// stripFences removes markdown code fences the model tends to wrap JSON in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

var errNoChoices = errors.New("model returned no choices")
