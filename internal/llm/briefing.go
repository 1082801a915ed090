// Package llm generates the optional narrative briefing for reports through
// the OpenAI chat completion API. Reports work without it; callers treat any
// error here as a missing briefing, not a failed report.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"weathercast/internal/logger"
	"weathercast/internal/models"
)

const (
	briefingMaxTokens   = 2000
	briefingTemperature = 0.3
	briefingTimeout     = 60 * time.Second
)

// BriefingClient generates weather briefings with an OpenAI chat model.
type BriefingClient struct {
	client *openai.Client
	model  string
}

// NewBriefingClient creates a briefing client
func NewBriefingClient(apiKey, model string) *BriefingClient {
	return &BriefingClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateBriefing produces a short markdown briefing for one reading and its
// analysis.
func (c *BriefingClient) GenerateBriefing(ctx context.Context, location string, reading models.Reading, analysis *models.Analysis) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("briefing client not initialized")
	}

	systemPrompt, err := c.loadSystemPrompt()
	if err != nil {
		logger.Debug("Using embedded briefing prompt", map[string]interface{}{"error": err.Error()})
		systemPrompt = c.defaultSystemPrompt()
	}

	prompt, err := c.buildPrompt(location, reading, analysis)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, briefingTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   briefingMaxTokens,
			Temperature: briefingTemperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// loadSystemPrompt reads the briefing prompt from the templates directory.
// The lookup tries the working directory and the binary's directory so both
// `go run` and an installed binary find it.
func (c *BriefingClient) loadSystemPrompt() (string, error) {
	paths := []string{
		filepath.Join("internal", "templates", "briefing_prompt.txt"),
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "internal", "templates", "briefing_prompt.txt"))
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err == nil {
			return string(content), nil
		}
	}

	return "", fmt.Errorf("briefing prompt template not found")
}

// buildPrompt embeds the reading and analysis JSON into the user prompt.
func (c *BriefingClient) buildPrompt(location string, reading models.Reading, analysis *models.Analysis) (string, error) {
	readingJSON, err := json.MarshalIndent(reading, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal reading: %w", err)
	}

	prompt := fmt.Sprintf("## Weather Briefing Request: %s\n\n", location)
	prompt += "### Current Conditions:\n```json\n" + string(readingJSON) + "\n```\n\n"

	if analysis != nil {
		analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal analysis: %w", err)
		}
		prompt += "### Detected Conditions and Trends:\n```json\n" + string(analysisJSON) + "\n```\n\n"
	}

	prompt += "### Instructions:\n" +
		"Write a short weather briefing for this location based on the data above. " +
		"Lead with what matters most to someone heading outside today, mention the trend, " +
		"and keep it under 120 words of plain markdown without headings."

	return prompt, nil
}

// defaultSystemPrompt is the embedded fallback when no template file exists.
func (c *BriefingClient) defaultSystemPrompt() string {
	return `You are a weather presenter writing brief, practical condition summaries.
You receive current weather readings and detected conditions as JSON and turn
them into plain language a commuter or traveler can act on. Be concrete about
temperatures, precipitation, and wind. Never invent data that is not in the
input, and say so when a value is missing. Keep the tone friendly and compact.`
}
