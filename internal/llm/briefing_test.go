package llm

import (
	"context"
	"strings"
	"testing"

	"weathercast/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	c := NewBriefingClient("test-key", "gpt-4o-mini")

	reading := models.Reading{
		Timestamp:   "2026-01-15T12:00:00Z",
		Temperature: models.Float(12.5),
		Pressure:    models.Float(1008.2),
		SymbolCode:  "partlycloudy_day",
	}
	analysis := &models.Analysis{
		Status:             "analyzed",
		Trend:              "stable",
		ConditionsDetected: []string{"comfortable_temperature"},
	}

	prompt, err := c.buildPrompt("Oslo, Norway", reading, analysis)
	if err != nil {
		t.Fatalf("buildPrompt() error = %v", err)
	}

	for _, want := range []string{
		"Oslo, Norway",
		"### Current Conditions:",
		"```json",
		`"temperature": 12.5`,
		"### Detected Conditions and Trends:",
		`"comfortable_temperature"`,
		"### Instructions:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptWithoutAnalysis(t *testing.T) {
	c := NewBriefingClient("test-key", "gpt-4o-mini")

	prompt, err := c.buildPrompt("Oslo", models.Reading{Temperature: models.Float(3)}, nil)
	if err != nil {
		t.Fatalf("buildPrompt() error = %v", err)
	}
	if strings.Contains(prompt, "Detected Conditions") {
		t.Error("prompt should omit the analysis section when analysis is nil")
	}
	if !strings.Contains(prompt, "### Instructions:") {
		t.Error("prompt should always end with instructions")
	}
}

func TestDefaultSystemPrompt(t *testing.T) {
	c := NewBriefingClient("test-key", "gpt-4o-mini")

	prompt := c.defaultSystemPrompt()
	if prompt == "" {
		t.Fatal("embedded system prompt should not be empty")
	}
	if !strings.Contains(prompt, "weather") {
		t.Error("system prompt should describe the weather briefing role")
	}
}

func TestGenerateBriefingNilClient(t *testing.T) {
	var c *BriefingClient
	if _, err := c.GenerateBriefing(context.Background(), "Oslo", models.Reading{}, nil); err == nil {
		t.Fatal("nil client should error, not panic")
	}
}
