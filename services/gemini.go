package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

const geminiKeyPlaceholder = "YOUR_ACTUAL_GEMINI_API_KEY_HERE"

// Cost-effective first, then stable, then large.
var preferredGeminiModels = []string{
	"models/gemini-1.5-flash",
	"models/gemini-pro",
	"models/gemini-1.5-pro",
}

// GeminiGateway talks to the Gemini API. It is initialized at most once per
// process; all call sites share the same handle.
type GeminiGateway struct {
	client *genai.Client
	model  string
	logger *logrus.Logger
}

var defaultGeminiGateway = sync.OnceValues(func() (*GeminiGateway, error) {
	return newGeminiGateway(context.Background())
})

// DefaultGeminiGateway returns the lazily-initialized singleton gateway.
func DefaultGeminiGateway() (*GeminiGateway, error) {
	return defaultGeminiGateway()
}

func newGeminiGateway(ctx context.Context) (*GeminiGateway, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" || apiKey == geminiKeyPlaceholder {
		return nil, fmt.Errorf("GEMINI_API_KEY not found or is the placeholder value; set it to use AI features")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	available := make([]string, 0)
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list Gemini models: %v", err)
		}
		for _, action := range model.SupportedActions {
			if action == "generateContent" {
				available = append(available, model.Name)
				break
			}
		}
	}

	chosen, err := pickModel(available)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.WithField("model", chosen).Info("Gemini model initialized")

	return &GeminiGateway{
		client: client,
		model:  chosen,
		logger: logger,
	}, nil
}

// pickModel selects the first preferred model that supports content
// generation, falling back to any capability-matching model.
func pickModel(available []string) (string, error) {
	for _, preferred := range preferredGeminiModels {
		for _, name := range available {
			if name == preferred {
				return name, nil
			}
		}
	}

	if len(available) > 0 {
		return available[0], nil
	}

	return "", fmt.Errorf("no suitable Gemini model found that supports generateContent; " +
		"ensure your API key is correct and valid, or check Google AI Studio for available models")
}

// AskText sends the prompt for plain text generation and returns the model's
// Markdown response. Failures come back as a sentinel-prefixed string, never
// as a Go error.
func (g *GeminiGateway) AskText(ctx context.Context, prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return lineage.ErrorPrefix + "Please provide a valid prompt for the AI to process."
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.WithError(err).Error("Gemini text API call failed")
		return fmt.Sprintf("%sGemini Text API Call Failed: %v. Possible issues: network problem, rate limit, or invalid API key/model access.", lineage.ErrorPrefix, err)
	}

	if reason := blockReason(resp); reason != "" {
		return fmt.Sprintf("%sAI Blocked Content: your request for text generation was blocked due to safety policy. Details: %s.", lineage.ErrorPrefix, reason)
	}

	text := firstPartText(resp)
	if text == "" {
		g.logger.Warn("Gemini API returned an empty or unexpected text response structure")
		return lineage.ErrorPrefix + "AI did not return a valid text response. The AI might have refused the query or an internal error occurred. Please try again with different or simpler code."
	}

	return text
}

// AskStructured sends the prompt requesting a schema-constrained JSON
// response. Any failure, including malformed JSON from the model, is folded
// into the Error field of the returned response.
func (g *GeminiGateway) AskStructured(ctx context.Context, prompt string, schema *genai.Schema) *lineage.StructuredResponse {
	if strings.TrimSpace(prompt) == "" {
		return &lineage.StructuredResponse{Error: lineage.ErrorPrefix + "Please provide a valid prompt for structured AI processing."}
	}
	if schema == nil {
		return &lineage.StructuredResponse{Error: lineage.ErrorPrefix + "A response schema is required for structured AI output."}
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		g.logger.WithError(err).Error("Gemini structured API call failed")
		return &lineage.StructuredResponse{
			Error: fmt.Sprintf("%sGemini Structured API Call Failed: %v. Possible issues: network problem, rate limit, or invalid API key/model access.", lineage.ErrorPrefix, err),
		}
	}

	if reason := blockReason(resp); reason != "" {
		return &lineage.StructuredResponse{
			Error: fmt.Sprintf("%sAI Blocked Content (Structured): your request was blocked due to safety policy. Details: %s.", lineage.ErrorPrefix, reason),
		}
	}

	raw := firstPartText(resp)
	if raw == "" {
		g.logger.Warn("Gemini API returned an empty or unexpected structured response structure")
		return &lineage.StructuredResponse{
			Error: lineage.ErrorPrefix + "AI did not return a valid structured response. It might have refused the query or an internal error occurred.",
		}
	}

	return DecodeStructured(raw)
}

// DecodeStructured parses a raw model payload into a structured response.
// Invalid JSON is reported with a truncated excerpt for diagnostics.
func DecodeStructured(raw string) *lineage.StructuredResponse {
	if !gjson.Valid(raw) {
		return &lineage.StructuredResponse{
			Error: fmt.Sprintf("%sAI returned malformed JSON. Raw: %s", lineage.ErrorPrefix, truncate(raw, 200)),
		}
	}

	var resp lineage.StructuredResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return &lineage.StructuredResponse{
			Error: fmt.Sprintf("%sAI returned malformed JSON: %v. Raw: %s", lineage.ErrorPrefix, err, truncate(raw, 200)),
		}
	}

	return &resp
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.PromptFeedback == nil {
		return ""
	}
	return string(resp.PromptFeedback.BlockReason)
}

func firstPartText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}
