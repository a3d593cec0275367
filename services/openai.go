package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

// OpenAIGateway is the fallback provider for OpenAI-compatible endpoints,
// selected with LINEAGE_PROVIDER=openai. Structured output uses JSON mode
// with the response schema embedded in the prompt instead of a declarative
// schema parameter.
type OpenAIGateway struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

var defaultOpenAIGateway = sync.OnceValues(func() (*OpenAIGateway, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set; set it to use the OpenAI-compatible provider")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &OpenAIGateway{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger,
	}, nil
})

// DefaultOpenAIGateway returns the lazily-initialized singleton gateway.
func DefaultOpenAIGateway() (*OpenAIGateway, error) {
	return defaultOpenAIGateway()
}

// AskText sends the prompt for plain text generation. Same sentinel-string
// contract as the Gemini gateway.
func (g *OpenAIGateway) AskText(ctx context.Context, prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return lineage.ErrorPrefix + "Please provide a valid prompt for the AI to process."
	}

	g.logPromptTokens("text", prompt)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		g.logger.WithError(err).Error("OpenAI text API call failed")
		return fmt.Sprintf("%sAI Text API Call Failed: %v. Possible issues: network problem, rate limit, or invalid API key/model access.", lineage.ErrorPrefix, err)
	}

	if len(resp.Choices) == 0 {
		return lineage.ErrorPrefix + "AI did not return a valid text response. The AI might have refused the query or an internal error occurred."
	}

	return resp.Choices[0].Message.Content
}

// AskStructured sends the prompt in JSON mode and decodes the result with the
// same malformed-JSON diagnostics as the Gemini path.
func (g *OpenAIGateway) AskStructured(ctx context.Context, prompt string, schema *genai.Schema) *lineage.StructuredResponse {
	if strings.TrimSpace(prompt) == "" {
		return &lineage.StructuredResponse{Error: lineage.ErrorPrefix + "Please provide a valid prompt for structured AI processing."}
	}
	if schema == nil {
		return &lineage.StructuredResponse{Error: lineage.ErrorPrefix + "A response schema is required for structured AI output."}
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return &lineage.StructuredResponse{Error: fmt.Sprintf("%sfailed to encode response schema: %v", lineage.ErrorPrefix, err)}
	}

	fullPrompt := prompt + "\n\nThe JSON object must conform to this JSON Schema:\n" + string(schemaJSON)
	g.logPromptTokens("structured", fullPrompt)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fullPrompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		g.logger.WithError(err).Error("OpenAI structured API call failed")
		return &lineage.StructuredResponse{
			Error: fmt.Sprintf("%sAI Structured API Call Failed: %v. Possible issues: network problem, rate limit, or invalid API key/model access.", lineage.ErrorPrefix, err),
		}
	}

	if len(resp.Choices) == 0 {
		return &lineage.StructuredResponse{
			Error: lineage.ErrorPrefix + "AI did not return a valid structured response. It might have refused the query or an internal error occurred.",
		}
	}

	return DecodeStructured(resp.Choices[0].Message.Content)
}

func (g *OpenAIGateway) logPromptTokens(kind, prompt string) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return
	}
	g.logger.WithFields(logrus.Fields{
		"kind":   kind,
		"tokens": len(enc.Encode(prompt, nil, nil)),
	}).Debug("Prompt token estimate")
}
