// services/prompt_generator_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
)

const promptGeneratorModel = openai.ChatModel("gpt-4o")

type promptGeneratorService struct {
	cfg          *config.Config
	openAIClient *openai.Client
}

func NewPromptGeneratorService(cfg *config.Config) PromptGeneratorService {
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	return &promptGeneratorService{
		cfg:          cfg,
		openAIClient: &client,
	}
}

// PromptsResponse represents the structured output from OpenAI
type PromptsResponse struct {
	Prompts []string `json:"prompts" jsonschema_description:"Natural-language questions a consumer might ask an AI assistant about this topic"`
}

var PromptsResponseSchema = GenerateSchema[PromptsResponse]()

func (s *promptGeneratorService) GeneratePrompts(ctx context.Context, brandName, topic string, count int) ([]string, error) {
	fmt.Printf("[GeneratePrompts] Generating %d prompts for topic %q (brand: %s)\n", count, topic, brandName)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "prompt_generation",
		Description: openai.String("Write consumer questions for an AI assistant about a topic"),
		Schema:      PromptsResponseSchema,
		Strict:      openai.Bool(true),
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You write realistic questions consumers ask AI assistants when researching products. Questions must never name any specific brand."),
			openai.UserMessage(s.buildPromptPrompt(brandName, topic, count)),
		},
		Model: promptGeneratorModel,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.8),
	}

	chatResponse, err := s.openAIClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prompts: %w", err)
	}
	if len(chatResponse.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned from OpenAI")
	}

	var parsed PromptsResponse
	if err := json.Unmarshal([]byte(chatResponse.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse prompt response: %w", err)
	}

	if len(parsed.Prompts) > count {
		parsed.Prompts = parsed.Prompts[:count]
	}

	fmt.Printf("[GeneratePrompts] Generated %d prompts for topic %q\n", len(parsed.Prompts), topic)
	return parsed.Prompts, nil
}

func (s *promptGeneratorService) buildPromptPrompt(brandName, topic string, count int) string {
	return fmt.Sprintf(`## Topic: %s

## Context
These questions measure how often the brand "%s" appears organically in AI
assistant answers, so the questions themselves must be brand-neutral.

## Task
Write exactly %d questions a consumer researching "%s" would ask an AI
assistant. Vary intent across recommendations, comparisons, and buying
advice. Do not mention any brand by name.`, topic, brandName, count, topic)
}
