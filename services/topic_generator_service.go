// services/topic_generator_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
)

const topicGeneratorModel = openai.ChatModel("gpt-4o")

type topicGeneratorService struct {
	cfg          *config.Config
	openAIClient *openai.Client
}

func NewTopicGeneratorService(cfg *config.Config) TopicGeneratorService {
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	return &topicGeneratorService{
		cfg:          cfg,
		openAIClient: &client,
	}
}

// TopicsResponse represents the structured output from OpenAI
type TopicsResponse struct {
	Topics []string `json:"topics" jsonschema_description:"Five short topic names relevant to the brand's market"`
}

// Generate the JSON schema at initialization time
var TopicsResponseSchema = GenerateSchema[TopicsResponse]()

func (s *topicGeneratorService) GenerateTopics(ctx context.Context, brandName string, description string) ([]string, error) {
	fmt.Printf("[GenerateTopics] Generating topics for brand: %s\n", brandName)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "topic_generation",
		Description: openai.String("Suggest tracking topics for a brand visibility scan"),
		Schema:      TopicsResponseSchema,
		Strict:      openai.Bool(true),
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a brand marketing analyst. Suggest concise topics where AI assistants are likely to discuss brands in this market."),
			openai.UserMessage(s.buildTopicPrompt(brandName, description)),
		},
		Model: topicGeneratorModel,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.7),
	}

	chatResponse, err := s.openAIClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate topics: %w", err)
	}
	if len(chatResponse.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned from OpenAI")
	}

	var parsed TopicsResponse
	if err := json.Unmarshal([]byte(chatResponse.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse topic response: %w", err)
	}

	fmt.Printf("[GenerateTopics] Generated %d topics for %s\n", len(parsed.Topics), brandName)
	return parsed.Topics, nil
}

func (s *topicGeneratorService) buildTopicPrompt(brandName, description string) string {
	return fmt.Sprintf(`## Brand: %s

## Description
%s

## Task
Suggest exactly 5 tracking topics for this brand. Each topic should be a
short noun phrase (2-5 words) describing a product category, use case, or
buying question where this brand competes for attention in AI assistant
answers.`, brandName, description)
}
