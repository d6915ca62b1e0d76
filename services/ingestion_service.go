// services/ingestion_service.go
package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
)

const (
	// Qdrant collection holding response embeddings (1536-dim, cosine)
	ScanResponseVectorCollection = "scan_responses"

	// Typesense collection holding response documents for keyword search
	ScanResponseSearchCollection = "scan_responses"

	embeddingModel = openai.EmbeddingModelTextEmbedding3Small
)

type ingestionService struct {
	qdrantClient    *qdrant.Client
	typesenseClient *typesense.Client
	openAIClient    *openai.Client
	cfg             *config.Config
}

// NewIngestionService creates a new IngestionService instance.
func NewIngestionService(
	qdrantClient *qdrant.Client,
	typesenseClient *typesense.Client,
	cfg *config.Config,
) IngestionService {
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	return &ingestionService{
		qdrantClient:    qdrantClient,
		typesenseClient: typesenseClient,
		openAIClient:    &client,
		cfg:             cfg,
	}
}

// IndexScanResponse embeds one persisted response into Qdrant and indexes
// its text into Typesense so the archive is searchable both ways. Failures
// here never fail the scan unit; callers log and continue.
func (s *ingestionService) IndexScanResponse(ctx context.Context, response *models.LLMResponse, brandName string) error {
	fmt.Printf("[IngestionService] Indexing response %s (%s)\n", response.ResponseID, response.Provider)

	vector, err := s.embedText(ctx, response.ResponseText)
	if err != nil {
		return fmt.Errorf("failed to embed response text: %w", err)
	}

	if err := s.upsertToQdrant(ctx, response, brandName, vector); err != nil {
		return fmt.Errorf("failed to upsert to Qdrant: %w", err)
	}

	if err := s.upsertToTypesense(ctx, response, brandName); err != nil {
		return fmt.Errorf("failed to upsert to Typesense: %w", err)
	}

	fmt.Printf("[IngestionService] Finished indexing response %s\n", response.ResponseID)
	return nil
}

func (s *ingestionService) embedText(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.openAIClient.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
		Model: embeddingModel,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no data")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

func (s *ingestionService) upsertToQdrant(ctx context.Context, response *models.LLMResponse, brandName string, vector []float32) error {
	_, err := s.qdrantClient.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ScanResponseVectorCollection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(response.ResponseID.String()),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"prompt_id":  response.PromptID.String(),
					"provider":   string(response.Provider),
					"brand_name": brandName,
					"created_at": response.CreatedAt.Unix(),
				}),
			},
		},
	})
	return err
}

func (s *ingestionService) upsertToTypesense(ctx context.Context, response *models.LLMResponse, brandName string) error {
	document := map[string]interface{}{
		"id":            response.ResponseID.String(),
		"prompt_id":     response.PromptID.String(),
		"provider":      string(response.Provider),
		"brand_name":    brandName,
		"response_text": response.ResponseText,
		"created_at":    response.CreatedAt.Unix(),
	}

	_, err := s.typesenseClient.Collection(ScanResponseSearchCollection).Documents().Upsert(ctx, document)
	return err
}
