// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/inngest/inngestgo"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"
	typesenseapi "github.com/typesense/typesense-go/v2/typesense/api"

	"github.com/brandbeacon/brandbeacon-workflows/internal/api"
	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/database"
	"github.com/brandbeacon/brandbeacon-workflows/services"
	"github.com/brandbeacon/brandbeacon-workflows/workflows"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("dev.env"); err != nil {
			log.Printf("Note: No .env or dev.env file loaded: %v", err)
		} else {
			log.Printf("Loaded dev.env file for local development")
		}
	} else {
		log.Printf("Loaded .env file")
	}

	cfg := config.Load()

	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Port: %s", cfg.Port)
	log.Printf("Database Host: %s", cfg.Database.Host)
	log.Printf("Database Name: %s", cfg.Database.Name)

	for envName, key := range map[string]string{
		"OpenAI":     cfg.OpenAIAPIKey,
		"Anthropic":  cfg.AnthropicAPIKey,
		"Google AI":  cfg.GoogleAIAPIKey,
		"Perplexity": cfg.PerplexityAPIKey,
	} {
		if key == "" {
			log.Printf("WARNING: %s API key not loaded!", envName)
		} else {
			log.Printf("%s API key loaded (length: %d)", envName, len(key))
		}
	}

	ctx := context.Background()
	dbClient, err := database.NewClient(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close()
	log.Printf("Successfully connected to database")

	repoManager := services.NewRepositoryManager(dbClient)
	log.Printf("Repository manager initialized")

	if cfg.Environment == "development" || cfg.Environment == "" {
		os.Unsetenv("INNGEST_SIGNING_KEY")
		cfg.InngestSigningKey = ""
		log.Printf("Running in development mode - signing key verification disabled")
	}

	// Search infrastructure is optional; scans run without it and the
	// ingestion hook simply stays disabled
	var ingestionService services.IngestionService

	log.Println("Attempting to initialize Qdrant client...")
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host: cfg.Qdrant.Host,
		Port: cfg.Qdrant.Port,
	})
	if err != nil {
		log.Printf("WARNING: Failed to create Qdrant client, response indexing disabled: %v", err)
	} else {
		err = qdrantClient.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: services.ScanResponseVectorCollection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     1536,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			log.Printf("WARNING: Failed to create Qdrant collection, response indexing disabled: %v", err)
			qdrantClient = nil
		} else {
			log.Printf("Qdrant collection %q is ready.", services.ScanResponseVectorCollection)
		}
	}

	log.Println("Attempting to initialize Typesense client...")
	typesenseClient := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("http://%s:%d", cfg.Typesense.Host, cfg.Typesense.Port)),
		typesense.WithAPIKey(cfg.Typesense.APIKey),
	)

	facet := true
	sort := true
	defaultSortField := "created_at"
	responsesSchema := &typesenseapi.CollectionSchema{
		Name: services.ScanResponseSearchCollection,
		Fields: []typesenseapi.Field{
			{Name: "id", Type: "string"},
			{Name: "prompt_id", Type: "string", Facet: &facet},
			{Name: "provider", Type: "string", Facet: &facet},
			{Name: "brand_name", Type: "string", Facet: &facet},
			{Name: "response_text", Type: "string"},
			{Name: "created_at", Type: "int64", Sort: &sort},
		},
		DefaultSortingField: &defaultSortField,
	}
	_, err = typesenseClient.Collections().Create(ctx, responsesSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		log.Printf("WARNING: Failed to create Typesense collection, response indexing disabled: %v", err)
		typesenseClient = nil
	} else {
		log.Printf("Typesense collection %q is ready.", services.ScanResponseSearchCollection)
	}

	if qdrantClient != nil && typesenseClient != nil {
		ingestionService = services.NewIngestionService(qdrantClient, typesenseClient, cfg)
		log.Printf("Ingestion service initialized")
	}

	// Initialize services with repository manager and proper dependencies
	brandService := services.NewBrandService(repoManager)
	scanRunnerService := services.NewScanRunnerService(cfg, repoManager, brandService, ingestionService)
	metricsService := services.NewMetricsService(repoManager)
	topicGeneratorService := services.NewTopicGeneratorService(cfg)
	promptGeneratorService := services.NewPromptGeneratorService(cfg)
	recommendationService := services.NewRecommendationService(cfg)
	log.Printf("Scan services initialized")

	// Create Inngest client
	client, err := inngestgo.NewClient(
		inngestgo.ClientOpts{
			AppID:    "brandbeacon-workflows",
			EventKey: inngestgo.StrPtr(cfg.InngestEventKey),
			Env:      inngestgo.StrPtr(cfg.Environment),
		},
	)
	if err != nil {
		log.Fatalf("Failed to create Inngest client: %v", err)
	}

	// Initialize and register workflows
	log.Printf("Initializing and registering workflows...")

	log.Printf("Initializing NewScanProcessor workflow...")
	scanProcessor := workflows.NewScanProcessor(scanRunnerService, cfg)
	scanProcessor.SetClient(client)
	scanProcessor.ProcessScan()

	log.Printf("Initializing NewMetricsProcessor workflow...")
	metricsProcessor := workflows.NewMetricsProcessor(metricsService)
	metricsProcessor.SetClient(client)
	metricsProcessor.DailyMetricsRollup()
	metricsProcessor.ComputeBrandMetrics()

	log.Printf("All processors initialized and functions registered")

	log.Printf("Starting Inngest client...")
	h := client.Serve()
	mux := http.NewServeMux()
	mux.Handle("/api/inngest", h)
	log.Printf("Inngest client started successfully...")

	// Root endpoint for ALB health check
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"service":"brandbeacon-workflows","status":"running"}`))
	})

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Scan submission, job status, and generation endpoints
	sendEvent := func(ctx context.Context, evt inngestgo.Event) error {
		_, err := client.Send(ctx, evt)
		return err
	}
	apiHandler := api.NewHandler(cfg, brandService, repoManager,
		topicGeneratorService, promptGeneratorService, recommendationService, sendEvent)
	apiHandler.Register(mux)

	port := cfg.Port
	log.Printf("Starting BrandBeacon Workflows service on port %s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}
