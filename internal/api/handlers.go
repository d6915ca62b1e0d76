// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/inngest/inngestgo"

	"github.com/brandbeacon/brandbeacon-workflows/internal/config"
	"github.com/brandbeacon/brandbeacon-workflows/internal/models"
	"github.com/brandbeacon/brandbeacon-workflows/services"
)

// Mentions handed to the recommendation model per request
const recommendationMentionLimit = 50

// EventSendFunc hands a scan event to the job transport
type EventSendFunc func(ctx context.Context, evt inngestgo.Event) error

// Handler serves scan submission, job status, and generation endpoints
type Handler struct {
	cfg                   *config.Config
	brandService          services.BrandService
	repos                 *services.RepositoryManager
	topicGenerator        services.TopicGeneratorService
	promptGenerator       services.PromptGeneratorService
	recommendationService services.RecommendationService
	sendEvent             EventSendFunc
}

func NewHandler(
	cfg *config.Config,
	brandService services.BrandService,
	repos *services.RepositoryManager,
	topicGenerator services.TopicGeneratorService,
	promptGenerator services.PromptGeneratorService,
	recommendationService services.RecommendationService,
	sendEvent EventSendFunc,
) *Handler {
	return &Handler{
		cfg:                   cfg,
		brandService:          brandService,
		repos:                 repos,
		topicGenerator:        topicGenerator,
		promptGenerator:       promptGenerator,
		recommendationService: recommendationService,
		sendEvent:             sendEvent,
	}
}

// Register mounts the handler's routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/brands/{brandId}/scan", h.SubmitScan)
	mux.HandleFunc("GET /api/jobs/{jobId}", h.JobStatus)
	mux.HandleFunc("POST /api/brands/{brandId}/topics/generate", h.GenerateTopics)
	mux.HandleFunc("POST /api/brands/{brandId}/prompts/generate", h.GeneratePrompts)
	mux.HandleFunc("POST /api/brands/{brandId}/recommendations", h.GenerateRecommendations)
}

// submitScanRequest is the optional request body for scan submission
type submitScanRequest struct {
	PromptIDs []string `json:"promptIds,omitempty"`
}

type submitScanResponse struct {
	JobID       string `json:"jobId"`
	PromptCount int    `json:"promptCount"`
	Message     string `json:"message"`
}

// jobStatusResponse mirrors what dashboard polling consumes
type jobStatusResponse struct {
	ID             string        `json:"id"`
	Status         string        `json:"status"`
	Progress       int           `json:"progress"`
	FailedReason   *string       `json:"failedReason,omitempty"`
	Data           jobStatusData `json:"data"`
	ProcessedCount int           `json:"processedCount"`
	FailedCount    int           `json:"failedCount"`
	ProcessedOn    *time.Time    `json:"processedOn,omitempty"`
	FinishedOn     *time.Time    `json:"finishedOn,omitempty"`
}

type jobStatusData struct {
	BrandID   string   `json:"brandId"`
	PromptIDs []string `json:"promptIds"`
	Providers []string `json:"providers"`
}

// SubmitScan validates the brand, records a queued job, and emits the
// scan event. The job executes asynchronously; callers poll JobStatus.
func (h *Handler) SubmitScan(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.QueueConfigured() {
		writeServiceError(w, services.ErrQueueNotConfigured)
		return
	}

	brandID, err := uuid.Parse(r.PathValue("brandId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid brand ID format")
		return
	}

	// Body is optional; a malformed one is still a client error
	var req submitScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.brandService.GetScanDetails(r.Context(), brandID, req.PromptIDs)
	if err != nil {
		if !isClientError(err) {
			fmt.Printf("[SubmitScan] Error loading scan details: %v\n", err)
		}
		writeServiceError(w, err)
		return
	}

	promptIDs := make([]string, len(details.Prompts))
	for i, p := range details.Prompts {
		promptIDs[i] = p.PromptID.String()
	}

	job := &models.ScanJob{
		JobID:     uuid.New(),
		BrandID:   brandID,
		PromptIDs: promptIDs,
		Providers: models.WebSearchProviders,
		Status:    models.JobStatusQueued,
		CreatedAt: time.Now(),
	}
	if err := h.repos.ScanJobRepo.Create(r.Context(), job); err != nil {
		fmt.Printf("[SubmitScan] Error creating job record: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to create scan job")
		return
	}

	evt := inngestgo.Event{
		Name: "brand.scan",
		Data: map[string]interface{}{
			"job_id":       job.JobID.String(),
			"brand_id":     brandID.String(),
			"triggered_by": "api",
		},
	}
	if err := h.sendEvent(r.Context(), evt); err != nil {
		fmt.Printf("[SubmitScan] Error sending scan event: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to enqueue scan job")
		return
	}

	fmt.Printf("[SubmitScan] Queued scan job %s for brand %s (%d prompts)\n",
		job.JobID, details.Brand.Name, len(promptIDs))

	writeJSON(w, http.StatusAccepted, submitScanResponse{
		JobID:       job.JobID.String(),
		PromptCount: len(promptIDs),
		Message:     fmt.Sprintf("Scan queued for brand %s", details.Brand.Name),
	})
}

// JobStatus reports the durable job record
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job ID format")
		return
	}

	job, err := h.repos.ScanJobRepo.GetByID(r.Context(), jobID)
	if err != nil {
		fmt.Printf("[JobStatus] Error loading job: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load scan job")
		return
	}
	if job == nil {
		writeServiceError(w, services.ErrJobNotFound)
		return
	}

	providers := make([]string, len(job.Providers))
	for i, p := range job.Providers {
		providers[i] = string(p)
	}

	writeJSON(w, http.StatusOK, jobStatusResponse{
		ID:           job.JobID.String(),
		Status:       string(job.Status),
		Progress:     job.Progress,
		FailedReason: job.FailedReason,
		Data: jobStatusData{
			BrandID:   job.BrandID.String(),
			PromptIDs: job.PromptIDs,
			Providers: providers,
		},
		ProcessedCount: job.ProcessedCount,
		FailedCount:    job.FailedCount,
		ProcessedOn:    job.ProcessedOn,
		FinishedOn:     job.FinishedOn,
	})
}

type generateTopicsRequest struct {
	Description string `json:"description,omitempty"`
}

// GenerateTopics suggests tracking topics for the brand. The description
// in the body wins over the stored one.
func (h *Handler) GenerateTopics(w http.ResponseWriter, r *http.Request) {
	brandID, err := uuid.Parse(r.PathValue("brandId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid brand ID format")
		return
	}

	var req generateTopicsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.brandService.GetBrand(r.Context(), brandID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	description := req.Description
	if description == "" && brand.Description != nil {
		description = *brand.Description
	}

	topics, err := h.topicGenerator.GenerateTopics(r.Context(), brand.Name, description)
	if err != nil {
		fmt.Printf("[GenerateTopics] Error generating topics: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to generate topics")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

type generatePromptsRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count,omitempty"`
}

// GeneratePrompts writes natural-language prompts for one topic
func (h *Handler) GeneratePrompts(w http.ResponseWriter, r *http.Request) {
	brandID, err := uuid.Parse(r.PathValue("brandId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid brand ID format")
		return
	}

	var req generatePromptsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	count := req.Count
	if count <= 0 {
		count = 5
	}

	brand, err := h.brandService.GetBrand(r.Context(), brandID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	prompts, err := h.promptGenerator.GeneratePrompts(r.Context(), brand.Name, req.Topic, count)
	if err != nil {
		fmt.Printf("[GeneratePrompts] Error generating prompts: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to generate prompts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"prompts": prompts})
}

type generateRecommendationsRequest struct {
	JobID string `json:"jobId"`
}

// GenerateRecommendations turns a finished scan into content advice. The
// referenced job supplies the run counts; recent stored mentions of the
// brand supply the examples.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	brandID, err := uuid.Parse(r.PathValue("brandId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid brand ID format")
		return
	}

	var req generateRecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job ID format")
		return
	}

	brand, err := h.brandService.GetBrand(r.Context(), brandID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	job, err := h.repos.ScanJobRepo.GetByID(r.Context(), jobID)
	if err != nil {
		fmt.Printf("[GenerateRecommendations] Error loading job: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load scan job")
		return
	}
	if job == nil || job.BrandID != brandID {
		writeServiceError(w, services.ErrJobNotFound)
		return
	}

	mentions, err := h.repos.MentionRepo.ListRecentByBrand(r.Context(), brandID, recommendationMentionLimit)
	if err != nil {
		fmt.Printf("[GenerateRecommendations] Error loading mentions: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load brand mentions")
		return
	}

	citedCount := 0
	for _, m := range mentions {
		if m.IsCited {
			citedCount++
		}
	}
	summary := &services.ScanSummary{
		JobID:          job.JobID,
		BrandName:      brand.Name,
		TotalUnits:     len(job.PromptIDs) * len(job.Providers),
		ProcessedCount: job.ProcessedCount,
		FailedCount:    job.FailedCount,
		MentionCount:   len(mentions),
		SourceCount:    citedCount,
	}

	recommendations, err := h.recommendationService.GenerateRecommendations(r.Context(), brand.Name, summary, mentions)
	if err != nil {
		fmt.Printf("[GenerateRecommendations] Error generating recommendations: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"recommendations": recommendations})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[api] Error encoding response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func isClientError(err error) bool {
	return errors.Is(err, services.ErrBrandNotFound) ||
		errors.Is(err, services.ErrNoPrompts) ||
		errors.Is(err, services.ErrJobNotFound) ||
		errors.Is(err, services.ErrQueueNotConfigured)
}

// writeServiceError maps the service sentinels onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrQueueNotConfigured):
		writeError(w, http.StatusServiceUnavailable, services.ErrQueueNotConfigured.Error())
	case errors.Is(err, services.ErrBrandNotFound):
		writeError(w, http.StatusNotFound, "brand not found")
	case errors.Is(err, services.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "scan job not found")
	case errors.Is(err, services.ErrNoPrompts):
		writeError(w, http.StatusBadRequest, "brand has no prompts to scan")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
