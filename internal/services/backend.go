package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

const maxBackendResponseSize = 10 << 20

type BackendClient interface {
	Health(ctx context.Context) (*models.HealthResponse, error)
	AnalyzeResume(ctx context.Context, resumeText string) (*models.RawAnalysis, error)
	MatchResume(ctx context.Context, resumeText, jobDescription string) (*models.RawMatch, error)
}

type backendClient struct {
	baseURL       string
	httpClient    *http.Client
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewBackendClient(baseURL string, timeout time.Duration, log *zap.Logger) BackendClient {
	return &backendClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		promptBuilder: NewPromptBuilder(),
		logger:        logger.OrNop(log),
	}
}

// Health implements BackendClient. Any answer other than a 2xx with
// status "ok" is reported as unavailable.
func (b *backendClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &BackendUnavailableError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &BackendUnavailableError{Cause: fmt.Errorf("health check returned status %d", resp.StatusCode)}
	}

	var health models.HealthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBackendResponseSize)).Decode(&health); err != nil {
		return nil, &BackendUnavailableError{Cause: fmt.Errorf("invalid health response: %w", err)}
	}

	if health.Status != "ok" {
		return &health, &BackendUnavailableError{Cause: fmt.Errorf("backend status %q", health.Status)}
	}

	return &health, nil
}

// AnalyzeResume implements BackendClient.
func (b *backendClient) AnalyzeResume(ctx context.Context, resumeText string) (*models.RawAnalysis, error) {
	body := models.AnalyzeRequest{
		ResumeText: resumeText,
		Prompt:     b.promptBuilder.BuildResumeAnalysisPrompt(),
	}

	var result models.RawAnalysis
	if err := b.post(ctx, "/analyze-resume", body, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, &RemoteAnalysisError{Message: result.Error}
	}

	return &result, nil
}

// MatchResume implements BackendClient.
func (b *backendClient) MatchResume(ctx context.Context, resumeText, jobDescription string) (*models.RawMatch, error) {
	body := models.MatchRequest{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		Prompt:         b.promptBuilder.BuildJobMatchPrompt(resumeText, jobDescription),
	}

	var result models.RawMatch
	if err := b.post(ctx, "/match-resume", body, &result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, &RemoteAnalysisError{Message: result.Error}
	}

	return &result, nil
}

func (b *backendClient) post(ctx context.Context, path string, body any, target any) error {
	reqID := uuid.New().String()
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	b.logger.Info("backend request",
		zap.String("req_id", reqID),
		zap.String("path", path),
		zap.Int("content_length", len(payload)),
	)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Error("backend request failed",
			zap.String("req_id", reqID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return &BackendUnavailableError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBackendResponseSize))
	if err != nil {
		return &BackendUnavailableError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	b.logger.Info("backend response",
		zap.String("req_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)),
	)

	var envelope models.BackendResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode/100 != 2 {
			return &RemoteAnalysisError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &RemoteAnalysisError{StatusCode: resp.StatusCode, Message: "invalid response from backend", Cause: err}
	}

	if resp.StatusCode/100 != 2 || !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "Analysis failed"
		}
		return &RemoteAnalysisError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := decodeResultData(envelope.Data, target); err != nil {
		return &RemoteAnalysisError{StatusCode: resp.StatusCode, Message: "invalid analysis result", Cause: err}
	}

	return nil
}

// decodeResultData accepts the result either as a JSON object or as a
// string holding the model's raw answer.
func decodeResultData(data json.RawMessage, target any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("empty result")
	}

	if data[0] == '"' {
		var reply string
		if err := json.Unmarshal(data, &reply); err != nil {
			return err
		}
		data = []byte(extractJSON(reply))
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}
