package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lexops/casechron/models"
	"github.com/lexops/casechron/services/providers"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
)

// Generation settings mirror what the prompts were tuned against:
// extraction runs nearly deterministic, reasoning gets slightly more
// freedom and a larger output budget.
var (
	extractionGenConfig = generationConfig{Temperature: 0.1, TopP: 0.8, TopK: 40, MaxOutputTokens: 2048}
	reasoningGenConfig  = generationConfig{Temperature: 0.2, TopP: 0.9, TopK: 40, MaxOutputTokens: 4096}
)

// Adapter implements the Extractor interface against the Gemini
// generateContent API.
type Adapter struct {
	config     providers.ExtractorConfig
	httpClient *http.Client

	extractionInstruction string
	reasoningInstruction  string
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithPrompts overrides the default prompt instructions. Empty strings
// keep the defaults.
func WithPrompts(extraction, reasoning string) Option {
	return func(a *Adapter) {
		if extraction != "" {
			a.extractionInstruction = extraction
		}
		if reasoning != "" {
			a.reasoningInstruction = reasoning
		}
	}
}

// NewAdapter creates a new Gemini adapter.
func NewAdapter(config providers.ExtractorConfig, opts ...Option) *Adapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	adapter := &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		extractionInstruction: DefaultExtractionInstruction,
		reasoningInstruction:  DefaultReasoningInstruction,
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// Name returns the extractor name
func (a *Adapter) Name() string {
	return "gemini"
}

// ExtractEvents asks the model for raw candidate events in one document.
// A response without any JSON content counts as "nothing found", not an
// error.
func (a *Adapter) ExtractEvents(ctx context.Context, documentText, documentName string) ([]map[string]interface{}, error) {
	user := fmt.Sprintf("Document name: %s\n\nContent:\n%s", documentName, documentText)

	text, err := a.generate(ctx, a.extractionInstruction, user, extractionGenConfig)
	if err != nil {
		return nil, err
	}

	records, err := providers.DecodeEventEnvelope(text)
	if err != nil {
		if errors.Is(err, providers.ErrNoJSONContent) {
			return []map[string]interface{}{}, nil
		}
		return nil, providers.NewExtractorError(a.Name(), "DECODE_ERROR",
			"failed to decode event payload", 0, false, err)
	}
	return records, nil
}

// ReasonOverEvents runs the advisory second pass. Decode failures are
// returned as errors so the caller can fall back to its input list.
func (a *Adapter) ReasonOverEvents(ctx context.Context, events []models.Event, caseDescription string) ([]map[string]interface{}, error) {
	eventsJSON, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return nil, providers.NewExtractorError(a.Name(), "MARSHAL_ERROR",
			"failed to marshal events", 0, false, err)
	}

	user := fmt.Sprintf("Case Description:\n%s\n\nEvents:\n%s", caseDescription, eventsJSON)

	text, err := a.generate(ctx, a.reasoningInstruction, user, reasoningGenConfig)
	if err != nil {
		return nil, err
	}

	records, err := providers.DecodeEventEnvelope(text)
	if err != nil {
		return nil, providers.NewExtractorError(a.Name(), "DECODE_ERROR",
			"failed to decode reasoned events", 0, false, err)
	}
	return records, nil
}

// IsAvailable checks if the API answers a model metadata request.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/v1beta/models/%s", a.config.BaseURL, a.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// generate performs one generateContent call with bounded retries and
// returns the concatenated candidate text.
func (a *Adapter) generate(ctx context.Context, systemInstruction, userText string, genCfg generationConfig) (string, error) {
	geminiReq := &generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: userText}}},
		},
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		GenerationConfig:  &genCfg,
	}

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return "", providers.NewExtractorError(a.Name(), "MARSHAL_ERROR", "failed to marshal request", 0, false, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.config.BaseURL, a.config.Model)

	var httpResp *http.Response
	var lastErr error

	for attempt := 0; attempt <= a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", providers.NewExtractorError(a.Name(), "CANCELLED", "request cancelled", 0, false, ctx.Err())
			case <-time.After(a.config.RetryDelay * time.Duration(attempt)):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
		if err != nil {
			return "", providers.NewExtractorError(a.Name(), "REQUEST_ERROR", "failed to create request", 0, false, err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", a.config.APIKey)
		for k, v := range a.config.Headers {
			httpReq.Header.Set(k, v)
		}

		httpResp, lastErr = a.httpClient.Do(httpReq)
		if lastErr == nil && httpResp.StatusCode < 500 && httpResp.StatusCode != http.StatusTooManyRequests {
			break
		}
		if httpResp != nil {
			httpResp.Body.Close()
			httpResp = nil
		}
	}

	if lastErr != nil {
		return "", providers.NewExtractorError(a.Name(), "HTTP_ERROR", "HTTP request failed", 0, true, lastErr)
	}
	if httpResp == nil {
		return "", providers.NewExtractorError(a.Name(), "HTTP_ERROR", "retries exhausted", 0, true, nil)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", providers.NewExtractorError(a.Name(), "READ_ERROR", "failed to read response", httpResp.StatusCode, false, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", a.handleErrorResponse(httpResp.StatusCode, respBody)
	}

	var geminiResp generateContentResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", providers.NewExtractorError(a.Name(), "UNMARSHAL_ERROR", "failed to unmarshal response", httpResp.StatusCode, false, err)
	}

	if len(geminiResp.Candidates) == 0 {
		return "", providers.NewExtractorError(a.Name(), "EMPTY_RESPONSE", "no candidates in response", httpResp.StatusCode, false, nil)
	}

	var text bytes.Buffer
	for _, p := range geminiResp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}

// handleErrorResponse decodes the Gemini error envelope.
func (a *Adapter) handleErrorResponse(statusCode int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return providers.NewExtractorError(a.Name(), "UNKNOWN_ERROR", string(body), statusCode, false, err)
	}

	retryable := statusCode >= 500 || statusCode == http.StatusTooManyRequests

	return providers.NewExtractorError(
		a.Name(),
		errResp.Error.Status,
		errResp.Error.Message,
		statusCode,
		retryable,
		errors.New(errResp.Error.Message),
	)
}

// Gemini-specific request/response types

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateContentResponse struct {
	Candidates []candidate    `json:"candidates"`
	Usage      *usageMetadata `json:"usageMetadata,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
