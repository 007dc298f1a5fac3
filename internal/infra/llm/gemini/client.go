package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sameer-hoda/mynextpr-sub001/pkg/metrics"
	"github.com/sameer-hoda/mynextpr-sub001/pkg/tokens"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-pro-latest"
)

// Part is one text fragment of a content block.
type Part struct {
	Text string `json:"text"`
}

// Content mirrors the Gemini content structure.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the sampling parameters sent with every call.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateContentRequest is the payload sent to the Gemini API.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateContentResponse captures a non streaming Gemini reply.
type GenerateContentResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *UsageMetadata `json:"usageMetadata"`
}

// UsageMetadata reports token counts for one call.
type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// APIError is a structured error returned by the Gemini API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini request failed: status=%d %s: %s", e.StatusCode, e.Status, e.Message)
}

// Client performs HTTP requests to the Gemini API. Model and sampling
// parameters are fixed at construction.
type Client struct {
	apiKey          string
	baseURL         string
	model           string
	temperature     float64
	maxOutputTokens int
	httpClient      *http.Client
	logger          *slog.Logger
}

// NewClient constructs a Gemini client.
func NewClient(apiKey, baseURL, model string, temperature float64, maxOutputTokens int, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:          apiKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger.With("component", "gemini.client"),
	}, nil
}

// GenerateText sends one prompt and returns the concatenated candidate text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxOutputTokens,
		},
	}
	body, err := c.doRequest(ctx, req)
	if err != nil {
		return "", err
	}
	var out GenerateContentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode generate content response: %w", err)
	}
	text := candidateText(out)
	if text == "" {
		return "", errors.New("gemini returned no candidate text")
	}
	c.logUsage(out.UsageMetadata, prompt, text)
	return text, nil
}

func (c *Client) doRequest(ctx context.Context, req GenerateContentRequest) ([]byte, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if apiErr := parseAPIError(resp.StatusCode, payload); apiErr != nil {
			return nil, apiErr
		}
		return nil, fmt.Errorf("gemini request failed: status=%d body=%s", resp.StatusCode, string(payload))
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) newHTTPRequest(ctx context.Context, req GenerateContentRequest) (*http.Request, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generate content request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate content request: %w", err)
	}
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func (c *Client) logUsage(meta *UsageMetadata, prompt, text string) {
	usage := metrics.TokenUsage{}
	if meta != nil {
		usage = metrics.TokenUsage{
			PromptTokens:     meta.PromptTokenCount,
			CompletionTokens: meta.CandidatesTokenCount,
			TotalTokens:      meta.TotalTokenCount,
		}
	}
	if usage.IsZero() {
		usage = metrics.FromCounts(tokens.Estimate(prompt), tokens.Estimate(text))
	}
	c.logger.Debug("model call complete",
		"model", c.model,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"total_tokens", usage.TotalTokens,
	)
}

func candidateText(out GenerateContentResponse) string {
	if len(out.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func parseAPIError(statusCode int, payload []byte) *APIError {
	var body struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Error.Message == "" {
		return nil
	}
	return &APIError{
		StatusCode: statusCode,
		Status:     body.Error.Status,
		Message:    body.Error.Message,
	}
}
