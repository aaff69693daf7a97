package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blog-summariser/pkg/httpclient"
)

// DefaultModelURL is the hosted inference endpoint for facebook/bart-large-cnn.
const DefaultModelURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

// RemoteError reports a summarization response that could not be used.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Config holds configuration for the Hugging Face client
type Config struct {
	ModelURL  string
	APIKey    string
	MinLength int
	MaxLength int
	Timeout   time.Duration
}

// HuggingFaceClient summarizes text with the Hugging Face Inference API.
type HuggingFaceClient struct {
	client *httpclient.HTTPClient
	cfg    Config
}

// NewHuggingFaceClient creates a new summarization client
func NewHuggingFaceClient(cfg Config) *HuggingFaceClient {
	if cfg.ModelURL == "" {
		cfg.ModelURL = DefaultModelURL
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = 15
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 60
	}
	return &HuggingFaceClient{
		client: httpclient.NewClient(httpclient.APIClient, cfg.Timeout),
		cfg:    cfg,
	}
}

type summarizeRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters summarizeOptions `json:"parameters"`
}

type summarizeOptions struct {
	MaxLength int `json:"max_length"`
	MinLength int `json:"min_length"`
}

// Summarize returns a short abstractive summary of text.
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(summarizeRequest{
		Inputs: text,
		Parameters: summarizeOptions{
			MaxLength: c.cfg.MaxLength,
			MinLength: c.cfg.MinLength,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ModelURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call summarization API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read summarization response: %w", err)
	}

	return parseSummary(raw)
}

// parseSummary accepts either [{"summary_text": ...}] or {"error": ...}.
func parseSummary(raw []byte) (string, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", &RemoteError{Message: "Hugging Face API did not return JSON. Response: " + string(raw)}
	}

	switch v := data.(type) {
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				if summary, ok := first["summary_text"].(string); ok && summary != "" {
					return summary, nil
				}
			}
		}
	case map[string]any:
		if msg, ok := v["error"]; ok && msg != nil && msg != "" {
			return "", &RemoteError{Message: fmt.Sprintf("Hugging Face API error: %v", msg)}
		}
	}

	return "", &RemoteError{Message: "Unexpected Hugging Face API response: " + string(raw)}
}
