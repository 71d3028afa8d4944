// Package embeddingindex computes, caches, and serves the 384-dim
// unit-normalized record embeddings the semantic scorer reads from (spec
// §4.2).
package embeddingindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// DefaultDimension is the reference model's output width (all-MiniLM-L6-v2
// family, spec §4.2).
const DefaultDimension = 384

// Embedder produces L2-normalized embedding vectors for text. Any
// implementation equivalent to all-MiniLM-L6-v2 may be substituted (spec
// §4.2's model contract).
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dimension() int
}

// HTTPClient calls an external embedding service over HTTP, adapted from
// the teacher's OpenRouter-backed embedding.Client to this engine's
// 384-dim sentence-embedding contract. Used when a real model backend is
// configured. Its errors reach callers wrapped as EmbeddingBackendError by
// Build and QueryVector; neither falls back to a stale cache or to the
// local deterministic embedder.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimension  int
}

// HTTPClientConfig configures an HTTPClient.
type HTTPClientConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	Dimension int
	Timeout   time.Duration
}

// NewHTTPClient creates an HTTPClient embedding backend.
func NewHTTPClient(cfg HTTPClientConfig) (*HTTPClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embeddingindex: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "sentence-transformers/all-MiniLM-L6-v2"
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultDimension
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimension:  cfg.Dimension,
	}, nil
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data  []embeddingDatum `json:"data"`
	Error *embeddingError  `json:"error,omitempty"`
}

type embeddingDatum struct {
	Embedding []float32 `json:"embedding"`
	Index     int        `json:"index"`
}

type embeddingError struct {
	Message string `json:"message"`
}

// Embed generates L2-normalized embeddings for texts.
func (c *HTTPClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embeddingRequest{Input: texts, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("embeddingindex: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embeddingindex: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embeddingindex: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("embeddingindex: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp embeddingResponse
		if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error != nil {
			return nil, fmt.Errorf("embeddingindex: API error: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("embeddingindex: API error: status %d", resp.StatusCode)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("embeddingindex: unmarshal response: %w", err)
	}

	embeddings := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < len(embeddings) {
			embeddings[d.Index] = l2Normalize(d.Embedding)
		}
	}
	return embeddings, nil
}

// EmbedSingle embeds a single text.
func (c *HTTPClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embeddingindex: no embedding returned")
	}
	return vecs[0], nil
}

// Model returns the backend model name.
func (c *HTTPClient) Model() string { return c.model }

// Dimension returns the embedding width.
func (c *HTTPClient) Dimension() int { return c.dimension }

var _ Embedder = (*HTTPClient)(nil)

func l2Normalize(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return v
	}
	norm := math.Sqrt(sumSq)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
