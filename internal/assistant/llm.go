package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/vitafit/backend/internal/telemetry/tracing"
)

const embeddingCacheSizeBytes = 32 * 1024 * 1024

// LLMClient talks to an OpenAI compatible API for chat completions and
// embeddings. Embedding vectors are cached in process, keyed by the text,
// since the same knowledge chunks and similar questions come up a lot.
type LLMClient struct {
	baseURL        string
	apiKey         string
	chatModel      string
	embeddingModel string
	httpClient     *http.Client
	embeddingCache *freecache.Cache
}

type NewLLMClientParams struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	HTTPClient     *http.Client
}

func NewLLMClient(params NewLLMClientParams) *LLMClient {
	return &LLMClient{
		baseURL:        params.BaseURL,
		apiKey:         params.APIKey,
		chatModel:      params.ChatModel,
		embeddingModel: params.EmbeddingModel,
		httpClient:     params.HTTPClient,
		embeddingCache: freecache.NewCache(embeddingCacheSizeBytes),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// ChatCompletion sends a single user prompt and returns the model's text.
func (c *LLMClient) ChatCompletion(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "llmClient.ChatCompletion")
	defer span.End()

	reqBody := chatCompletionRequest{
		Model:       c.chatModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var resp chatCompletionResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &resp); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("chat completion: %s", err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for the given text.
func (c *LLMClient) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "llmClient.Embed")
	defer span.End()

	cacheKey := []byte(text)
	if cached, err := c.embeddingCache.Get(cacheKey); err == nil {
		var vector []float32
		unmarshalErr := json.Unmarshal(cached, &vector)
		if unmarshalErr == nil {
			return vector, nil
		}
		log.Errorf("unmarshal cached embedding: %s", unmarshalErr)
	}

	reqBody := embeddingsRequest{
		Model: c.embeddingModel,
		Input: []string{text},
	}

	var resp embeddingsResponse
	if err := c.post(ctx, "/embeddings", reqBody, &resp); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("embeddings: %s", err))
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embeddings: no data in response")
	}
	vector := resp.Data[0].Embedding

	if vectorJson, err := json.Marshal(vector); err == nil {
		// cache entries never expire, chunk embeddings are stable
		if err := c.embeddingCache.Set(cacheKey, vectorJson, 0); err != nil {
			log.Tracef("cache embedding: %s", err)
		}
	}

	return vector, nil
}

func (c *LLMClient) post(ctx context.Context, path string, reqBody, respBody any) error {
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call llm api %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read llm api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("llm api %s returned status %d: %s", path, resp.StatusCode, respBytes)
	}

	if err := json.Unmarshal(respBytes, respBody); err != nil {
		return fmt.Errorf("unmarshal llm api response: %w", err)
	}
	return nil
}
