package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLLMServer(t *testing.T, embeddingsCalls *int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/chat/completions":
			var req chatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-chat-model", req.Model)
			require.Len(t, req.Messages, 1)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": "a helpful answer"}},
				},
			})
		case "/embeddings":
			*embeddingsCalls++
			var req embeddingsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-embedding-model", req.Model)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"embedding": []float32{0.1, 0.2, 0.3}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testLLMClient(server *httptest.Server) *LLMClient {
	return NewLLMClient(NewLLMClientParams{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		ChatModel:      "test-chat-model",
		EmbeddingModel: "test-embedding-model",
		HTTPClient:     server.Client(),
	})
}

func TestLLMClient_ChatCompletion(t *testing.T) {
	var embeddingsCalls int
	server := testLLMServer(t, &embeddingsCalls)
	client := testLLMClient(server)

	answer, err := client.ChatCompletion(context.Background(), "how much protein do I need?", 256, 0.3)
	require.NoError(t, err)
	assert.Equal(t, "a helpful answer", answer)
}

func TestLLMClient_Embed_Cached(t *testing.T) {
	var embeddingsCalls int
	server := testLLMServer(t, &embeddingsCalls)
	client := testLLMClient(server)

	vector, err := client.Embed(context.Background(), "protein intake")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, 1, embeddingsCalls)

	// same text again hits the cache, not the API
	vector, err = client.Embed(context.Background(), "protein intake")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	assert.Equal(t, 1, embeddingsCalls)

	_, err = client.Embed(context.Background(), "different question")
	require.NoError(t, err)
	assert.Equal(t, 2, embeddingsCalls)
}

func TestLLMClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()
	client := testLLMClient(server)

	_, err := client.ChatCompletion(context.Background(), "anything", 10, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	_, err = client.Embed(context.Background(), "anything")
	require.Error(t, err)
}
