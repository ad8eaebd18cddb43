package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		var req ollamaEmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello", req.Prompt)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"embedding": []float64{3, 4}})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "")
	res, err := p.Generate(context.Background(), "hello", TaskRetrievalQuery)

	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, res.Embedding.Values, 1e-6)
}

func TestOllamaProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewOllamaProvider(server.URL, "missing").Generate(context.Background(), "hello", "")

	assert.ErrorContains(t, err, "model not found")
}

func TestGeminiProvider_GenerateBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:batchEmbedContents", r.URL.Path)
		assert.Equal(t, "user-key", r.Header.Get("x-goog-api-key"))

		var req geminiBatchEmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 2)
		assert.Equal(t, "models/text-embedding-004", req.Requests[0].Model)
		assert.Equal(t, TaskRetrievalDocument, req.Requests[1].TaskType)
		assert.Equal(t, "second", req.Requests[1].Content.Parts[0].Text)

		_ = json.NewEncoder(w).Encode(geminiBatchEmbedResponse{Embeddings: []EmbeddingResponseEmbedding{
			{Values: []float32{1, 0}},
			{Values: []float32{0, 1}},
		}})
	}))
	defer server.Close()

	p := NewGeminiProvider("user-key", "")
	p.BaseURL = server.URL

	res, err := p.GenerateBatch(context.Background(), []string{"first", "second"}, TaskRetrievalDocument)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, []float32{0, 1}, res[1].Embedding.Values)
}

func TestGeminiProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)
		_ = json.NewEncoder(w).Encode(EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: []float32{0.5}}})
	}))
	defer server.Close()

	p := NewGeminiProvider("k", "")
	p.BaseURL = server.URL

	res, err := p.Generate(context.Background(), "q", TaskRetrievalQuery)

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, res.Embedding.Values)
}

func TestGeminiProvider_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiBatchEmbedResponse{})
	}))
	defer server.Close()

	p := NewGeminiProvider("k", "")
	p.BaseURL = server.URL

	_, err := p.GenerateBatch(context.Background(), []string{"a"}, "")

	assert.Error(t, err)
}
