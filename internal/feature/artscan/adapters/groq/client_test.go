package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artscan_backend/internal/feature/artscan/adapters/description"
	"artscan_backend/internal/feature/artscan/adapters/groq/dto"
	"artscan_backend/internal/feature/artscan/domain"
)

func testRequest() description.CompletionRequest {
	return description.CompletionRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.7,
		MaxTokens:    1500,
	}
}

func TestClient_Configured(t *testing.T) {
	t.Parallel()

	assert.True(t, NewClient(Config{APIKey: "k"}, http.DefaultClient).Configured())
	assert.False(t, NewClient(Config{}, http.DefaultClient).Configured())
	assert.Equal(t, "Groq", NewClient(Config{}, http.DefaultClient).Name())
}

func TestClient_Complete_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.ChatCompletionRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}
		assert.Equal(t, "llama-test", req.Model)
		assert.Equal(t, float32(0.7), req.Temperature)
		assert.Equal(t, 1500, req.MaxTokens)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, dto.ChatMessage{Role: "system", Content: "system"}, req.Messages[0])
			assert.Equal(t, dto.ChatMessage{Role: "user", Content: "user"}, req.Messages[1])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "llama-test",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "{\"title\":\"Mona Lisa\"}"}, "finish_reason": "stop"}
			]
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", Model: "llama-test", BaseURL: server.URL + "/openai/v1"}, server.Client())

	text, err := c.Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, `{"title":"Mona Lisa"}`, text)
}

func TestClient_Complete_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantBody   string
	}{
		{"unauthorized json", http.StatusUnauthorized, `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`, "Invalid API Key"},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached"}}`, "Rate limit reached"},
		{"plain text body", http.StatusBadGateway, "upstream down\n", "upstream down"},
		{"empty body", http.StatusInternalServerError, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

			_, err := c.Complete(context.Background(), testRequest())

			var se *domain.UpstreamStatusError
			require.True(t, errors.As(err, &se), "expected UpstreamStatusError, got %v", err)
			assert.Equal(t, tt.statusCode, se.StatusCode)
			assert.Equal(t, ServiceName, se.Service)
			assert.Equal(t, tt.wantBody, se.Body)
			assert.Equal(t, tt.statusCode == http.StatusUnauthorized, domain.IsUnauthorized(err))
		})
	}
}

func TestClient_Complete_InvalidResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{invalid json`},
		{"no choices", `{"id":"x","choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

			_, err := c.Complete(context.Background(), testRequest())

			require.Error(t, err)
			assert.False(t, domain.IsUnauthorized(err))
		})
	}
}

func TestClient_Complete_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Complete(ctx, testRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerator_WithGroqClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key"}}`))
	}))
	defer server.Close()

	g := description.NewGenerator(NewClient(Config{APIKey: "bad", BaseURL: server.URL}, server.Client()))

	got := g.Generate(context.Background(), "Mona Lisa")

	assert.Equal(t, "Mona Lisa", got["title"])
	assert.Equal(t, "Groq authentication failed - invalid API key", got["error"])
	assert.Equal(t, http.StatusUnauthorized, got["status"])
}
