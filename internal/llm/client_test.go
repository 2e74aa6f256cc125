package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Endpoint = endpoint
	cfg.Model = "llama3.2"
	return cfg
}

func geminiConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	return cfg
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)
		assert.Equal(t, "dream prompt", req.Prompt)
		assert.Equal(t, 0.8, req.Options.Temperature)
		assert.Equal(t, 1024, req.Options.NumPredict)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: `{"mood":"calm"}`})
	}))
	defer srv.Close()

	client := NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskDream,
		UserPrompt: "dream prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"mood":"calm"}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := ollamaConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskJournal: {Temperature: 0.75, MaxTokens: 1024, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskJournal, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := ollamaConfig("http://127.0.0.1:1")
	cfg.TimeoutMs = 1000

	client := NewOllamaClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOllamaClient_Generate_NoRetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "test"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderStatus)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_Generate_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: ""})
	}))
	defer srv.Close()

	client := NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(ollamaConfig(srv.URL), NoopObserver{}).Available(context.Background()))
	assert.False(t, NewOllamaClient(ollamaConfig("http://127.0.0.1:1"), NoopObserver{}).Available(context.Background()))
}

func newTestGeminiClient(t *testing.T, endpoint string) LLMClient {
	t.Helper()
	client, err := NewGeminiClient(geminiConfig(endpoint), NoopObserver{})
	require.NoError(t, err)
	return client
}

// geminiWireRequest mirrors the generateContent body fields the tests check.
type geminiWireRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction json.RawMessage `json:"systemInstruction"`
	GenerationConfig  struct {
		Temperature      float64 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		ResponseMimeType string  `json:"responseMimeType"`
	} `json:"generationConfig"`
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiWireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "journal prompt", req.Contents[0].Parts[0].Text)
		assert.Equal(t, 0.75, req.GenerationConfig.Temperature)
		assert.Equal(t, 1024, req.GenerationConfig.MaxOutputTokens)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		assert.Empty(t, req.SystemInstruction)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"mood\":"},{"text":"\"calm\"}"}]},"finishReason":"STOP"}],"modelVersion":"gemini-1.5-flash-002"}`))
	}))
	defer srv.Close()

	client := newTestGeminiClient(t, srv.URL)
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskJournal, UserPrompt: "journal prompt"})

	require.NoError(t, err)
	assert.Equal(t, `{"mood":"calm"}`, resp.Text)
	assert.Equal(t, "gemini-1.5-flash-002", resp.Model)
}

func TestGeminiClient_Generate_QuotaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	client := newTestGeminiClient(t, srv.URL)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderStatus)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Contains(t, statusErr.Body, "quota exceeded")
}

func TestGeminiClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := newTestGeminiClient(t, srv.URL)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClient_Generate_Unavailable(t *testing.T) {
	client := newTestGeminiClient(t, "http://127.0.0.1:1")
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGeminiClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"models/gemini-1.5-flash"}`))
	}))
	defer srv.Close()

	assert.True(t, newTestGeminiClient(t, srv.URL).Available(context.Background()))
	assert.False(t, newTestGeminiClient(t, "http://127.0.0.1:1").Available(context.Background()))
}

func TestNewClient_GeminiRequiresKey(t *testing.T) {
	cfg := DefaultConfig()
	_, err := NewClient(cfg, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg.APIKey = "k"
	client, err := NewClient(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClient_CallerCancelIsNotTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewOllamaClient(ollamaConfig(srv.URL), obs)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := client.Generate(ctx, GenerateRequest{Task: TaskDream, UserPrompt: "test"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "CANCELED", captured.ErrorCode)
}

func TestClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	client := NewOllamaClient(ollamaConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "test"})

	require.NoError(t, err)
	assert.Equal(t, TaskDream, captured.Task)
	assert.Equal(t, ProviderOllama, captured.Provider)
	assert.Equal(t, "llama3.2", captured.Model)
	assert.True(t, captured.Success)
	assert.Empty(t, captured.ErrorCode)
}

func TestClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := ollamaConfig(srv.URL)
	cfg.TimeoutMs = 50

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewOllamaClient(cfg, obs)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "test"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

func TestUnconfiguredClient(t *testing.T) {
	c := NewUnconfiguredClient(ErrMissingAPIKey)
	assert.False(t, c.Available(context.Background()))

	_, err := c.Generate(context.Background(), GenerateRequest{Task: TaskDream, UserPrompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Contains(t, err.Error(), ErrMissingAPIKey.Error())
}
