package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for one generation call.
// Decoding parameters come from the task's TaskConfig.
type GenerateRequest struct {
	Task       TaskType
	UserPrompt string
}

// GenerateResponse holds the raw model text, untouched.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient sends a prompt to a text-generation model. Implementations do
// not parse, validate or retry: they return exactly what the model produced,
// or an error.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// NewClient returns the LLMClient for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewGeminiClient(cfg, observer)
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

// decodingParams resolves temperature and token ceiling for a task.
func decodingParams(cfg LLMConfig, task TaskType) (float64, int) {
	taskCfg := cfg.Tasks[task]
	return taskCfg.Temperature, taskCfg.MaxTokens
}

// call runs one provider round trip under the task timeout, reports it to
// the observer and normalises the error.
func call(ctx context.Context, cfg LLMConfig, observer Observer, task TaskType, do func(ctx context.Context) (string, string, error)) (*GenerateResponse, error) {
	start := time.Now()

	timeoutMs := cfg.TaskTimeout(task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	text, model, err := do(ctx)
	if err == nil && text == "" {
		err = ErrEmptyResponse
	}
	switch {
	case err == nil:
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = ErrTimeout
	case ctx.Err() != nil:
		// Caller went away (client disconnect, shutdown); not a provider fault.
		err = fmt.Errorf("llm call canceled: %w", ctx.Err())
	case isConnectionError(err):
		err = fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	latency := time.Since(start).Milliseconds()
	if model == "" {
		model = cfg.Model
	}
	observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  cfg.Provider,
		Model:     model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}

// postJSON sends body as JSON and decodes a 200 response into out.
func postJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return &StatusError{Code: httpResp.StatusCode, Body: truncate(string(respBody), 512)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func probe(ctx context.Context, client *http.Client, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrProviderStatus):
		return "STATUS"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// unconfiguredClient stands in when no provider could be built, so commands
// that never call the model still run.
type unconfiguredClient struct {
	err error
}

// NewUnconfiguredClient returns an LLMClient whose every call fails with err.
func NewUnconfiguredClient(err error) LLMClient {
	return unconfiguredClient{err: err}
}

func (c unconfiguredClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, c.err)
}

func (unconfiguredClient) Available(context.Context) bool { return false }
