package llm

import (
	"context"
	"net/http"
)

type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates an LLMClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{cfg: cfg, http: newHTTPClient(), observer: observer}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := decodingParams(c.cfg, req.Task)
	body := ollamaRequest{
		Model:  c.cfg.Model,
		Prompt: req.UserPrompt,
		Stream: false,
		Format: "json",
		Options: ollamaOptions{
			Temperature: temp,
			NumPredict:  maxTok,
		},
	}

	return call(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		var resp ollamaResponse
		if err := postJSON(ctx, c.http, c.cfg.Endpoint+"/api/generate", body, &resp); err != nil {
			return "", "", err
		}
		return resp.Response, resp.Model, nil
	})
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	return probe(ctx, c.http, c.cfg.Endpoint+"/api/tags")
}
