package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates an LLMClient for the Gemini API. cfg.Endpoint
// replaces the SDK's base URL, which lets tests point it at a local server.
func NewGeminiClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  newHTTPClient(),
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.Endpoint},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := decodingParams(c.cfg, req.Task)
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(temp)),
		MaxOutputTokens:  int32(maxTok),
		ResponseMIMEType: "application/json",
	}

	return call(ctx, c.cfg, c.observer, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(req.UserPrompt), config)
		if err != nil {
			return "", "", geminiError(err)
		}
		return resp.Text(), resp.ModelVersion, nil
	})
}

func (c *geminiClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.Models.Get(ctx, c.cfg.Model, nil)
	return err == nil
}

// geminiError turns an SDK API error into a StatusError so callers match it
// with ErrProviderStatus. Transport errors pass through for call to classify.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Code: apiErr.Code, Body: truncate(apiErr.Message, 512)}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &StatusError{Code: apiErrPtr.Code, Body: truncate(apiErrPtr.Message, 512)}
	}
	return err
}
