package testutil

import (
	"context"
	"sync"

	"github.com/nocturne-journal/nocturne/internal/llm"
)

// StubLLM is an llm.LLMClient that returns canned text and records requests.
type StubLLM struct {
	mu       sync.Mutex
	Text     string
	Err      error
	Requests []llm.GenerateRequest
}

// NewStubLLM returns a stub that answers every prompt with text.
func NewStubLLM(text string) *StubLLM {
	return &StubLLM{Text: text}
}

func (s *StubLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return nil, s.Err
	}
	return &llm.GenerateResponse{Text: s.Text, Model: "stub"}, nil
}

func (s *StubLLM) Available(context.Context) bool { return s.Err == nil }

// Calls returns how many Generate calls were made.
func (s *StubLLM) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Requests)
}
