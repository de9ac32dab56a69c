package llm

import (
	"context"
	"strings"
	"sync"
)

// MockClient serves scripted outputs for tests and local development.
// Queued responses are returned first, in order; once the queue is empty it
// falls back to canned output keyed off the prompt shape, so every operation
// works in MOCK_LLM mode without a credential.
type MockClient struct {
	mu     sync.Mutex
	queued []queuedResult
}

type queuedResult struct {
	resp *Response
	err  error
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// Queue schedules content to be returned by the next Generate call.
func (m *MockClient) Queue(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, queuedResult{
		resp: &Response{Content: content, PromptTokens: 1200, OutputTokens: 600},
	})
}

// QueueErr schedules an error to be returned by the next Generate call.
func (m *MockClient) QueueErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, queuedResult{err: err})
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*Response, error) {
	m.mu.Lock()
	if len(m.queued) > 0 {
		next := m.queued[0]
		m.queued = m.queued[1:]
		m.mu.Unlock()
		if next.err != nil {
			return nil, &ProviderError{Provider: "mock", Err: next.err}
		}
		return next.resp, nil
	}
	m.mu.Unlock()

	var content string
	switch {
	case strings.Contains(userPrompt, "correct_option"):
		content = mockQuizJSON
	case strings.Contains(userPrompt, "numbered list"):
		content = mockQuestionList
	default:
		content = "[Mock] The document describes a system under study. Key points are summarized here in plain language for local development."
	}

	return &Response{Content: content, PromptTokens: 1200, OutputTokens: 600}, nil
}

const mockQuizJSON = `[
  {
    "question": "[Mock] What is the primary subject of the document?",
    "options": ["A distributed cache", "A study assistant", "A payment gateway", "A compiler"],
    "correct_option": "A study assistant"
  },
  {
    "question": "[Mock] Which output format does the generator require?",
    "options": ["XML", "CSV", "JSON", "YAML"],
    "correct_option": "JSON"
  },
  {
    "question": "[Mock] How many options does each question carry?",
    "options": ["Two", "Three", "Four", "Five"],
    "correct_option": "Four"
  },
  {
    "question": "[Mock] What bounds the document excerpt sent to the model?",
    "options": ["A word cap", "A character cap", "A sentence cap", "No cap"],
    "correct_option": "A character cap"
  },
  {
    "question": "[Mock] Who grades subjective answers?",
    "options": ["A regex", "The model", "A human reviewer", "Nobody"],
    "correct_option": "The model"
  }
]`

const mockQuestionList = `1. [Mock] Explain the main argument presented in the document.
2. [Mock] What evidence does the author provide for the central claim?
3. [Mock] How would you apply the document's conclusions in practice?`
