package study

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/smart-assistant/backend/internal/llm"
)

// ErrEmptyDocument is the fail-fast precondition for every study operation:
// an empty or whitespace-only document has nothing to summarize or answer
// from, so no model call is made.
var ErrEmptyDocument = errors.New("document text is empty")

// QAResult pairs an answer with its supporting justification. Justification
// is empty when the model did not separate one out.
type QAResult struct {
	Answer        string
	Justification string
}

// CallLog receives token usage and timing for each model invocation.
type CallLog interface {
	LogLLMCall(operation, model string, promptTokens, outputTokens int, durationMs int64, callErr error) error
}

// Service handles single-shot summarization and document Q&A. Output goes to
// a human reader, not a scoring algorithm, so free text passes through with
// only whitespace trimming.
type Service struct {
	llm          llm.Client
	model        string
	excerptLimit int
	callLog      CallLog
}

func NewService(client llm.Client, model string, excerptLimit int) *Service {
	return &Service{llm: client, model: model, excerptLimit: excerptLimit}
}

func (s *Service) SetCallLog(cl CallLog) {
	s.callLog = cl
}

// Summarize produces a summary capped (advisorily) at SummaryWordLimit words.
func (s *Service) Summarize(ctx context.Context, docText string) (string, error) {
	if strings.TrimSpace(docText) == "" {
		return "", ErrEmptyDocument
	}

	resp, err := s.generate(ctx, "summarize", SummarySystemPrompt(), BuildSummaryPrompt(docText, s.excerptLimit))
	if err != nil {
		return "", fmt.Errorf("summarization: %w", err)
	}

	return strings.TrimSpace(resp.Content), nil
}

// Answer runs one Q&A cycle against the document. The model is asked to
// separate answer and justification; when it doesn't, the whole response is
// the answer and the justification stays empty. This path never produces a
// malformed-output error.
func (s *Service) Answer(ctx context.Context, docText, question string) (*QAResult, error) {
	if strings.TrimSpace(docText) == "" {
		return nil, ErrEmptyDocument
	}

	resp, err := s.generate(ctx, "qa", QASystemPrompt(), BuildQAPrompt(docText, question, s.excerptLimit))
	if err != nil {
		return nil, fmt.Errorf("question answering: %w", err)
	}

	result := splitQAResponse(resp.Content)
	return &result, nil
}

// splitQAResponse peels the ANSWER / JUSTIFICATION labels off the model's
// free text. Both labels are optional.
func splitQAResponse(content string) QAResult {
	content = strings.TrimSpace(content)

	answer := content
	justification := ""

	if idx := indexFold(content, "JUSTIFICATION:"); idx >= 0 {
		answer = strings.TrimSpace(content[:idx])
		justification = strings.TrimSpace(content[idx+len("JUSTIFICATION:"):])
	}

	if idx := indexFold(answer, "ANSWER:"); idx >= 0 {
		answer = strings.TrimSpace(answer[idx+len("ANSWER:"):])
	}

	return QAResult{Answer: answer, Justification: justification}
}

// indexFold is a case-insensitive strings.Index for ASCII labels.
func indexFold(s, label string) int {
	return strings.Index(strings.ToUpper(s), strings.ToUpper(label))
}

func (s *Service) generate(ctx context.Context, operation, systemPrompt, userPrompt string) (*llm.Response, error) {
	start := time.Now()
	resp, err := s.llm.Generate(ctx, systemPrompt, userPrompt)

	if s.callLog != nil {
		promptTokens, outputTokens := 0, 0
		if resp != nil {
			promptTokens = resp.PromptTokens
			outputTokens = resp.OutputTokens
		}
		if logErr := s.callLog.LogLLMCall(operation, s.model, promptTokens, outputTokens, time.Since(start).Milliseconds(), err); logErr != nil {
			log.Printf("WARN: failed to log %s call: %v", operation, logErr)
		}
	}

	return resp, err
}
