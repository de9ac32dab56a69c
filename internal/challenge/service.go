package challenge

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/smart-assistant/backend/internal/llm"
)

// CallLog receives token usage and timing for each model invocation.
// *document.Store satisfies it; a nil log disables recording.
type CallLog interface {
	LogLLMCall(operation, model string, promptTokens, outputTokens int, durationMs int64, callErr error) error
}

// Service orchestrates prompt building, model invocation, and parsing for the
// challenge flows. It is stateless and safe for concurrent use: every call is
// one prompt, one model invocation, one parse.
type Service struct {
	llm          llm.Client
	model        string
	excerptLimit int
	callLog      CallLog
}

func NewService(client llm.Client, model string, excerptLimit int) *Service {
	return &Service{llm: client, model: model, excerptLimit: excerptLimit}
}

// SetCallLog injects the usage log. Optional.
func (s *Service) SetCallLog(cl CallLog) {
	s.callLog = cl
}

// GenerateObjective produces count MCQs from the document text. It propagates
// *llm.ProviderError, *MalformedOutputError, and *ValidationError wrapped with
// task context.
func (s *Service) GenerateObjective(ctx context.Context, docText string, count int) ([]ObjectiveQuestion, error) {
	if count <= 0 {
		count = DefaultObjectiveCount
	}

	userPrompt := BuildObjectivePrompt(docText, count, s.excerptLimit)
	resp, err := s.generate(ctx, "objective_quiz", ObjectiveSystemPrompt(), userPrompt)
	if err != nil {
		return nil, fmt.Errorf("objective quiz generation: %w", err)
	}

	quiz, err := ParseQuiz(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("objective quiz generation: %w", err)
	}

	return quiz, nil
}

// GenerateSubjective produces up to count descriptive questions. The list
// parser cannot fail, so only provider errors propagate; a shorter list than
// requested is returned as-is.
func (s *Service) GenerateSubjective(ctx context.Context, docText string, count int) ([]string, error) {
	if count <= 0 {
		count = DefaultSubjectiveCount
	}

	userPrompt := BuildSubjectivePrompt(docText, count, s.excerptLimit)
	resp, err := s.generate(ctx, "subjective_questions", SubjectiveSystemPrompt(), userPrompt)
	if err != nil {
		return nil, fmt.Errorf("subjective question generation: %w", err)
	}

	return ParseQuestionList(resp.Content, count), nil
}

// ScoreObjective grades one MCQ response: the user's chosen option text must
// equal the correct option's full text, case-insensitively, whitespace
// trimmed. This is the single grading convention — it matches the
// correct_option format the objective prompt demands.
func ScoreObjective(chosen, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(chosen), strings.TrimSpace(correct))
}

// ScoreSubjective asks the model for qualitative feedback on one answer.
// The feedback is opaque free text — no schema is imposed on it.
func (s *Service) ScoreSubjective(ctx context.Context, question, answer string) (string, error) {
	userPrompt := BuildGradingPrompt(question, strings.TrimSpace(answer))
	resp, err := s.generate(ctx, "subjective_grading", GradingSystemPrompt(), userPrompt)
	if err != nil {
		return "", fmt.Errorf("subjective grading: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
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
