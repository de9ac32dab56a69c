package challenge

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ObjectiveQuestion is one multiple-choice question. CorrectOption holds the
// full text of the correct option, verbatim from Options.
type ObjectiveQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
}

// MalformedOutputError means the model's output could not be recovered into a
// question array by either the strict or the salvage parse. It carries the raw
// text for diagnostics and is terminal for the generation request.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	return "model returned non-JSON or invalid quiz format"
}

// ValidationError means the output parsed as JSON but violates the question
// schema. All problems are collected, not just the first.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// arrayPattern matches the first bracket-delimited array of objects embedded
// in otherwise unstructured text. Greedy, multi-line.
var arrayPattern = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// ParseQuiz recovers a question array from raw model output.
// Tier 1: strict JSON parse of the trimmed, fence-stripped text.
// Tier 2: strict JSON parse of the first embedded array-of-objects substring.
// No further repair is attempted — trailing commas, comments, and the like
// fail with MalformedOutputError.
func ParseQuiz(raw string) ([]ObjectiveQuestion, error) {
	cleaned := stripCodeFences(raw)

	var quiz []ObjectiveQuestion
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		salvaged := arrayPattern.FindString(cleaned)
		if salvaged == "" {
			return nil, &MalformedOutputError{Raw: raw}
		}
		quiz = nil
		if err := json.Unmarshal([]byte(salvaged), &quiz); err != nil {
			return nil, &MalformedOutputError{Raw: raw}
		}
	}

	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}

	return quiz, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateQuiz(quiz []ObjectiveQuestion) error {
	var errs []string

	if len(quiz) == 0 {
		return &ValidationError{Errors: []string{"no questions in quiz"}}
	}

	for i, q := range quiz {
		qNum := i + 1

		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", qNum))
		}

		if len(q.Options) != optionsPerQuestion {
			errs = append(errs, fmt.Sprintf("question %d: expected %d options, got %d", qNum, optionsPerQuestion, len(q.Options)))
			continue
		}

		matches := 0
		for _, opt := range q.Options {
			if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(q.CorrectOption)) {
				matches++
			}
		}
		switch matches {
		case 1:
			// exactly one option matches — valid
		case 0:
			errs = append(errs, fmt.Sprintf("question %d: correct_option %q matches no option", qNum, q.CorrectOption))
		default:
			errs = append(errs, fmt.Sprintf("question %d: correct_option %q matches %d options", qNum, q.CorrectOption, matches))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// ParseQuestionList extracts at most max question strings from raw model
// output: one per non-empty line, with any leading enumeration marker
// (digits, ')', '.', spaces) stripped. Order is preserved — the model's
// ordering is authoritative. This parser never fails; a shorter-than-requested
// list is a valid outcome.
func ParseQuestionList(raw string, max int) []string {
	questions := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimLeft(line, "0123456789). ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if max > 0 && len(questions) == max {
			break
		}
	}
	return questions
}
