package challenge

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func validQuizJSON(count int) string {
	quiz := make([]ObjectiveQuestion, count)
	for i := 0; i < count; i++ {
		quiz[i] = ObjectiveQuestion{
			Question:      "What does the system store for each registered document?",
			Options:       []string{"The raw file bytes", "The extracted plain text", "A vector embedding", "Nothing"},
			CorrectOption: "The extracted plain text",
		}
	}
	data, _ := json.Marshal(quiz)
	return string(data)
}

func TestParseQuiz_ValidJSON(t *testing.T) {
	input := validQuizJSON(5)

	quiz, err := ParseQuiz(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(quiz) != 5 {
		t.Errorf("expected 5 questions, got %d", len(quiz))
	}

	for i, q := range quiz {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		if q.CorrectOption == "" {
			t.Errorf("question %d: empty correct_option", i+1)
		}
	}
}

func TestParseQuiz_MarkdownFences(t *testing.T) {
	input := "```json\n" + validQuizJSON(3) + "\n```"

	quiz, err := ParseQuiz(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}

	if len(quiz) != 3 {
		t.Errorf("expected 3 questions, got %d", len(quiz))
	}
}

func TestParseQuiz_SalvageFromProse(t *testing.T) {
	input := "Sure! Here is the quiz you asked for:\n\n" + validQuizJSON(2) + "\n\nLet me know if you need more questions."

	quiz, err := ParseQuiz(input)
	if err != nil {
		t.Fatalf("expected salvage parse to succeed, got: %v", err)
	}

	if len(quiz) != 2 {
		t.Errorf("expected 2 questions, got %d", len(quiz))
	}
}

func TestParseQuiz_NonJSON(t *testing.T) {
	input := "I'm sorry, I can't generate a quiz for this document."

	_, err := ParseQuiz(input)
	if err == nil {
		t.Fatal("expected error for non-JSON output")
	}

	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got: %T", err)
	}
	if malformed.Raw != input {
		t.Errorf("expected Raw to carry the original output, got: %q", malformed.Raw)
	}
}

func TestParseQuiz_UnsalvageableArray(t *testing.T) {
	// Bracketed object array with a trailing comma: the salvage regex finds it
	// but the strict reparse still fails.
	input := `Here you go: [ {"question": "Q", "options": ["a","b","c","d"], "correct_option": "a",} ]`

	_, err := ParseQuiz(input)
	if err == nil {
		t.Fatal("expected error for invalid JSON inside salvaged array")
	}

	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got: %T", err)
	}
}

func TestParseQuiz_EmptyArray(t *testing.T) {
	_, err := ParseQuiz("[]")
	if err == nil {
		t.Fatal("expected validation error for empty quiz")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}
}

func TestParseQuiz_WrongOptionCount(t *testing.T) {
	quiz := []ObjectiveQuestion{
		{
			Question:      "Which parser handles descriptive questions?",
			Options:       []string{"The JSON parser", "The line parser", "Neither"},
			CorrectOption: "The line parser",
		},
	}
	data, _ := json.Marshal(quiz)

	_, err := ParseQuiz(string(data))
	if err == nil {
		t.Fatal("expected validation error for wrong option count")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}

	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "expected 4 options") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about 4 options, got: %v", ve.Errors)
	}
}

func TestParseQuiz_CorrectOptionNotInOptions(t *testing.T) {
	quiz := []ObjectiveQuestion{
		{
			Question:      "What color is the sky in the document?",
			Options:       []string{"Red", "Green", "Blue", "Yellow"},
			CorrectOption: "Purple",
		},
	}
	data, _ := json.Marshal(quiz)

	_, err := ParseQuiz(string(data))
	if err == nil {
		t.Fatal("expected validation error for correct_option not among options")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}

	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "matches no option") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about unmatched correct_option, got: %v", ve.Errors)
	}
}

func TestParseQuiz_AmbiguousCorrectOption(t *testing.T) {
	quiz := []ObjectiveQuestion{
		{
			Question:      "Pick the duplicate.",
			Options:       []string{"Same", "same", "Other", "Another"},
			CorrectOption: "Same",
		},
	}
	data, _ := json.Marshal(quiz)

	_, err := ParseQuiz(string(data))
	if err == nil {
		t.Fatal("expected validation error for ambiguous correct_option")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %T", err)
	}

	found := false
	for _, e := range ve.Errors {
		if strings.Contains(e, "matches 2 options") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected error about ambiguous correct_option, got: %v", ve.Errors)
	}
}

func TestParseQuiz_EmptyQuestionText(t *testing.T) {
	quiz := []ObjectiveQuestion{
		{
			Question:      "   ",
			Options:       []string{"A", "B", "C", "D"},
			CorrectOption: "A",
		},
	}
	data, _ := json.Marshal(quiz)

	_, err := ParseQuiz(string(data))
	if err == nil {
		t.Fatal("expected validation error for empty question text")
	}
}

func TestParseQuestionList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  []string
	}{
		{
			name:  "numbered with dots",
			input: "1. What is X?\n2. Why does Y happen?\n3. How is Z used?",
			max:   3,
			want:  []string{"What is X?", "Why does Y happen?", "How is Z used?"},
		},
		{
			name:  "mixed markers and blank lines",
			input: "1) What is X?\n\n2. Why Y?\n\n3) How Z?",
			max:   3,
			want:  []string{"What is X?", "Why Y?", "How Z?"},
		},
		{
			name:  "caps at max",
			input: "1. One?\n2. Two?\n3. Three?\n4. Four?",
			max:   2,
			want:  []string{"One?", "Two?"},
		},
		{
			name:  "shorter than requested",
			input: "1. Only question?",
			max:   5,
			want:  []string{"Only question?"},
		},
		{
			name:  "unnumbered lines pass through",
			input: "What holds the quiz between generation and scoring?\nWhere are attempts recorded?",
			max:   3,
			want:  []string{"What holds the quiz between generation and scoring?", "Where are attempts recorded?"},
		},
		{
			name:  "empty input",
			input: "",
			max:   3,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuestionList(tt.input, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
