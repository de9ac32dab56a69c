package challenge

import (
	"fmt"

	"github.com/smart-assistant/backend/internal/document"
)

const (
	// DefaultObjectiveCount is the number of MCQs generated per request.
	DefaultObjectiveCount = 5
	// DefaultSubjectiveCount is the number of descriptive questions per request.
	DefaultSubjectiveCount = 3

	optionsPerQuestion = 4
)

func ObjectiveSystemPrompt() string {
	return `You are an expert quiz writer. You turn documents into multiple-choice questions that test understanding of the document's content, not outside knowledge.

Your questions must follow these exact structural rules:
- Each question has exactly 4 options
- Exactly ONE option is correct
- Wrong options must be plausible but clearly wrong given the document
- Never reference "the document" or "the text" in question wording — ask about the content directly
- Questions must be answerable from the document alone

You must respond with valid JSON only. No markdown, no explanation outside the JSON.`
}

// BuildObjectivePrompt requests exactly count MCQs over a bounded document
// excerpt. The schema instruction and the parser contract must stay in sync:
// correct_option carries the FULL TEXT of the correct option, and the scorer
// compares the user's chosen option text against it case-insensitively.
func BuildObjectivePrompt(docText string, count int, excerptLimit int) string {
	return fmt.Sprintf(`Read the following document and generate exactly %d multiple-choice questions.

Each question must have exactly 4 options. "correct_option" must be the full text of the correct option, copied verbatim from "options".

Respond with this exact JSON structure:
[
  {"question": "...", "options": ["...", "...", "...", "..."], "correct_option": "..."}
]

IMPORTANT: Return only valid JSON. No markdown. No explanation.

Document:
%s`, count, document.Excerpt(docText, excerptLimit))
}

func SubjectiveSystemPrompt() string {
	return `You are an expert tutor. You write short-answer and descriptive questions that make a reader engage with a document's key ideas. You never include answers.`
}

func BuildSubjectivePrompt(docText string, count int, excerptLimit int) string {
	return fmt.Sprintf(`Based on the following document, generate %d short-answer or descriptive questions.
Return a numbered list of questions ONLY. Do not include answers, comments, or markdown formatting.

Document:
%s`, count, document.Excerpt(docText, excerptLimit))
}

func GradingSystemPrompt() string {
	return `You are an expert tutor grading a student's written answer. Assess correctness, point out what is missing or wrong, and suggest one concrete improvement. Be direct and brief — a few sentences of plain prose, no markdown.`
}

// BuildGradingPrompt embeds the literal question and the user's raw answer.
// An empty answer is labeled explicitly so the model grades the absence
// rather than hallucinating a response.
func BuildGradingPrompt(question, answer string) string {
	if answer == "" {
		answer = "(no answer provided)"
	}
	return fmt.Sprintf(`Question:
%s

Student's answer:
%s

Give qualitative feedback on this answer: is it correct, what is missing, and how could it be improved?`, question, answer)
}
