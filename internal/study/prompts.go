package study

import (
	"fmt"

	"github.com/smart-assistant/backend/internal/document"
)

// SummaryWordLimit is advisory to the model — the cap is not enforced
// programmatically on the way back.
const SummaryWordLimit = 150

func SummarySystemPrompt() string {
	return `You are a research assistant. You write faithful, compact summaries of documents. You never add information that is not in the document.`
}

func BuildSummaryPrompt(docText string, excerptLimit int) string {
	return fmt.Sprintf(`Summarize the following document in at most %d words. Plain prose, no markdown, no preamble.

Document:
%s`, SummaryWordLimit, document.Excerpt(docText, excerptLimit))
}

func QASystemPrompt() string {
	return `You are a research assistant answering questions about a document. Use ONLY the document — no outside knowledge. If the document does not contain the answer, say so plainly.`
}

// BuildQAPrompt asks for labeled ANSWER / JUSTIFICATION sections. The labels
// are a soft contract: the splitter tolerates their absence.
func BuildQAPrompt(docText, question string, excerptLimit int) string {
	return fmt.Sprintf(`Answer the question below using only the document.

Respond in this format:
ANSWER: <direct answer>
JUSTIFICATION: <the part of the document that supports the answer>

If the document does not contain the answer, state that in ANSWER and leave JUSTIFICATION empty.

Question: %s

Document:
%s`, question, document.Excerpt(docText, excerptLimit))
}
