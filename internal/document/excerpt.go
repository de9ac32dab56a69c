package document

import "unicode/utf8"

// DefaultExcerptLimit is the character cap on document text sent to the model.
// It bounds cost and latency, not correctness — trailing content is silently
// excluded from every prompt.
const DefaultExcerptLimit = 10000

// Excerpt returns a deterministic bounded prefix of text. The same document
// always yields the same excerpt. The cut never splits a UTF-8 sequence.
func Excerpt(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultExcerptLimit
	}
	if len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
