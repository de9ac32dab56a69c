package challenge

import (
	"math/rand"
	"sync"
	"time"
)

// activeQuiz is the server-side state for one generated objective quiz. It
// lives only in memory — quizzes are never persisted, and a restart clears
// them. Grading refers to questions by serve order, so the client never sees
// the answer key.
type activeQuiz struct {
	DocumentID int64
	Questions  []ObjectiveQuestion
	CreatedAt  time.Time
}

// QuizSessions holds the active quiz per browser session key. It is the only
// shared mutable state in the challenge flow and is mutex-guarded.
type QuizSessions struct {
	mu      sync.Mutex
	quizzes map[string]*activeQuiz
}

func NewQuizSessions() *QuizSessions {
	return &QuizSessions{quizzes: make(map[string]*activeQuiz)}
}

func (qs *QuizSessions) Put(key string, quiz *activeQuiz) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	qs.quizzes[key] = quiz
}

func (qs *QuizSessions) Get(key string) (*activeQuiz, bool) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	quiz, ok := qs.quizzes[key]
	return quiz, ok
}

func (qs *QuizSessions) Delete(key string) {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	delete(qs.quizzes, key)
}

func newSessionKey() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 16)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
