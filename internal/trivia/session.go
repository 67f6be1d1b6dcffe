package trivia

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrAlreadyActive is returned when starting a quiz while one is running.
	ErrAlreadyActive = errors.New("a quiz is already running")
	// ErrNotActive is returned when ending a quiz while none is running.
	ErrNotActive = errors.New("no quiz is currently running")
	// ErrNoQuestions is returned when the source produced no questions.
	ErrNoQuestions = errors.New("question source returned no questions")
	// ErrCancelled is returned when the quiz was ended while questions were being fetched.
	ErrCancelled = errors.New("quiz was ended while starting")
)

// DefaultAmount is the number of questions fetched per quiz.
const DefaultAmount = 5

// Options filters the questions requested from a source.
type Options struct {
	// Amount is the number of questions to request.
	Amount int
	// Category is the source category ID; zero means any category.
	Category int
	// Difficulty is easy, medium or hard; empty means any difficulty.
	Difficulty string
}

// Source provides batches of quiz questions.
type Source interface {
	Questions(ctx context.Context, opts Options) ([]RawQuestion, error)
}

// Outcome classifies an answer attempt.
type Outcome int

const (
	// Ignored means no question was open.
	Ignored Outcome = iota
	// Correct means the answer matched and the session advanced.
	Correct
	// Wrong means the answer did not match.
	Wrong
	// InvalidOption means a numeric answer was outside the option list.
	InvalidOption
)

// AnswerResult reports the effect of an answer attempt. Next and Finished
// are only set for Correct outcomes.
type AnswerResult struct {
	Outcome Outcome
	// Score is the answering user's session score after the attempt.
	Score int
	// Next is the newly opened question, if any remain.
	Next *Question
	// Finished is true when the last question was answered.
	Finished bool
}

// Standing is one row of the final leaderboard.
type Standing struct {
	UserID string
	Score  int
}

// Session is the quiz state machine. It is idle until Start succeeds and
// stays active, even after the last question, until End is called.
type Session struct {
	shuffle ShuffleFunc
	amount  int

	mu         sync.Mutex
	active     bool
	generation uint64
	pending    []Question
	current    *Question
	scores     map[string]int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithShuffle sets the function used to shuffle each question's options.
func WithShuffle(shuffle ShuffleFunc) SessionOption {
	return func(s *Session) {
		s.shuffle = shuffle
	}
}

// WithAmount sets the number of questions requested per quiz.
func WithAmount(amount int) SessionOption {
	return func(s *Session) {
		if amount > 0 {
			s.amount = amount
		}
	}
}

// NewSession creates an idle session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		amount: DefaultAmount,
		scores: make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start fetches questions and opens the first one. The session is marked
// active while fetching so a concurrent start fails; on any failure it
// reverts to idle with the previous state untouched.
func (s *Session) Start(ctx context.Context, source Source, opts Options) (Question, error) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return Question{}, ErrAlreadyActive
	}

	s.active = true
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	if opts.Amount <= 0 {
		opts.Amount = s.amount
	}
	opts.Difficulty = strings.ToLower(opts.Difficulty)

	raw, err := source.Questions(ctx, opts)
	if err == nil && len(raw) == 0 {
		err = ErrNoQuestions
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return Question{}, ErrCancelled
	}

	if err != nil {
		s.active = false
		return Question{}, fmt.Errorf("failed to fetch questions: %w", err)
	}

	questions := make([]Question, 0, len(raw))
	for _, r := range raw {
		questions = append(questions, NewQuestion(r, s.shuffle))
	}

	s.pending = questions
	s.current = nil
	s.scores = make(map[string]int)

	next, _ := s.advance()

	return *next, nil
}

// advance opens the next pending question. It returns false when no
// questions remain, leaving the session active with no open question.
func (s *Session) advance() (*Question, bool) {
	if len(s.pending) == 0 {
		s.current = nil
		return nil, false
	}

	next := s.pending[0]
	s.pending = s.pending[1:]
	s.current = &next

	return &next, true
}

// Answer evaluates an answer attempt from userID. The text may be the
// option itself or its 1-based number.
func (s *Session) Answer(userID, text string) AnswerResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.current == nil {
		return AnswerResult{Outcome: Ignored}
	}

	answer := strings.ToLower(strings.TrimSpace(text))
	question := s.current

	correct := answer == question.Answer
	if !correct && isDigits(answer) {
		index, err := strconv.Atoi(answer)
		option, ok := question.Option(index)
		if err != nil || !ok {
			return AnswerResult{Outcome: InvalidOption, Score: s.scores[userID]}
		}
		correct = option == question.Answer
	}

	if !correct {
		return AnswerResult{Outcome: Wrong, Score: s.scores[userID]}
	}

	s.scores[userID]++
	s.current = nil

	result := AnswerResult{Outcome: Correct, Score: s.scores[userID]}
	if next, ok := s.advance(); ok {
		result.Next = next
	} else {
		result.Finished = true
	}

	return result
}

// End deactivates the session and returns the standings, highest score
// first. Scores are cleared.
func (s *Session) End() ([]Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, ErrNotActive
	}

	standings := make([]Standing, 0, len(s.scores))
	for userID, score := range s.scores {
		standings = append(standings, Standing{UserID: userID, Score: score})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].UserID < standings[j].UserID
	})

	s.active = false
	s.generation++
	s.pending = nil
	s.current = nil
	s.scores = make(map[string]int)

	return standings, nil
}

// Active reports whether a quiz is running.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

// Current returns the open question, if any.
func (s *Session) Current() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Question{}, false
	}

	return *s.current, true
}

// Remaining returns the number of questions still queued.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
