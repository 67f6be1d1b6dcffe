package trivia

import (
	"html"
	"math/rand/v2"
	"strings"
)

// ShuffleFunc reorders n elements through swap. It matches rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// RawQuestion is a question as delivered by a question source, with
// HTML-entity encoded text.
type RawQuestion struct {
	Prompt           string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// Question is a normalized quiz question. Answer and Options are unescaped
// and lowercased; Options contains Answer and is shuffled once at creation.
type Question struct {
	Prompt  string
	Answer  string
	Options []string
}

// NewQuestion normalizes a raw question and shuffles its options.
// A nil shuffle uses math/rand.
func NewQuestion(raw RawQuestion, shuffle ShuffleFunc) Question {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	answer := normalizeText(raw.CorrectAnswer)

	options := make([]string, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		options = append(options, normalizeText(incorrect))
	}
	options = append(options, answer)

	shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		Prompt:  html.UnescapeString(raw.Prompt),
		Answer:  answer,
		Options: options,
	}
}

// Option returns the 1-based option and whether the index is in range.
func (q Question) Option(index int) (string, bool) {
	if index < 1 || index > len(q.Options) {
		return "", false
	}

	return q.Options[index-1], true
}

func normalizeText(s string) string {
	return strings.ToLower(html.UnescapeString(s))
}
