package quiz

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/trivia"
)

// QuestionBuilder creates the message announcing a quiz question.
type QuestionBuilder struct {
	question trivia.Question
}

// NewQuestionBuilder creates a new question builder.
func NewQuestionBuilder(question trivia.Question) *QuestionBuilder {
	return &QuestionBuilder{question: question}
}

// Build creates a message listing the prompt and its numbered options.
func (b *QuestionBuilder) Build() *discord.MessageCreateBuilder {
	lines := make([]string, 0, len(b.question.Options))
	for i, option := range b.question.Options {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, option))
	}

	return discord.NewMessageCreateBuilder().
		SetContent(fmt.Sprintf(constants.QuizQuestionMessage, b.question.Prompt, strings.Join(lines, "\n")))
}

// StandingsBuilder creates the final leaderboard of a quiz.
type StandingsBuilder struct {
	standings []trivia.Standing
	names     []string
}

// NewStandingsBuilder creates a new standings builder. names holds the
// display name of each standing in the same order.
func NewStandingsBuilder(standings []trivia.Standing, names []string) *StandingsBuilder {
	return &StandingsBuilder{
		standings: standings,
		names:     names,
	}
}

// Build creates the leaderboard message, or the no participants message
// when nobody scored.
func (b *StandingsBuilder) Build() *discord.MessageCreateBuilder {
	if len(b.standings) == 0 {
		return discord.NewMessageCreateBuilder().SetContent(constants.QuizNoParticipantsMessage)
	}

	lines := make([]string, 0, len(b.standings))
	for i, standing := range b.standings {
		name := constants.UnknownUserName
		if i < len(b.names) && b.names[i] != "" {
			name = b.names[i]
		}

		lines = append(lines, fmt.Sprintf("**%d. %s** - %d points", i+1, name, standing.Score))
	}

	return discord.NewMessageCreateBuilder().
		SetContent(fmt.Sprintf(constants.QuizLeaderboardMessage, strings.Join(lines, "\n")))
}

// CategoriesBuilder creates the list of quiz categories.
type CategoriesBuilder struct {
	categories []trivia.Category
}

// NewCategoriesBuilder creates a new categories builder.
func NewCategoriesBuilder(categories []trivia.Category) *CategoriesBuilder {
	return &CategoriesBuilder{categories: categories}
}

// Build creates a message with one "**id:** name" line per category.
func (b *CategoriesBuilder) Build() *discord.MessageCreateBuilder {
	var content strings.Builder
	content.WriteString(constants.QuizCategoriesHeader)

	for i, category := range b.categories {
		if i > 0 {
			content.WriteString("\n")
		}
		fmt.Fprintf(&content, "**%d:** %s", category.ID, category.Name)
	}

	return discord.NewMessageCreateBuilder().SetContent(content.String())
}
