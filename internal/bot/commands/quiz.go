package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/bot/builder/quiz"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/trivia"
	"go.uber.org/zap"
)

func (h *handlers) quizCommands() []Command {
	return []Command{
		{Name: "quiz_categories", Run: h.quizCategories},
		{Name: "start_quiz", Permission: discord.PermissionManageGuild, Run: h.startQuiz},
		{Name: "end_quiz", Permission: discord.PermissionManageGuild, Run: h.endQuiz},
	}
}

// quizCategories lists the trivia category IDs.
func (h *handlers) quizCategories(ctx context.Context, inv Invocation) error {
	h.send(ctx, inv.ChannelID, quiz.NewCategoriesBuilder(trivia.Categories).Build().Build())
	return nil
}

// startQuiz starts a quiz in the quiz channel: !start_quiz [category] [difficulty].
func (h *handlers) startQuiz(ctx context.Context, inv Invocation) error {
	opts := trivia.Options{}

	if len(inv.Args) > 0 {
		category, err := strconv.Atoi(inv.Args[0])
		if err != nil {
			return fmt.Errorf("%w: invalid category %q", ErrBadArgument, inv.Args[0])
		}
		opts.Category = category
	}

	if len(inv.Args) > 1 {
		opts.Difficulty = strings.ToLower(inv.Args[1])
	}

	if ok, err := h.inChannel(ctx, inv, h.channels.Quiz); !ok {
		return err
	}

	question, err := h.quiz.Start(ctx, h.apis.Trivia, opts)
	if err != nil {
		switch {
		case errors.Is(err, trivia.ErrAlreadyActive):
			h.reply(ctx, inv.ChannelID, constants.QuizAlreadyRunningMessage)
		case errors.Is(err, trivia.ErrCancelled):
			h.logger.Debug("Quiz ended while starting")
		case errors.Is(err, api.ErrTriviaResponse), errors.Is(err, trivia.ErrNoQuestions):
			h.logger.Warn("Trivia database returned no questions", zap.Error(err))
			h.reply(ctx, inv.ChannelID, constants.QuizFetchFailedMessage)
		default:
			h.logger.Error("Failed to reach trivia database", zap.Error(err))
			h.reply(ctx, inv.ChannelID, constants.QuizUnreachableMessage)
		}
		return nil
	}

	h.logger.Info("Quiz started",
		zap.Int("category", opts.Category),
		zap.String("difficulty", opts.Difficulty),
		zap.Int("questions", h.quiz.Remaining()+1))

	h.reply(ctx, inv.ChannelID, constants.QuizStartedMessage)
	h.send(ctx, inv.ChannelID, quiz.NewQuestionBuilder(question).Build().Build())

	return nil
}

// endQuiz ends the running quiz and posts the final standings.
func (h *handlers) endQuiz(ctx context.Context, inv Invocation) error {
	if ok, err := h.inChannel(ctx, inv, h.channels.Quiz); !ok {
		return err
	}

	standings, err := h.quiz.End()
	if errors.Is(err, trivia.ErrNotActive) {
		h.reply(ctx, inv.ChannelID, constants.QuizNotRunningMessage)
		return nil
	}
	if err != nil {
		return err
	}

	h.reply(ctx, inv.ChannelID, constants.QuizEndedMessage)

	userIDs := make([]string, 0, len(standings))
	for _, standing := range standings {
		userIDs = append(userIDs, standing.UserID)
	}

	h.send(ctx, inv.ChannelID, quiz.NewStandingsBuilder(standings, h.resolveNames(ctx, userIDs)).Build().Build())

	return nil
}
