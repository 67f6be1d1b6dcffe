package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/bot/builder/quiz"
	"github.com/robalyx/turbo/internal/bot/commands"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/filter"
	"github.com/robalyx/turbo/internal/trivia"
	"github.com/robalyx/turbo/pkg/utils"
	"go.uber.org/zap"
)

// Message is a created or edited guild message.
type Message struct {
	ID        snowflake.ID
	ChannelID snowflake.ID
	GuildID   snowflake.ID
	Author    discord.User
	Content   string
}

// OnMessageCreate runs the message pipeline: filter, leveling, quiz answer
// and command dispatch. A filtered message stops the pipeline.
func (h *Handler) OnMessageCreate(ctx context.Context, msg Message) {
	if msg.Author.Bot {
		return
	}

	if h.filterMessage(ctx, msg) {
		return
	}

	// Attachment or sticker only messages do not count as activity
	if strings.TrimSpace(msg.Content) == "" {
		return
	}

	h.recordActivity(ctx, msg)

	if strings.HasPrefix(msg.Content, h.prefix) {
		h.dispatch(ctx, msg)
		return
	}

	h.answerQuiz(ctx, msg)
}

// OnMessageUpdate filters the edited content and runs it as a command.
func (h *Handler) OnMessageUpdate(ctx context.Context, msg Message) {
	if msg.Author.Bot {
		return
	}

	if h.filterMessage(ctx, msg) {
		return
	}

	h.dispatch(ctx, msg)
}

// filterMessage deletes the message when it breaks the filter rules and
// reports it in the log channel. Returns true when the message was filtered.
func (h *Handler) filterMessage(ctx context.Context, msg Message) bool {
	reason := h.rules.Check(msg.Content)
	if reason == filter.None {
		return false
	}

	h.logger.Info("Filtered message",
		zap.String("user_id", msg.Author.ID.String()),
		zap.String("reason", reason.String()))

	if err := h.platform.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		h.logger.Error("Failed to delete filtered message",
			zap.String("message_id", msg.ID.String()),
			zap.Error(err))
	}

	h.sendToNamedChannel(ctx, msg.GuildID, h.channels.Logs,
		fmt.Sprintf(constants.FilteredMessage, utils.UserMention(msg.Author.ID), reason))

	return true
}

// recordActivity awards a point and announces level-ups.
func (h *Handler) recordActivity(ctx context.Context, msg Message) {
	progress, err := h.tracker.RecordActivity(ctx, msg.Author.ID.String())
	if err != nil {
		h.logger.Error("Failed to save points",
			zap.String("user_id", msg.Author.ID.String()),
			zap.Error(err))
	}

	if !progress.LeveledUp() {
		return
	}

	h.logger.Debug("User leveled up",
		zap.String("user_id", msg.Author.ID.String()),
		zap.Int("level", progress.NewLevel))

	// Announce in the level channel
	h.sendToNamedChannel(ctx, msg.GuildID, h.channels.Level,
		fmt.Sprintf(constants.LevelUpBroadcastMessage, utils.UserMention(msg.Author.ID), progress.NewLevel))

	// Congratulate the user privately
	guildName, err := h.platform.GuildName(ctx, msg.GuildID)
	if err != nil {
		h.logger.Debug("Failed to get guild name", zap.Error(err))
	}

	dm := discord.NewMessageCreateBuilder().
		SetContent(fmt.Sprintf(constants.LevelUpDirectMessage, progress.NewLevel, guildName)).
		Build()

	if err := h.platform.SendDirectMessage(ctx, msg.Author.ID, dm); err != nil {
		h.logger.Warn("Could not send level-up DM, the user might have DMs disabled",
			zap.String("user_id", msg.Author.ID.String()),
			zap.Error(err))
	}
}

// answerQuiz evaluates a message posted in the quiz channel while a question is open.
func (h *Handler) answerQuiz(ctx context.Context, msg Message) {
	if !h.quiz.Active() {
		return
	}

	channelName, err := h.platform.ChannelName(ctx, msg.ChannelID)
	if err != nil {
		h.logger.Error("Failed to get channel name", zap.Error(err))
		return
	}

	if channelName != h.channels.Quiz {
		return
	}

	current, ok := h.quiz.Current()
	if !ok {
		return
	}

	h.logger.Debug("Evaluating quiz answer",
		zap.String("user_id", msg.Author.ID.String()),
		zap.String("question", current.Prompt))

	mention := utils.UserMention(msg.Author.ID)
	result := h.quiz.Answer(msg.Author.ID.String(), msg.Content)

	switch result.Outcome {
	case trivia.Ignored:
		return
	case trivia.Wrong:
		h.reply(ctx, msg.ChannelID, fmt.Sprintf(constants.QuizWrongMessage, mention))
	case trivia.InvalidOption:
		h.reply(ctx, msg.ChannelID, fmt.Sprintf(constants.QuizInvalidOptionMessage, mention))
	case trivia.Correct:
		h.reply(ctx, msg.ChannelID, fmt.Sprintf(constants.QuizCorrectMessage, mention))

		if result.Next != nil {
			h.send(ctx, msg.ChannelID, quiz.NewQuestionBuilder(*result.Next).Build().Build())
		} else if result.Finished {
			h.reply(ctx, msg.ChannelID, constants.QuizFinishedMessage)
		}
	}
}

// dispatch parses the message as a command and hands it to the registry.
func (h *Handler) dispatch(ctx context.Context, msg Message) {
	name, args, ok := utils.SplitCommand(msg.Content, h.prefix)
	if !ok {
		return
	}

	h.commands.Dispatch(ctx, commands.Invocation{
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		MessageID: msg.ID,
		Author:    msg.Author,
		Name:      name,
		Args:      args,
	})
}

func (h *Handler) reply(ctx context.Context, channelID snowflake.ID, content string) {
	h.send(ctx, channelID, discord.NewMessageCreateBuilder().SetContent(content).Build())
}
