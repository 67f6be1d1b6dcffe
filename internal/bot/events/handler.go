// Package events turns inbound guild events into filter, leveling, quiz,
// reaction role and audit log effects.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/bot/commands"
	"github.com/robalyx/turbo/internal/filter"
	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/internal/platform"
	"github.com/robalyx/turbo/internal/roles"
	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/robalyx/turbo/internal/trivia"
	"github.com/robalyx/turbo/pkg/utils"
	"go.uber.org/zap"
)

// Dispatcher runs a parsed command.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv commands.Invocation)
}

// Dependencies are the collaborators of a Handler.
type Dependencies struct {
	Platform platform.Client
	Rules    *filter.Rules
	Tracker  *leveling.Tracker
	Quiz     *trivia.Session
	Roles    *roles.Table
	Commands Dispatcher
	Channels config.Channels
	Prefix   string
	Logger   *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler processes guild events one at a time in the order they arrive.
type Handler struct {
	platform platform.Client
	rules    *filter.Rules
	tracker  *leveling.Tracker
	quiz     *trivia.Session
	roles    *roles.Table
	commands Dispatcher
	channels config.Channels
	prefix   string
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a new event handler.
func New(deps Dependencies) *Handler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		platform: deps.Platform,
		rules:    deps.Rules,
		tracker:  deps.Tracker,
		quiz:     deps.Quiz,
		roles:    deps.Roles,
		commands: deps.Commands,
		channels: deps.Channels,
		prefix:   deps.Prefix,
		logger:   deps.Logger.Named("events"),
		now:      now,
	}
}

// sendToNamedChannel posts content in the guild text channel with the given
// name. A missing channel is not an error.
func (h *Handler) sendToNamedChannel(ctx context.Context, guildID snowflake.ID, name, content string) {
	channelID, err := h.platform.TextChannelByName(ctx, guildID, name)
	if err != nil {
		h.logChannelLookup(name, err)
		return
	}

	h.send(ctx, channelID, discord.NewMessageCreateBuilder().SetContent(content).Build())
}

// send posts a message and logs failures.
func (h *Handler) send(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) {
	if _, err := h.platform.SendMessage(ctx, channelID, msg); err != nil {
		h.logger.Error("Failed to send message",
			zap.String("channel_id", channelID.String()),
			zap.Error(err))
	}
}

func (h *Handler) logChannelLookup(name string, err error) {
	if errors.Is(err, platform.ErrNotFound) {
		h.logger.Debug("Channel not found", zap.String("channel", name))
		return
	}

	h.logger.Error("Failed to look up channel",
		zap.String("channel", name),
		zap.Error(err))
}

// userName returns the username of a user, falling back to a mention when
// the user cannot be fetched.
func (h *Handler) userName(ctx context.Context, userID snowflake.ID) string {
	user, err := h.platform.User(ctx, userID)
	if err != nil {
		h.logger.Debug("Failed to fetch user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return utils.UserMention(userID)
	}

	return user.Username
}
