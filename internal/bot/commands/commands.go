package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/internal/platform"
	"github.com/robalyx/turbo/internal/roles"
	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/robalyx/turbo/internal/trivia"
	"github.com/robalyx/turbo/pkg/utils"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"
)

// Dependencies are the collaborators of the built-in commands.
type Dependencies struct {
	Platform platform.Client
	Tracker  *leveling.Tracker
	Quiz     *trivia.Session
	Roles    *roles.Table
	APIs     *api.Clients
	Channels config.Channels
	Logger   *zap.Logger
	// ClearConfirmTTL is how long the clear confirmation stays visible.
	ClearConfirmTTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// RandomIntN defaults to math/rand/v2.IntN.
	RandomIntN func(n int) int
}

// handlers implements the built-in commands.
type handlers struct {
	*Registry
	tracker         *leveling.Tracker
	quiz            *trivia.Session
	roles           *roles.Table
	apis            *api.Clients
	channels        config.Channels
	clearConfirmTTL time.Duration
	now             func() time.Time
	randomIntN      func(n int) int
}

// New creates a registry holding every built-in command.
func New(deps Dependencies) *Registry {
	registry := NewRegistry(deps.Platform, deps.Logger)

	h := &handlers{
		Registry:        registry,
		tracker:         deps.Tracker,
		quiz:            deps.Quiz,
		roles:           deps.Roles,
		apis:            deps.APIs,
		channels:        deps.Channels,
		clearConfirmTTL: deps.ClearConfirmTTL,
		now:             deps.Now,
		randomIntN:      deps.RandomIntN,
	}

	if h.clearConfirmTTL <= 0 {
		h.clearConfirmTTL = constants.ClearConfirmTTLSec * time.Second
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.randomIntN == nil {
		h.randomIntN = rand.IntN
	}

	registry.Register(h.moderationCommands()...)
	registry.Register(h.levelCommands()...)
	registry.Register(h.quizCommands()...)
	registry.Register(h.roleCommands()...)
	registry.Register(h.funCommands()...)

	return registry
}

// resolveMember parses a member argument and fetches the guild member.
func (h *handlers) resolveMember(ctx context.Context, guildID snowflake.ID, arg string) (*discord.Member, error) {
	userID, err := utils.ParseUserMention(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
	}

	member, err := h.platform.Member(ctx, guildID, userID)
	if errors.Is(err, platform.ErrNotFound) {
		return nil, fmt.Errorf("%w: member %s not found", ErrBadArgument, userID)
	}
	if err != nil {
		return nil, err
	}

	return member, nil
}

// resolveUser parses a user argument and fetches the user.
func (h *handlers) resolveUser(ctx context.Context, arg string) (*discord.User, error) {
	userID, err := utils.ParseUserMention(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArgument, err)
	}

	user, err := h.platform.User(ctx, userID)
	if errors.Is(err, platform.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s not found", ErrBadArgument, userID)
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// resolveNames fetches the usernames of the given user IDs concurrently.
// Users that cannot be fetched get an empty name.
func (h *handlers) resolveNames(ctx context.Context, userIDs []string) []string {
	return iter.Map(userIDs, func(userID *string) string {
		id, err := snowflake.Parse(*userID)
		if err != nil {
			return ""
		}

		user, err := h.platform.User(ctx, id)
		if err != nil {
			h.logger.Debug("Failed to resolve username",
				zap.String("user_id", *userID),
				zap.Error(err))
			return ""
		}

		return user.Username
	})
}

// inChannel reports whether the invocation happened in the named channel,
// replying with a hint when it did not.
func (h *handlers) inChannel(ctx context.Context, inv Invocation, name string) (bool, error) {
	channelName, err := h.platform.ChannelName(ctx, inv.ChannelID)
	if err != nil {
		return false, err
	}

	if channelName != name {
		h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.QuizChannelOnlyMessage, name))
		return false, nil
	}

	return true, nil
}
