package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	disgoevents "github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"

	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/bot/commands"
	"github.com/robalyx/turbo/internal/bot/events"
	"github.com/robalyx/turbo/internal/filter"
	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/internal/platform"
	"github.com/robalyx/turbo/internal/roles"
	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/robalyx/turbo/internal/trivia"
	"github.com/robalyx/turbo/pkg/utils"
)

// Dependencies are the services the bot runs on.
type Dependencies struct {
	Token    string
	Prefix   string
	Channels config.Channels
	Rules    *filter.Rules
	Tracker  *leveling.Tracker
	Quiz     *trivia.Session
	Roles    *roles.Table
	APIs     *api.Clients
	Logger   *zap.Logger
}

// Bot connects the gateway to the event handler and command registry.
// Events are handled one at a time in the order the gateway delivers them.
type Bot struct {
	client   bot.Client
	handler  *events.Handler
	commands *commands.Registry
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates the Discord client with the gateway intents the handlers need
// and wires the event handler and commands to it.
func New(deps Dependencies) (*Bot, error) {
	ctx, cancel := context.WithCancel(context.Background())

	b := &Bot{
		logger: deps.Logger,
		ctx:    ctx,
		cancel: cancel,
	}

	// Configure Discord client with required gateway intents and event handlers
	client, err := disgo.New(deps.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMembers,
				gateway.IntentGuildModeration,
				gateway.IntentGuildMessages,
				gateway.IntentMessageContent,
				gateway.IntentGuildMessageReactions,
			),
		),
		bot.WithEventListeners(&disgoevents.ListenerAdapter{
			OnReady:                      b.handleReady,
			OnGuildMessageCreate:         b.handleMessageCreate,
			OnGuildMessageUpdate:         b.handleMessageUpdate,
			OnGuildMessageReactionAdd:    b.handleReactionAdd,
			OnGuildMessageReactionRemove: b.handleReactionRemove,
			OnGuildMemberJoin:            b.handleMemberJoin,
			OnGuildMemberLeave:           b.handleMemberLeave,
			OnGuildMemberUpdate:          b.handleMemberUpdate,
			OnGuildBan:                   b.handleBan,
			OnGuildUnban:                 b.handleUnban,
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	platformClient := platform.NewDisgo(client, deps.Logger)

	registry := commands.New(commands.Dependencies{
		Platform: platformClient,
		Tracker:  deps.Tracker,
		Quiz:     deps.Quiz,
		Roles:    deps.Roles,
		APIs:     deps.APIs,
		Channels: deps.Channels,
		Logger:   deps.Logger,
	})

	b.client = client
	b.commands = registry
	b.handler = events.New(events.Dependencies{
		Platform: platformClient,
		Rules:    deps.Rules,
		Tracker:  deps.Tracker,
		Quiz:     deps.Quiz,
		Roles:    deps.Roles,
		Commands: registry,
		Channels: deps.Channels,
		Prefix:   deps.Prefix,
		Logger:   deps.Logger,
	})

	return b, nil
}

// Start opens the gateway connection, retrying with backoff while Discord
// is unreachable.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot", zap.Strings("commands", b.commands.Names()))

	err := utils.WithRetry(ctx, func() error {
		if err := b.client.OpenGateway(ctx); err != nil {
			b.logger.Warn("Failed to open gateway, retrying", zap.Error(err))
			return err
		}
		return nil
	}, utils.GetGatewayRetryOptions())
	if err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}

	return nil
}

// Close shuts down the gateway connection and waits for background work
// started by commands.
func (b *Bot) Close() {
	b.logger.Info("Closing bot")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b.client.Close(ctx)
	b.cancel()
	b.commands.Wait()
}

func (b *Bot) handleReady(event *disgoevents.Ready) {
	b.logger.Info("Bot is ready", zap.String("username", event.User.Username))
}

func (b *Bot) handleMessageCreate(event *disgoevents.GuildMessageCreate) {
	defer b.recoverPanic("message create")
	b.handler.OnMessageCreate(b.ctx, guildMessage(event.GenericGuildMessage))
}

func (b *Bot) handleMessageUpdate(event *disgoevents.GuildMessageUpdate) {
	defer b.recoverPanic("message update")
	b.handler.OnMessageUpdate(b.ctx, guildMessage(event.GenericGuildMessage))
}

func (b *Bot) handleReactionAdd(event *disgoevents.GuildMessageReactionAdd) {
	defer b.recoverPanic("reaction add")

	reaction := guildReaction(event.GenericGuildMessageReaction)
	member := event.Member
	reaction.Member = &member

	b.handler.OnReactionAdd(b.ctx, reaction)
}

func (b *Bot) handleReactionRemove(event *disgoevents.GuildMessageReactionRemove) {
	defer b.recoverPanic("reaction remove")
	b.handler.OnReactionRemove(b.ctx, guildReaction(event.GenericGuildMessageReaction))
}

func (b *Bot) handleMemberJoin(event *disgoevents.GuildMemberJoin) {
	defer b.recoverPanic("member join")
	b.handler.OnMemberJoin(b.ctx, event.GuildID, event.Member.User)
}

func (b *Bot) handleMemberLeave(event *disgoevents.GuildMemberLeave) {
	defer b.recoverPanic("member leave")
	b.handler.OnMemberLeave(b.ctx, event.GuildID, event.User)
}

func (b *Bot) handleMemberUpdate(event *disgoevents.GuildMemberUpdate) {
	defer b.recoverPanic("member update")
	b.handler.OnMemberUpdate(b.ctx, event.GuildID, event.Member.User,
		event.OldMember.CommunicationDisabledUntil, event.Member.CommunicationDisabledUntil)
}

func (b *Bot) handleBan(event *disgoevents.GuildBan) {
	defer b.recoverPanic("ban")
	b.handler.OnMemberBan(b.ctx, event.GuildID, event.User)
}

func (b *Bot) handleUnban(event *disgoevents.GuildUnban) {
	defer b.recoverPanic("unban")
	b.handler.OnMemberUnban(b.ctx, event.GuildID, event.User)
}

// recoverPanic keeps a failing handler from taking down the gateway loop.
func (b *Bot) recoverPanic(event string) {
	if r := recover(); r != nil {
		b.logger.Error("Panic in event handler",
			zap.String("event", event),
			zap.Any("panic", r))
	}
}

func guildMessage(event *disgoevents.GenericGuildMessage) events.Message {
	return events.Message{
		ID:        event.MessageID,
		ChannelID: event.ChannelID,
		GuildID:   event.GuildID,
		Author:    event.Message.Author,
		Content:   event.Message.Content,
	}
}

func guildReaction(event *disgoevents.GenericGuildMessageReaction) events.Reaction {
	return events.Reaction{
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
		MessageID: event.MessageID,
		UserID:    event.UserID,
		Emoji:     emojiName(event.Emoji),
	}
}

// emojiName returns the unicode emoji or custom emoji name.
func emojiName(emoji discord.PartialEmoji) string {
	if emoji.Name == nil {
		return ""
	}
	return *emoji.Name
}
