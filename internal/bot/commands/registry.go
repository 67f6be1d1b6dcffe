// Package commands implements the prefix command registry and every command
// the bot answers to.
package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/platform"
	"go.uber.org/zap"
)

var (
	// ErrMissingArgument is returned by commands missing a required argument.
	ErrMissingArgument = errors.New("missing required argument")
	// ErrBadArgument is returned by commands given a malformed argument.
	ErrBadArgument = errors.New("bad argument")
	// ErrCommandPanicked is returned when a command panics.
	ErrCommandPanicked = errors.New("command panicked")
)

// Invocation is a parsed prefix command.
type Invocation struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Author    discord.User
	Name      string
	Args      []string
}

// RunFunc executes a command. Returned errors are mapped to replies by the registry.
type RunFunc func(ctx context.Context, inv Invocation) error

// Command is a registered prefix command.
type Command struct {
	Name string
	// Permission required to run the command; zero means everyone.
	// Administrators always pass.
	Permission discord.Permissions
	// MinArgs is the number of required arguments.
	MinArgs int
	Run     RunFunc
}

// Registry maps command names to commands and enforces the shared checks
// before running them.
type Registry struct {
	platform platform.Client
	logger   *zap.Logger
	commands map[string]Command
	wg       sync.WaitGroup
}

// NewRegistry creates an empty registry.
func NewRegistry(client platform.Client, logger *zap.Logger) *Registry {
	return &Registry{
		platform: client,
		logger:   logger.Named("commands"),
		commands: make(map[string]Command),
	}
}

// Register adds commands, replacing any with the same name.
func (r *Registry) Register(commands ...Command) {
	for _, command := range commands {
		r.commands[command.Name] = command
	}
}

// Names returns the registered command names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Dispatch runs the named command after checking permissions and arguments,
// replying with the matching error message on failure.
func (r *Registry) Dispatch(ctx context.Context, inv Invocation) {
	command, ok := r.commands[inv.Name]
	if !ok {
		r.reply(ctx, inv.ChannelID, constants.CommandNotFoundMessage)
		return
	}

	logger := r.logger.With(
		zap.String("command", inv.Name),
		zap.String("user_id", inv.Author.ID.String()))

	// Check permissions
	if command.Permission != 0 {
		permissions, err := r.platform.MemberPermissions(ctx, inv.GuildID, inv.Author.ID)
		if err != nil {
			logger.Error("Failed to resolve permissions", zap.Error(err))
			r.reply(ctx, inv.ChannelID, constants.CommandFailedMessage)
			return
		}

		if !permissions.Has(command.Permission) && !permissions.Has(discord.PermissionAdministrator) {
			r.reply(ctx, inv.ChannelID, constants.MissingPermissionsMessage)
			return
		}
	}

	// Check required arguments
	if len(inv.Args) < command.MinArgs {
		r.reply(ctx, inv.ChannelID, constants.MissingArgumentMessage)
		return
	}

	err := r.run(ctx, command, inv)

	switch {
	case err == nil:
		logger.Debug("Command handled")
	case errors.Is(err, ErrMissingArgument):
		r.reply(ctx, inv.ChannelID, constants.MissingArgumentMessage)
	case errors.Is(err, ErrBadArgument):
		logger.Debug("Bad command argument", zap.Error(err))
		r.reply(ctx, inv.ChannelID, constants.BadArgumentMessage)
	default:
		logger.Error("Command failed", zap.Error(err))
		r.reply(ctx, inv.ChannelID, constants.CommandFailedMessage)
	}
}

// Wait blocks until background work started by commands has finished.
func (r *Registry) Wait() {
	r.wg.Wait()
}

// run executes the command, turning a panic into ErrCommandPanicked.
func (r *Registry) run(ctx context.Context, command Command, inv Invocation) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic in command handler",
				zap.String("command", command.Name),
				zap.Any("panic", p))
			err = fmt.Errorf("%w: %v", ErrCommandPanicked, p)
		}
	}()

	return command.Run(ctx, inv)
}

// goBackground runs fn detached from ctx cancellation and tracks it for Wait.
func (r *Registry) goBackground(ctx context.Context, fn func(ctx context.Context)) {
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		fn(context.WithoutCancel(ctx))
	}()
}

func (r *Registry) reply(ctx context.Context, channelID snowflake.ID, content string) {
	r.send(ctx, channelID, discord.NewMessageCreateBuilder().SetContent(content).Build())
}

func (r *Registry) send(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) {
	if _, err := r.platform.SendMessage(ctx, channelID, msg); err != nil {
		r.logger.Error("Failed to send reply",
			zap.String("channel_id", channelID.String()),
			zap.Error(err))
	}
}
