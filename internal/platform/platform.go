// Package platform defines the outbound chat operations the bot performs and
// implements them on top of a disgo client.
package platform

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

var (
	// ErrNotFound is returned when a channel, role, member, user or audit
	// entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDirectMessageFailed is returned when a DM could not be delivered,
	// usually because the user has DMs disabled.
	ErrDirectMessageFailed = errors.New("failed to send direct message")
)

// AuditEntry is one audit log record.
type AuditEntry struct {
	ID          snowflake.ID
	ModeratorID snowflake.ID
	TargetID    snowflake.ID
	Reason      string
}

// CreatedAt returns the time the entry was recorded, from its snowflake.
func (e AuditEntry) CreatedAt() time.Time {
	return e.ID.Time()
}

// Client is the set of chat operations used by event handlers and commands.
type Client interface {
	// SendMessage posts msg in a channel.
	SendMessage(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (*discord.Message, error)
	// SendDirectMessage opens a DM with the user and posts msg.
	SendDirectMessage(ctx context.Context, userID snowflake.ID, msg discord.MessageCreate) error
	// DeleteMessage removes a single message.
	DeleteMessage(ctx context.Context, channelID, messageID snowflake.ID) error
	// PurgeMessages deletes up to limit of the latest messages in a channel
	// and returns how many were deleted.
	PurgeMessages(ctx context.Context, channelID snowflake.ID, limit int) (int, error)
	// AddReaction reacts to a message with a unicode emoji.
	AddReaction(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error

	// AddMemberRole grants a role.
	AddMemberRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
	// RemoveMemberRole revokes a role.
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
	// Ban bans a user from the guild.
	Ban(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	// Unban lifts a ban.
	Unban(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	// Kick removes a member from the guild.
	Kick(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	// Timeout disables communication for a member until the given time.
	Timeout(ctx context.Context, guildID, userID snowflake.ID, until time.Time, reason string) error

	// Member fetches a guild member.
	Member(ctx context.Context, guildID, userID snowflake.ID) (*discord.Member, error)
	// User fetches a user.
	User(ctx context.Context, userID snowflake.ID) (*discord.User, error)
	// MemberPermissions resolves the guild-level permissions of a member.
	MemberPermissions(ctx context.Context, guildID, userID snowflake.ID) (discord.Permissions, error)
	// LatestAuditEntry returns the newest audit entry of the given type.
	LatestAuditEntry(ctx context.Context, guildID snowflake.ID, action discord.AuditLogEvent) (AuditEntry, error)

	// TextChannelByName finds a guild text channel by exact name.
	TextChannelByName(ctx context.Context, guildID snowflake.ID, name string) (snowflake.ID, error)
	// RoleByName finds a guild role by exact name.
	RoleByName(ctx context.Context, guildID snowflake.ID, name string) (snowflake.ID, error)
	// ChannelName returns the name of a channel.
	ChannelName(ctx context.Context, channelID snowflake.ID) (string, error)
	// GuildName returns the name of a guild.
	GuildName(ctx context.Context, guildID snowflake.ID) (string, error)
}
