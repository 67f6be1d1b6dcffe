package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

const (
	// purgeBatchSize is the most messages Discord returns or bulk deletes at once.
	purgeBatchSize = 100

	// BulkDeleteMaxAge is the age past which Discord refuses to bulk delete
	// a message. A minute of margin covers clock skew.
	BulkDeleteMaxAge = 14*24*time.Hour - time.Minute
)

// SplitByAge separates message IDs that can be bulk deleted at now from
// those that must be deleted one by one. Order is preserved in both.
func SplitByAge(ids []snowflake.ID, now time.Time) (recent, old []snowflake.ID) {
	cutoff := now.Add(-BulkDeleteMaxAge)

	for _, id := range ids {
		if id.Time().After(cutoff) {
			recent = append(recent, id)
		} else {
			old = append(old, id)
		}
	}

	return recent, old
}

// Disgo implements Client on a disgo bot client.
type Disgo struct {
	client bot.Client
	logger *zap.Logger
}

// NewDisgo wraps a disgo client.
func NewDisgo(client bot.Client, logger *zap.Logger) *Disgo {
	return &Disgo{
		client: client,
		logger: logger.Named("platform"),
	}
}

// SendMessage implements Client.
func (d *Disgo) SendMessage(
	ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate,
) (*discord.Message, error) {
	message, err := d.client.Rest().CreateMessage(channelID, msg, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", wrapRestError(err))
	}
	return message, nil
}

// SendDirectMessage implements Client.
func (d *Disgo) SendDirectMessage(ctx context.Context, userID snowflake.ID, msg discord.MessageCreate) error {
	channel, err := d.client.Rest().CreateDMChannel(userID, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDirectMessageFailed, err)
	}

	if _, err := d.client.Rest().CreateMessage(channel.ID(), msg, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("%w: %w", ErrDirectMessageFailed, err)
	}

	return nil
}

// DeleteMessage implements Client.
func (d *Disgo) DeleteMessage(ctx context.Context, channelID, messageID snowflake.ID) error {
	if err := d.client.Rest().DeleteMessage(channelID, messageID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to delete message: %w", wrapRestError(err))
	}
	return nil
}

// PurgeMessages implements Client. Messages are fetched newest first in
// batches and removed with bulk deletes where possible. Messages too old
// for a bulk delete are removed one at a time.
func (d *Disgo) PurgeMessages(ctx context.Context, channelID snowflake.ID, limit int) (int, error) {
	deleted := 0

	var before snowflake.ID

	for deleted < limit {
		batchSize := min(limit-deleted, purgeBatchSize)

		messages, err := d.client.Rest().GetMessages(channelID, 0, before, 0, batchSize, rest.WithCtx(ctx))
		if err != nil {
			return deleted, fmt.Errorf("failed to fetch messages: %w", wrapRestError(err))
		}

		if len(messages) == 0 {
			break
		}

		ids := make([]snowflake.ID, 0, len(messages))
		for _, message := range messages {
			ids = append(ids, message.ID)
		}

		recent, old := SplitByAge(ids, time.Now())

		// Bulk delete requires at least two messages
		if len(recent) == 1 {
			old = append(recent, old...)
			recent = nil
		}

		if len(recent) > 0 {
			if err := d.client.Rest().BulkDeleteMessages(channelID, recent, rest.WithCtx(ctx)); err != nil {
				return deleted, fmt.Errorf("failed to delete messages: %w", wrapRestError(err))
			}
			deleted += len(recent)
		}

		for _, id := range old {
			if err := d.client.Rest().DeleteMessage(channelID, id, rest.WithCtx(ctx)); err != nil {
				return deleted, fmt.Errorf("failed to delete message: %w", wrapRestError(err))
			}
			deleted++
		}

		before = ids[len(ids)-1]

		if len(messages) < batchSize {
			break
		}
	}

	d.logger.Debug("Purged messages",
		zap.String("channel_id", channelID.String()),
		zap.Int("count", deleted))

	return deleted, nil
}

// AddReaction implements Client.
func (d *Disgo) AddReaction(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error {
	if err := d.client.Rest().AddReaction(channelID, messageID, emoji, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to add reaction %s: %w", emoji, wrapRestError(err))
	}
	return nil
}

// AddMemberRole implements Client.
func (d *Disgo) AddMemberRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	if err := d.client.Rest().AddMemberRole(guildID, userID, roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to add role: %w", wrapRestError(err))
	}
	return nil
}

// RemoveMemberRole implements Client.
func (d *Disgo) RemoveMemberRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	if err := d.client.Rest().RemoveMemberRole(guildID, userID, roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to remove role: %w", wrapRestError(err))
	}
	return nil
}

// Ban implements Client.
func (d *Disgo) Ban(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	if err := d.client.Rest().AddBan(guildID, userID, 0, withReason(ctx, reason)...); err != nil {
		return fmt.Errorf("failed to ban user: %w", wrapRestError(err))
	}
	return nil
}

// Unban implements Client.
func (d *Disgo) Unban(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	if err := d.client.Rest().DeleteBan(guildID, userID, withReason(ctx, reason)...); err != nil {
		return fmt.Errorf("failed to unban user: %w", wrapRestError(err))
	}
	return nil
}

// Kick implements Client.
func (d *Disgo) Kick(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	if err := d.client.Rest().RemoveMember(guildID, userID, withReason(ctx, reason)...); err != nil {
		return fmt.Errorf("failed to kick member: %w", wrapRestError(err))
	}
	return nil
}

// Timeout implements Client.
func (d *Disgo) Timeout(ctx context.Context, guildID, userID snowflake.ID, until time.Time, reason string) error {
	update := discord.MemberUpdate{
		CommunicationDisabledUntil: json.NewNullablePtr(until),
	}

	if _, err := d.client.Rest().UpdateMember(guildID, userID, update, withReason(ctx, reason)...); err != nil {
		return fmt.Errorf("failed to timeout member: %w", wrapRestError(err))
	}
	return nil
}

// Member implements Client.
func (d *Disgo) Member(ctx context.Context, guildID, userID snowflake.ID) (*discord.Member, error) {
	if member, ok := d.client.Caches().Member(guildID, userID); ok {
		return &member, nil
	}

	member, err := d.client.Rest().GetMember(guildID, userID, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", wrapRestError(err))
	}
	return member, nil
}

// User implements Client.
func (d *Disgo) User(ctx context.Context, userID snowflake.ID) (*discord.User, error) {
	user, err := d.client.Rest().GetUser(userID, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", wrapRestError(err))
	}
	return user, nil
}

// MemberPermissions implements Client. Permissions are computed from the
// cached guild and roles.
func (d *Disgo) MemberPermissions(ctx context.Context, guildID, userID snowflake.ID) (discord.Permissions, error) {
	member, err := d.Member(ctx, guildID, userID)
	if err != nil {
		return discord.PermissionsNone, err
	}

	return d.client.Caches().MemberPermissions(*member), nil
}

// LatestAuditEntry implements Client.
func (d *Disgo) LatestAuditEntry(
	ctx context.Context, guildID snowflake.ID, action discord.AuditLogEvent,
) (AuditEntry, error) {
	auditLog, err := d.client.Rest().GetAuditLog(guildID, 0, action, 0, 0, 1, rest.WithCtx(ctx))
	if err != nil {
		return AuditEntry{}, fmt.Errorf("failed to get audit log: %w", wrapRestError(err))
	}

	if len(auditLog.AuditLogEntries) == 0 {
		return AuditEntry{}, fmt.Errorf("%w: no audit entries for action %d", ErrNotFound, action)
	}

	entry := auditLog.AuditLogEntries[0]
	result := AuditEntry{
		ID:          entry.ID,
		ModeratorID: entry.UserID,
	}

	if entry.TargetID != nil {
		result.TargetID = *entry.TargetID
	}
	if entry.Reason != nil {
		result.Reason = *entry.Reason
	}

	return result, nil
}

// TextChannelByName implements Client.
func (d *Disgo) TextChannelByName(ctx context.Context, guildID snowflake.ID, name string) (snowflake.ID, error) {
	channels, err := d.client.Rest().GetGuildChannels(guildID, rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to get channels: %w", wrapRestError(err))
	}

	for _, channel := range channels {
		if channel.Type() == discord.ChannelTypeGuildText && channel.Name() == name {
			return channel.ID(), nil
		}
	}

	return 0, fmt.Errorf("%w: channel %q", ErrNotFound, name)
}

// RoleByName implements Client.
func (d *Disgo) RoleByName(ctx context.Context, guildID snowflake.ID, name string) (snowflake.ID, error) {
	roles, err := d.client.Rest().GetRoles(guildID, rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to get roles: %w", wrapRestError(err))
	}

	for _, role := range roles {
		if role.Name == name {
			return role.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: role %q", ErrNotFound, name)
}

// ChannelName implements Client.
func (d *Disgo) ChannelName(ctx context.Context, channelID snowflake.ID) (string, error) {
	if channel, ok := d.client.Caches().Channel(channelID); ok {
		return channel.Name(), nil
	}

	channel, err := d.client.Rest().GetChannel(channelID, rest.WithCtx(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to get channel: %w", wrapRestError(err))
	}

	if guildChannel, ok := channel.(discord.GuildChannel); ok {
		return guildChannel.Name(), nil
	}

	return "", nil
}

// GuildName implements Client.
func (d *Disgo) GuildName(ctx context.Context, guildID snowflake.ID) (string, error) {
	if guild, ok := d.client.Caches().Guild(guildID); ok {
		return guild.Name, nil
	}

	guild, err := d.client.Rest().GetGuild(guildID, false, rest.WithCtx(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to get guild: %w", wrapRestError(err))
	}
	return guild.Name, nil
}

// withReason builds request options carrying ctx and an optional audit log reason.
func withReason(ctx context.Context, reason string) []rest.RequestOpt {
	opts := []rest.RequestOpt{rest.WithCtx(ctx)}
	if reason != "" {
		opts = append(opts, rest.WithReason(reason))
	}
	return opts
}

// wrapRestError maps 404 responses to ErrNotFound.
func wrapRestError(err error) error {
	var restErr *rest.Error
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

var _ Client = (*Disgo)(nil)
