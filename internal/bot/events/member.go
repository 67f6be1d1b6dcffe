package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/platform"
	"github.com/robalyx/turbo/pkg/utils"
	"go.uber.org/zap"
)

// OnMemberJoin welcomes the member and grants the default member role.
func (h *Handler) OnMemberJoin(ctx context.Context, guildID snowflake.ID, user discord.User) {
	h.sendToNamedChannel(ctx, guildID, h.channels.Welcome,
		fmt.Sprintf(constants.WelcomeMessage, utils.UserMention(user.ID)))

	roleID, err := h.platform.RoleByName(ctx, guildID, h.channels.MemberRole)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			h.logger.Warn("Member role not found", zap.String("role", h.channels.MemberRole))
		} else {
			h.logger.Error("Failed to look up member role", zap.Error(err))
		}
		return
	}

	if err := h.platform.AddMemberRole(ctx, guildID, user.ID, roleID); err != nil {
		h.logger.Error("Failed to assign member role",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		return
	}

	h.logger.Info("Assigned member role",
		zap.String("role", h.channels.MemberRole),
		zap.String("user", user.Username))
}

// OnMemberBan relays the latest ban audit entry to the log channel.
func (h *Handler) OnMemberBan(ctx context.Context, guildID snowflake.ID, user discord.User) {
	logChannel, ok := h.logChannel(ctx, guildID)
	if !ok {
		return
	}

	entry, ok := h.latestAuditEntry(ctx, guildID, discord.AuditLogEventMemberBanAdd)
	if !ok {
		return
	}

	h.reply(ctx, logChannel, fmt.Sprintf(constants.BanLogMessage,
		user.Username, h.userName(ctx, entry.ModeratorID), reasonOrDefault(entry.Reason)))
}

// OnMemberUnban relays the latest unban audit entry to the log channel.
func (h *Handler) OnMemberUnban(ctx context.Context, guildID snowflake.ID, user discord.User) {
	logChannel, ok := h.logChannel(ctx, guildID)
	if !ok {
		return
	}

	entry, ok := h.latestAuditEntry(ctx, guildID, discord.AuditLogEventMemberBanRemove)
	if !ok {
		return
	}

	h.reply(ctx, logChannel, fmt.Sprintf(constants.UnbanLogMessage,
		user.Username, h.userName(ctx, entry.ModeratorID)))
}

// OnMemberLeave relays a kick when the latest kick audit entry targets the
// member and was recorded moments ago. Voluntary leaves are not logged.
func (h *Handler) OnMemberLeave(ctx context.Context, guildID snowflake.ID, user discord.User) {
	logChannel, ok := h.logChannel(ctx, guildID)
	if !ok {
		return
	}

	entry, ok := h.latestAuditEntry(ctx, guildID, discord.AuditLogEventMemberKick)
	if !ok {
		return
	}

	window := constants.KickAuditWindowSec * time.Second
	if entry.TargetID != user.ID || !entry.CreatedAt().After(h.now().Add(-window)) {
		return
	}

	h.reply(ctx, logChannel, fmt.Sprintf(constants.KickLogMessage,
		user.Username, h.userName(ctx, entry.ModeratorID), reasonOrDefault(entry.Reason)))
}

// OnMemberUpdate relays timeout changes. before is the previous timeout end,
// nil when unknown or not timed out.
func (h *Handler) OnMemberUpdate(
	ctx context.Context, guildID snowflake.ID, user discord.User, before, after *time.Time,
) {
	if sameTime(before, after) {
		return
	}

	logChannel, ok := h.logChannel(ctx, guildID)
	if !ok {
		return
	}

	if after != nil {
		h.reply(ctx, logChannel, fmt.Sprintf(constants.TimeoutLogMessage,
			user.Username, after.UTC().Format(constants.TimeoutExpiryLayout)))
		return
	}

	h.reply(ctx, logChannel, fmt.Sprintf(constants.TimeoutRemovedLogMessage, user.Username))
}

func (h *Handler) logChannel(ctx context.Context, guildID snowflake.ID) (snowflake.ID, bool) {
	channelID, err := h.platform.TextChannelByName(ctx, guildID, h.channels.Logs)
	if err != nil {
		h.logChannelLookup(h.channels.Logs, err)
		return 0, false
	}

	return channelID, true
}

func (h *Handler) latestAuditEntry(
	ctx context.Context, guildID snowflake.ID, action discord.AuditLogEvent,
) (platform.AuditEntry, bool) {
	entry, err := h.platform.LatestAuditEntry(ctx, guildID, action)
	if err != nil {
		h.logger.Warn("Failed to get audit entry",
			zap.Int("action", int(action)),
			zap.Error(err))
		return platform.AuditEntry{}, false
	}

	return entry, true
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return constants.NoReasonProvided
	}
	return reason
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
