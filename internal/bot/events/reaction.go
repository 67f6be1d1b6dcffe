package events

import (
	"context"
	"errors"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/platform"
	"go.uber.org/zap"
)

// Reaction is a reaction added to or removed from a guild message.
type Reaction struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	UserID    snowflake.ID
	Emoji     string
	// Member is set on reaction add only.
	Member *discord.Member
}

// OnReactionAdd grants the role bound to the emoji.
func (h *Handler) OnReactionAdd(ctx context.Context, reaction Reaction) {
	if reaction.Member != nil && reaction.Member.User.Bot {
		return
	}

	roleID, roleName, ok := h.resolveRole(ctx, reaction)
	if !ok {
		return
	}

	if err := h.platform.AddMemberRole(ctx, reaction.GuildID, reaction.UserID, roleID); err != nil {
		h.logger.Error("Failed to assign reaction role",
			zap.String("role", roleName),
			zap.String("user_id", reaction.UserID.String()),
			zap.Error(err))
		return
	}

	h.logger.Info("Assigned reaction role",
		zap.String("role", roleName),
		zap.String("user_id", reaction.UserID.String()))
}

// OnReactionRemove revokes the role bound to the emoji. Members that left the
// guild are ignored.
func (h *Handler) OnReactionRemove(ctx context.Context, reaction Reaction) {
	member, err := h.platform.Member(ctx, reaction.GuildID, reaction.UserID)
	if errors.Is(err, platform.ErrNotFound) {
		return
	}
	if err != nil {
		h.logger.Error("Failed to fetch member",
			zap.String("user_id", reaction.UserID.String()),
			zap.Error(err))
		return
	}

	if member.User.Bot {
		return
	}

	roleID, roleName, ok := h.resolveRole(ctx, reaction)
	if !ok {
		return
	}

	if err := h.platform.RemoveMemberRole(ctx, reaction.GuildID, reaction.UserID, roleID); err != nil {
		h.logger.Error("Failed to remove reaction role",
			zap.String("role", roleName),
			zap.String("user_id", reaction.UserID.String()),
			zap.Error(err))
		return
	}

	h.logger.Info("Removed reaction role",
		zap.String("role", roleName),
		zap.String("user_id", reaction.UserID.String()))
}

// resolveRole maps the emoji to a guild role ID.
func (h *Handler) resolveRole(ctx context.Context, reaction Reaction) (snowflake.ID, string, bool) {
	match, ok := h.roles.RoleFor(reaction.Emoji)
	if !ok {
		h.logger.Debug("No role bound to emoji", zap.String("emoji", reaction.Emoji))
		return 0, "", false
	}

	roleID, err := h.platform.RoleByName(ctx, reaction.GuildID, match.Role)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			h.logger.Debug("Role not found in guild", zap.String("role", match.Role))
		} else {
			h.logger.Error("Failed to look up role",
				zap.String("role", match.Role),
				zap.Error(err))
		}
		return 0, "", false
	}

	return roleID, match.Role, true
}
