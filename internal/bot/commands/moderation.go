package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/pkg/utils"
	"go.uber.org/zap"
)

func (h *handlers) moderationCommands() []Command {
	return []Command{
		{Name: "ban", Permission: discord.PermissionBanMembers, MinArgs: 1, Run: h.ban},
		{Name: "kick", Permission: discord.PermissionKickMembers, MinArgs: 1, Run: h.kick},
		{Name: "unban", Permission: discord.PermissionBanMembers, MinArgs: 1, Run: h.unban},
		{Name: "timeout", Permission: discord.PermissionModerateMembers, MinArgs: 2, Run: h.timeout},
		{Name: "clear", Permission: discord.PermissionManageMessages, MinArgs: 1, Run: h.clear},
	}
}

// ban bans a member: !ban <member> [reason].
func (h *handlers) ban(ctx context.Context, inv Invocation) error {
	member, err := h.resolveMember(ctx, inv.GuildID, inv.Args[0])
	if err != nil {
		return err
	}

	if err := h.platform.Ban(ctx, inv.GuildID, member.User.ID, strings.Join(inv.Args[1:], " ")); err != nil {
		return err
	}

	h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.BannedMessage, utils.UserMention(member.User.ID)))
	return nil
}

// kick removes a member: !kick <member> [reason].
func (h *handlers) kick(ctx context.Context, inv Invocation) error {
	member, err := h.resolveMember(ctx, inv.GuildID, inv.Args[0])
	if err != nil {
		return err
	}

	if err := h.platform.Kick(ctx, inv.GuildID, member.User.ID, strings.Join(inv.Args[1:], " ")); err != nil {
		return err
	}

	h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.KickedMessage, utils.UserMention(member.User.ID)))
	return nil
}

// unban lifts a ban: !unban <user> [reason].
func (h *handlers) unban(ctx context.Context, inv Invocation) error {
	user, err := h.resolveUser(ctx, inv.Args[0])
	if err != nil {
		return err
	}

	if err := h.platform.Unban(ctx, inv.GuildID, user.ID, strings.Join(inv.Args[1:], " ")); err != nil {
		return err
	}

	h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.UnbannedMessage, utils.UserMention(user.ID)))
	return nil
}

// timeout disables communication for a member: !timeout <member> <duration> [reason].
func (h *handlers) timeout(ctx context.Context, inv Invocation) error {
	member, err := h.resolveMember(ctx, inv.GuildID, inv.Args[0])
	if err != nil {
		return err
	}

	duration, err := utils.ParseDuration(inv.Args[1])
	if err != nil {
		h.reply(ctx, inv.ChannelID, constants.InvalidDurationMessage)
		return nil
	}

	until := h.now().Add(duration)
	if err := h.platform.Timeout(ctx, inv.GuildID, member.User.ID, until, strings.Join(inv.Args[2:], " ")); err != nil {
		return err
	}

	h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.TimedOutMessage,
		utils.UserMention(member.User.ID), inv.Args[1], until.UTC().Format(constants.TimeoutExpiryLayout)))
	return nil
}

// clear deletes the latest messages and the command itself: !clear <count>.
// The confirmation removes itself after a short delay.
func (h *handlers) clear(ctx context.Context, inv Invocation) error {
	count, err := strconv.Atoi(inv.Args[0])
	if err != nil || count < 1 {
		return fmt.Errorf("%w: invalid message count %q", ErrBadArgument, inv.Args[0])
	}

	if _, err := h.platform.PurgeMessages(ctx, inv.ChannelID, count+1); err != nil {
		return err
	}

	confirmation, err := h.platform.SendMessage(ctx, inv.ChannelID, discord.NewMessageCreateBuilder().
		SetContent(fmt.Sprintf(constants.ClearedMessage, count)).
		Build())
	if err != nil {
		return err
	}

	// Remove the confirmation once it has been seen
	h.goBackground(ctx, func(ctx context.Context) {
		if utils.ContextSleep(ctx, h.clearConfirmTTL) == utils.SleepCancelled {
			return
		}

		if err := h.platform.DeleteMessage(ctx, inv.ChannelID, confirmation.ID); err != nil {
			h.logger.Warn("Failed to delete clear confirmation", zap.Error(err))
		}
	})

	return nil
}
