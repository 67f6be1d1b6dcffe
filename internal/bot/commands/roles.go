package commands

import (
	"context"
	"errors"

	"github.com/disgoorg/disgo/discord"
	rolesbuilder "github.com/robalyx/turbo/internal/bot/builder/roles"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/platform"
)

func (h *handlers) roleCommands() []Command {
	return []Command{
		{Name: "setup_roles", Permission: discord.PermissionManageRoles, Run: h.setupRoles},
	}
}

// setupRoles posts one message per reaction role category in the roles
// channel and seeds it with the category's reactions.
func (h *handlers) setupRoles(ctx context.Context, inv Invocation) error {
	channelID, err := h.platform.TextChannelByName(ctx, inv.GuildID, h.channels.Roles)
	if errors.Is(err, platform.ErrNotFound) {
		h.reply(ctx, inv.ChannelID, constants.RolesChannelMissing)
		return nil
	}
	if err != nil {
		return err
	}

	for _, category := range h.roles.Categories() {
		message, err := h.platform.SendMessage(ctx, channelID, rolesbuilder.NewBuilder(category).Build().Build())
		if err != nil {
			return err
		}

		for _, binding := range category.Bindings {
			if err := h.platform.AddReaction(ctx, channelID, message.ID, binding.Emoji); err != nil {
				return err
			}
		}
	}

	h.reply(ctx, inv.ChannelID, constants.RolesSetupComplete)
	return nil
}
