package commands

import (
	"context"
	"fmt"

	"github.com/robalyx/turbo/internal/bot/builder/leaderboard"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/pkg/utils"
	"go.uber.org/zap"
)

func (h *handlers) levelCommands() []Command {
	return []Command{
		{Name: "mon_niveau", Run: h.level},
		{Name: "leaderboard", Run: h.leaderboard},
	}
}

// level shows the author's points and level.
func (h *handlers) level(ctx context.Context, inv Invocation) error {
	mention := utils.UserMention(inv.Author.ID)

	record, ok := h.tracker.Get(inv.Author.ID.String())
	if !ok {
		h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.NoPointsMessage, mention))
		return nil
	}

	h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.PointsMessage, mention, record.Points, record.Level))
	return nil
}

// leaderboard shows the top users by points with a bar chart.
func (h *handlers) leaderboard(ctx context.Context, inv Invocation) error {
	entries := h.tracker.Top(constants.LeaderboardSize)
	if len(entries) == 0 {
		h.send(ctx, inv.ChannelID, leaderboard.NewBuilder(nil, nil, nil).Build().Build())
		return nil
	}

	// Resolve usernames concurrently
	userIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		userIDs = append(userIDs, entry.UserID)
	}

	names := h.resolveNames(ctx, userIDs)

	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = name
		if name == "" {
			labels[i] = constants.UnknownUserName
		}
	}

	// Render the chart, sending the text alone when it fails
	chart, err := leveling.RenderChart(entries, labels)
	if err != nil {
		h.logger.Warn("Failed to render leaderboard chart", zap.Error(err))
		chart = nil
	}

	h.send(ctx, inv.ChannelID, leaderboard.NewBuilder(entries, labels, chart).Build().Build())
	return nil
}
