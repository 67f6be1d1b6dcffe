package leaderboard

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/internal/leveling"
)

// Builder creates the points leaderboard message.
type Builder struct {
	entries []leveling.Entry
	names   []string
	chart   *bytes.Buffer
}

// NewBuilder creates a new leaderboard builder. names holds the display name
// of each entry in the same order; chart may be nil.
func NewBuilder(entries []leveling.Entry, names []string, chart *bytes.Buffer) *Builder {
	return &Builder{
		entries: entries,
		names:   names,
		chart:   chart,
	}
}

// Build creates a message with one line per ranked user and the chart
// attached when present.
func (b *Builder) Build() *discord.MessageCreateBuilder {
	if len(b.entries) == 0 {
		return discord.NewMessageCreateBuilder().SetContent(constants.NoLeaderboardMessage)
	}

	var content strings.Builder
	content.WriteString(constants.LeaderboardHeader)

	for i, entry := range b.entries {
		name := constants.UnknownUserName
		if i < len(b.names) && b.names[i] != "" {
			name = b.names[i]
		}

		fmt.Fprintf(&content, constants.LeaderboardLine, i+1, name, entry.Points, entry.Level)
	}

	builder := discord.NewMessageCreateBuilder().SetContent(content.String())

	// Attach the rendered chart
	if b.chart != nil {
		builder.AddFile(constants.LeaderboardFile, fmt.Sprintf(constants.LeaderboardChartMessage, len(b.entries)), b.chart)
	}

	return builder
}
