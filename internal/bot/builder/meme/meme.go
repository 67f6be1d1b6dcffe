package meme

import (
	"math/rand/v2"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/bot/constants"
)

// Builder creates the meme embed.
type Builder struct {
	meme  api.Meme
	color int
}

// NewBuilder creates a new meme builder with a random embed colour.
func NewBuilder(meme api.Meme) *Builder {
	return &Builder{
		meme:  meme,
		color: rand.IntN(0xFFFFFF + 1),
	}
}

// Build creates an embed showing the meme image.
func (b *Builder) Build() *discord.MessageCreateBuilder {
	embed := discord.NewEmbedBuilder().
		SetTitle(b.meme.Title).
		SetColor(b.color).
		SetImage(b.meme.ImageURL).
		SetFooter(constants.MemeFooter, "")

	return discord.NewMessageCreateBuilder().
		SetEmbeds(embed.Build())
}
