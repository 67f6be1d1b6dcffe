package roles

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/turbo/internal/roles"
	"github.com/robalyx/turbo/pkg/utils"
)

// Builder creates the reaction role message for one category.
type Builder struct {
	category roles.Category
}

// NewBuilder creates a new reaction role builder.
func NewBuilder(category roles.Category) *Builder {
	return &Builder{category: category}
}

// Build creates an embed listing each emoji and the role it grants.
func (b *Builder) Build() *discord.MessageCreateBuilder {
	lines := make([]string, 0, len(b.category.Bindings))
	for _, binding := range b.category.Bindings {
		lines = append(lines, fmt.Sprintf("%s: `%s`", binding.Emoji, b.displayName(binding.Role)))
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(b.category.Title).
		SetDescription(strings.Join(lines, "\n")).
		SetColor(b.category.Color).
		SetFooter(b.category.Footer, "")

	return discord.NewMessageCreateBuilder().
		SetEmbeds(embed.Build())
}

func (b *Builder) displayName(role string) string {
	if !b.category.Capitalize {
		return role
	}
	return utils.Capitalize(strings.ReplaceAll(role, "_", " "))
}
