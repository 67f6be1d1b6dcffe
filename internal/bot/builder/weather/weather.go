package weather

import (
	"fmt"
	"strconv"

	"github.com/disgoorg/disgo/discord"
	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/robalyx/turbo/pkg/utils"
)

// Builder creates the current weather embed.
type Builder struct {
	weather api.Weather
}

// NewBuilder creates a new weather builder.
func NewBuilder(weather api.Weather) *Builder {
	return &Builder{weather: weather}
}

// Build creates an embed with the conditions of the city.
func (b *Builder) Build() *discord.MessageCreateBuilder {
	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf(constants.WeatherTitle, b.weather.City)).
		SetDescription(utils.Capitalize(b.weather.Description)).
		SetColor(constants.WeatherEmbedColor).
		AddField("Temperature", formatFloat(b.weather.Temperature)+"°C", true).
		AddField("Feels Like", formatFloat(b.weather.FeelsLike)+"°C", true).
		AddField("Humidity", formatFloat(b.weather.Humidity)+"%", true).
		AddField("Wind Speed", formatFloat(b.weather.WindSpeed)+" m/s", true).
		SetFooter(constants.WeatherFooter, "")

	return discord.NewMessageCreateBuilder().
		SetEmbeds(embed.Build())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
