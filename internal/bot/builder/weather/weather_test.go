package weather_test

import (
	"testing"

	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/bot/builder/weather"
	"github.com/robalyx/turbo/internal/bot/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	msg := weather.NewBuilder(api.Weather{
		City:        "London",
		Description: "light rain",
		Temperature: 12.5,
		FeelsLike:   11,
		Humidity:    81,
		WindSpeed:   4.12,
	}).Build().Build()

	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]

	assert.Equal(t, "Weather in London", embed.Title)
	assert.Equal(t, "Light rain", embed.Description)
	require.Len(t, embed.Fields, 4)

	values := make(map[string]string, len(embed.Fields))
	for _, field := range embed.Fields {
		values[field.Name] = field.Value
	}

	assert.Equal(t, map[string]string{
		"Temperature": "12.5°C",
		"Feels Like":  "11°C",
		"Humidity":    "81%",
		"Wind Speed":  "4.12 m/s",
	}, values)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, constants.WeatherFooter, embed.Footer.Text)
}
