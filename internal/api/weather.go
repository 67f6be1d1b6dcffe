package api

import (
	"context"
	"fmt"
	"net/url"
)

// Weather is the current weather of a city in metric units.
type Weather struct {
	City        string
	Description string
	Temperature float64
	FeelsLike   float64
	Humidity    float64
	WindSpeed   float64
}

//nolint:tagliatelle // API returns snake_case
type weatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// WeatherClient fetches the current weather from OpenWeather.
type WeatherClient struct {
	*requester
	baseURL string
	apiKey  string
}

// Current returns the weather for city. An unknown city yields ErrNotFound.
func (c *WeatherClient) Current(ctx context.Context, city string) (Weather, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	var resp weatherResponse
	if err := c.getJSON(ctx, c.baseURL, params, &resp); err != nil {
		return Weather{}, err
	}

	if len(resp.Weather) == 0 {
		return Weather{}, fmt.Errorf("%w: no weather conditions for %q", ErrEmptyResponse, city)
	}

	return Weather{
		City:        resp.Name,
		Description: resp.Weather[0].Description,
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
	}, nil
}
