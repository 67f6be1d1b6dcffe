package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/bot/builder/meme"
	"github.com/robalyx/turbo/internal/bot/builder/weather"
	"github.com/robalyx/turbo/internal/bot/constants"
	"go.uber.org/zap"
)

// actions lists the action names in the order they are suggested.
var actions = []struct {
	name  string
	reply string
}{
	{name: "dance", reply: constants.ActionDance},
	{name: "laugh", reply: constants.ActionLaugh},
	{name: "sing", reply: constants.ActionSing},
	{name: "run", reply: constants.ActionRun},
	{name: "sleep", reply: constants.ActionSleep},
}

func (h *handlers) funCommands() []Command {
	return []Command{
		{Name: "hello", Run: h.hello},
		{Name: "help", Run: h.help},
		{Name: "action", Run: h.action},
		{Name: "blague", Run: h.joke},
		{Name: "meme", Run: h.meme},
		{Name: "weather", MinArgs: 1, Run: h.weather},
	}
}

func (h *handlers) hello(ctx context.Context, inv Invocation) error {
	h.reply(ctx, inv.ChannelID, constants.HelloMessage)
	return nil
}

func (h *handlers) help(ctx context.Context, inv Invocation) error {
	h.reply(ctx, inv.ChannelID, constants.HelpMessage)
	return nil
}

// action performs the named action, or a random one when none is given.
func (h *handlers) action(ctx context.Context, inv Invocation) error {
	if len(inv.Args) == 0 {
		h.reply(ctx, inv.ChannelID, actions[h.randomIntN(len(actions))].reply)
		return nil
	}

	name := strings.ToLower(strings.Join(inv.Args, " "))
	for _, action := range actions {
		if action.name == name {
			h.reply(ctx, inv.ChannelID, action.reply)
			return nil
		}
	}

	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, action.name)
	}

	h.reply(ctx, inv.ChannelID, fmt.Sprintf(constants.UnknownActionMessage, strings.Join(names, ", ")))
	return nil
}

// joke tells a random joke.
func (h *handlers) joke(ctx context.Context, inv Invocation) error {
	joke, err := h.apis.Jokes.Random(ctx)
	if err != nil {
		h.logger.Warn("Failed to fetch joke", zap.Error(err))
		h.reply(ctx, inv.ChannelID, constants.JokeFailedMessage)
		return nil
	}

	h.reply(ctx, inv.ChannelID, joke.String())
	return nil
}

// meme posts a random meme from r/memes.
func (h *handlers) meme(ctx context.Context, inv Invocation) error {
	post, err := h.apis.Memes.Random(ctx)
	if err != nil {
		h.logger.Warn("Failed to fetch meme", zap.Error(err))
		h.reply(ctx, inv.ChannelID, constants.MemeFailedMessage)
		return nil
	}

	h.send(ctx, inv.ChannelID, meme.NewBuilder(post).Build().Build())
	return nil
}

// weather shows the current weather of a city: !weather <city>.
func (h *handlers) weather(ctx context.Context, inv Invocation) error {
	city := strings.Join(inv.Args, " ")

	current, err := h.apis.Weather.Current(ctx, city)
	if errors.Is(err, api.ErrNotFound) {
		h.reply(ctx, inv.ChannelID, constants.WeatherCityNotFound)
		return nil
	}
	if err != nil {
		h.logger.Warn("Failed to fetch weather",
			zap.String("city", city),
			zap.Error(err))
		h.reply(ctx, inv.ChannelID, constants.WeatherFailedMessage)
		return nil
	}

	h.send(ctx, inv.ChannelID, weather.NewBuilder(current).Build().Build())
	return nil
}
