package api

import (
	"context"
	"fmt"
)

// Joke is a two-part joke.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// String joins the setup and punchline on one line.
func (j Joke) String() string {
	return j.Setup + " - " + j.Punchline
}

// JokeClient fetches random jokes from the official joke API.
type JokeClient struct {
	*requester
	baseURL string
}

// Random returns a random joke.
func (c *JokeClient) Random(ctx context.Context) (Joke, error) {
	var joke Joke
	if err := c.getJSON(ctx, c.baseURL, nil, &joke); err != nil {
		return Joke{}, err
	}

	if joke.Setup == "" && joke.Punchline == "" {
		return Joke{}, fmt.Errorf("%w: joke has no text", ErrEmptyResponse)
	}

	return joke, nil
}

// Meme is a post from r/memes.
type Meme struct {
	Title    string
	ImageURL string
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title string `json:"title"`
				URL   string `json:"url"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// MemeClient fetches random posts from reddit's public JSON API.
type MemeClient struct {
	*requester
	baseURL string
}

// Random returns the first post of a random r/memes listing.
func (c *MemeClient) Random(ctx context.Context) (Meme, error) {
	var listings []redditListing
	if err := c.getJSON(ctx, c.baseURL, nil, &listings); err != nil {
		return Meme{}, err
	}

	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return Meme{}, fmt.Errorf("%w: listing has no posts", ErrEmptyResponse)
	}

	post := listings[0].Data.Children[0].Data

	return Meme{Title: post.Title, ImageURL: post.URL}, nil
}
