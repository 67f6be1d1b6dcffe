// Package api contains the HTTP clients for the public services the bot proxies:
// the Open Trivia Database, the official joke API, reddit and OpenWeather.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Default service endpoints.
const (
	DefaultTriviaURL  = "https://opentdb.com/api.php"
	DefaultJokeURL    = "https://official-joke-api.appspot.com/random_joke"
	DefaultMemeURL    = "https://www.reddit.com/r/memes/random/.json"
	DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

	// DefaultUserAgent is sent with every request; reddit rejects requests without one.
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrRequestFailed is returned when a request could not be sent or read.
	ErrRequestFailed = errors.New("request failed")
	// ErrUnexpectedStatus is returned for any non-200 response.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidResponse is returned when a response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response body")
	// ErrEmptyResponse is returned when a response decodes but carries no data.
	ErrEmptyResponse = errors.New("empty response")
)

// Config holds the endpoints and credentials of every client.
type Config struct {
	TriviaURL  string
	JokeURL    string
	MemeURL    string
	WeatherURL string
	WeatherKey string
	UserAgent  string
	Timeout    time.Duration
}

// Clients bundles one client per service.
type Clients struct {
	Trivia  *TriviaClient
	Jokes   *JokeClient
	Memes   *MemeClient
	Weather *WeatherClient
}

// New creates every client sharing one HTTP client. Empty config fields fall
// back to the defaults.
func New(cfg Config, logger *zap.Logger) *Clients {
	if cfg.TriviaURL == "" {
		cfg.TriviaURL = DefaultTriviaURL
	}
	if cfg.JokeURL == "" {
		cfg.JokeURL = DefaultJokeURL
	}
	if cfg.MemeURL == "" {
		cfg.MemeURL = DefaultMemeURL
	}
	if cfg.WeatherURL == "" {
		cfg.WeatherURL = DefaultWeatherURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	r := &requester{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		logger:    logger.Named("api"),
	}

	return &Clients{
		Trivia:  &TriviaClient{requester: r, baseURL: cfg.TriviaURL},
		Jokes:   &JokeClient{requester: r, baseURL: cfg.JokeURL},
		Memes:   &MemeClient{requester: r, baseURL: cfg.MemeURL},
		Weather: &WeatherClient{requester: r, baseURL: cfg.WeatherURL, apiKey: cfg.WeatherKey},
	}
}

// requester performs GET requests and decodes JSON bodies.
type requester struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// getJSON fetches baseURL with the given query and decodes the body into out.
func (r *requester) getJSON(ctx context.Context, baseURL string, params url.Values, out any) error {
	fullURL := baseURL
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrRequestFailed, err)
	}

	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrRequestFailed, err)
	}

	// Check status code
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: HTTP %d", ErrNotFound, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		r.logger.Debug("Unexpected response status",
			zap.String("url", baseURL),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}
