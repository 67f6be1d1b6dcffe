package api_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// serve starts a server answering every request with status and body, and
// records the query of the last request.
func serve(t *testing.T, status int, body string) (*httptest.Server, func() url.Values) {
	t.Helper()

	var (
		mu   sync.Mutex
		last url.Values
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = r.URL.Query()
		mu.Unlock()

		if ua := r.Header.Get("User-Agent"); ua != api.DefaultUserAgent {
			http.Error(w, "missing user agent", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, func() url.Values {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func clientsFor(t *testing.T, srvURL string) *api.Clients {
	t.Helper()

	return api.New(api.Config{
		TriviaURL:  srvURL,
		JokeURL:    srvURL,
		MemeURL:    srvURL,
		WeatherURL: srvURL,
		WeatherKey: "secret",
	}, zaptest.NewLogger(t))
}

func TestTriviaQuestions(t *testing.T) {
	t.Parallel()

	srv, last := serve(t, http.StatusOK, `{
		"response_code": 0,
		"results": [{
			"type": "multiple",
			"question": "What does &quot;CPU&quot; stand for?",
			"correct_answer": "Central Processing Unit",
			"incorrect_answers": ["Central Process Unit", "Computer Personal Unit", "Central Processor Unit"]
		}]
	}`)

	questions, err := clientsFor(t, srv.URL).Trivia.Questions(t.Context(), trivia.Options{
		Category: 18, Difficulty: "medium",
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, "What does &quot;CPU&quot; stand for?", questions[0].Prompt)
	assert.Equal(t, "Central Processing Unit", questions[0].CorrectAnswer)
	assert.Len(t, questions[0].IncorrectAnswers, 3)

	query := last()
	assert.Equal(t, "5", query.Get("amount"))
	assert.Equal(t, "18", query.Get("category"))
	assert.Equal(t, "medium", query.Get("difficulty"))
}

func TestTriviaOmitsUnsetFilters(t *testing.T) {
	t.Parallel()

	srv, last := serve(t, http.StatusOK, `{"response_code": 0, "results": []}`)

	_, err := clientsFor(t, srv.URL).Trivia.Questions(t.Context(), trivia.Options{Amount: 3})
	require.NoError(t, err)

	query := last()
	assert.Equal(t, "3", query.Get("amount"))
	assert.False(t, query.Has("category"))
	assert.False(t, query.Has("difficulty"))
}

func TestTriviaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "response code", status: http.StatusOK, body: `{"response_code": 1, "results": []}`, want: api.ErrTriviaResponse},
		{name: "server error", status: http.StatusBadGateway, body: `{}`, want: api.ErrUnexpectedStatus},
		{name: "bad json", status: http.StatusOK, body: `{"response_code":`, want: api.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := serve(t, tt.status, tt.body)

			_, err := clientsFor(t, srv.URL).Trivia.Questions(t.Context(), trivia.Options{})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestJokeRandom(t *testing.T) {
	t.Parallel()

	srv, _ := serve(t, http.StatusOK, `{"id": 1, "type": "general", "setup": "Why?", "punchline": "Because."}`)

	joke, err := clientsFor(t, srv.URL).Jokes.Random(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Why? - Because.", joke.String())

	srv, _ = serve(t, http.StatusInternalServerError, ``)
	_, err = clientsFor(t, srv.URL).Jokes.Random(t.Context())
	require.ErrorIs(t, err, api.ErrUnexpectedStatus)
}

func TestMemeRandom(t *testing.T) {
	t.Parallel()

	srv, _ := serve(t, http.StatusOK, `[
		{"kind": "Listing", "data": {"children": [{"kind": "t3", "data": {"title": "Monday", "url": "https://i.redd.it/x.png"}}]}},
		{"kind": "Listing", "data": {"children": []}}
	]`)

	meme, err := clientsFor(t, srv.URL).Memes.Random(t.Context())
	require.NoError(t, err)
	assert.Equal(t, api.Meme{Title: "Monday", ImageURL: "https://i.redd.it/x.png"}, meme)

	srv, _ = serve(t, http.StatusOK, `[]`)
	_, err = clientsFor(t, srv.URL).Memes.Random(t.Context())
	require.ErrorIs(t, err, api.ErrEmptyResponse)
}

func TestWeatherCurrent(t *testing.T) {
	t.Parallel()

	srv, last := serve(t, http.StatusOK, `{
		"name": "London",
		"weather": [{"main": "Rain", "description": "light rain"}],
		"main": {"temp": 12.5, "feels_like": 11.2, "humidity": 81},
		"wind": {"speed": 4.1}
	}`)

	weather, err := clientsFor(t, srv.URL).Weather.Current(t.Context(), "London")
	require.NoError(t, err)
	assert.Equal(t, api.Weather{
		City:        "London",
		Description: "light rain",
		Temperature: 12.5,
		FeelsLike:   11.2,
		Humidity:    81,
		WindSpeed:   4.1,
	}, weather)

	query := last()
	assert.Equal(t, "London", query.Get("q"))
	assert.Equal(t, "secret", query.Get("appid"))
	assert.Equal(t, "metric", query.Get("units"))
}

func TestWeatherStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unknown city", status: http.StatusNotFound, want: api.ErrNotFound},
		{name: "bad key", status: http.StatusUnauthorized, want: api.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := serve(t, tt.status, `{"cod": "error"}`)

			_, err := clientsFor(t, srv.URL).Weather.Current(t.Context(), "Atlantis")
			require.ErrorIs(t, err, tt.want)
		})
	}
}
