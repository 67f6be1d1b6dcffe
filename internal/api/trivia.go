package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/robalyx/turbo/internal/trivia"
)

// ErrTriviaResponse is returned when the trivia database answers with a
// non-zero response code.
var ErrTriviaResponse = errors.New("trivia database returned an error code")

//nolint:tagliatelle // API returns snake_case
type triviaResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// TriviaClient fetches questions from the Open Trivia Database.
// It implements trivia.Source.
type TriviaClient struct {
	*requester
	baseURL string
}

// Questions fetches opts.Amount questions, optionally filtered by category
// and difficulty.
func (c *TriviaClient) Questions(ctx context.Context, opts trivia.Options) ([]trivia.RawQuestion, error) {
	amount := opts.Amount
	if amount <= 0 {
		amount = trivia.DefaultAmount
	}

	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	if opts.Category > 0 {
		params.Set("category", strconv.Itoa(opts.Category))
	}
	if opts.Difficulty != "" {
		params.Set("difficulty", opts.Difficulty)
	}

	var resp triviaResponse
	if err := c.getJSON(ctx, c.baseURL, params, &resp); err != nil {
		return nil, err
	}

	if resp.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: %d", ErrTriviaResponse, resp.ResponseCode)
	}

	questions := make([]trivia.RawQuestion, 0, len(resp.Results))
	for _, result := range resp.Results {
		questions = append(questions, trivia.RawQuestion{
			Prompt:           result.Question,
			CorrectAnswer:    result.CorrectAnswer,
			IncorrectAnswers: result.IncorrectAnswers,
		})
	}

	return questions, nil
}
