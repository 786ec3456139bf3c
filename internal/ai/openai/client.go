// Package openai implements the ai capability contracts against the OpenAI
// HTTP API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fridaybot/backend/internal/ai"
	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	defaultCompletionsModel = "text-davinci-002"
	defaultSearchModel      = "davinci"
	defaultTimeout          = 20 * time.Second
)

var (
	ErrMissingAPIKey = errors.New("an API key is required")

	// ErrUnavailable is returned for timeouts and non-2xx responses. Callers
	// degrade to a clarification reply, they never retry indefinitely.
	ErrUnavailable = errors.New("language service unavailable")
)

// Client calls the OpenAI completions and classifications endpoints. It
// implements ai.Classifier and ai.Generator.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

var (
	_ ai.Classifier = (*Client)(nil)
	_ ai.Generator  = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout bounds every API call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// New returns a Client for the given API key.
func New(apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultCompletionsModel,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

type completionRequest struct {
	Model            string   `json:"model"`
	Prompt           string   `json:"prompt"`
	Temperature      float64  `json:"temperature"`
	MaxTokens        int      `json:"max_tokens"`
	TopP             float64  `json:"top_p"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
	PresencePenalty  float64  `json:"presence_penalty"`
	Stop             []string `json:"stop,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Generate produces a completion for the prompt and returns the trimmed
// continuation text.
func (c *Client) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	var response completionResponse

	err := c.post(ctx, "/completions", completionRequest{
		Model:            c.model,
		Prompt:           req.Prompt,
		Temperature:      req.Temperature,
		MaxTokens:        req.MaxTokens,
		TopP:             req.TopP,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
		Stop:             req.Stop,
	}, &response)
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: response contains no choices", ErrUnavailable)
	}

	return strings.TrimSpace(response.Choices[0].Text), nil
}

type classificationRequest struct {
	Model       string      `json:"model"`
	SearchModel string      `json:"search_model"`
	Query       string      `json:"query"`
	Examples    [][2]string `json:"examples"`
	Labels      []string    `json:"labels"`
}

type classificationResponse struct {
	Label string `json:"label"`
}

// Classify assigns one of the candidate labels to the query.
func (c *Client) Classify(ctx context.Context, query string, examples []ai.Example, labels []string) (string, error) {
	pairs := make([][2]string, 0, len(examples))
	for _, example := range examples {
		pairs = append(pairs, [2]string{example.Text, example.Label})
	}

	var response classificationResponse
	err := c.post(ctx, "/classifications", classificationRequest{
		Model:       defaultSearchModel,
		SearchModel: defaultSearchModel,
		Query:       query,
		Examples:    pairs,
		Labels:      labels,
	}, &response)
	if err != nil {
		return "", err
	}

	return response.Label, nil
}

func (c *Client) post(ctx context.Context, path string, body any, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("language service call failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn().Int("status", resp.StatusCode).Str("path", path).Bytes("body", raw).Msg("language service returned an error")
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
