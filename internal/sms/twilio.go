package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultTwilioBaseURL = "https://api.twilio.com/2010-04-01"
	defaultTwilioTimeout = 15 * time.Second
)

var (
	ErrMissingCredentials = errors.New("Twilio account SID, auth token and sender number are required")

	// ErrDeliveryFailed is returned when Twilio does not acknowledge the message.
	ErrDeliveryFailed = errors.New("message delivery failed")
)

// Twilio sends messages through the Twilio REST API.
type Twilio struct {
	http       *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

var _ Sender = (*Twilio)(nil)

// TwilioOption configures a Twilio sender.
type TwilioOption func(*Twilio)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(url string) TwilioOption {
	return func(t *Twilio) {
		t.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout bounds every delivery call.
func WithTimeout(timeout time.Duration) TwilioOption {
	return func(t *Twilio) {
		t.http.Timeout = timeout
	}
}

// NewTwilio returns a Twilio sender.
func NewTwilio(accountSID, authToken, from string, options ...TwilioOption) (*Twilio, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, ErrMissingCredentials
	}

	t := &Twilio{
		http:       &http.Client{Timeout: defaultTwilioTimeout},
		baseURL:    defaultTwilioBaseURL,
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
	}

	for _, option := range options {
		option(t)
	}

	return t, nil
}

// Send delivers a text message.
func (t *Twilio) Send(ctx context.Context, to, body string) error {
	return t.send(ctx, to, body, "")
}

// SendMedia delivers a message with a media attachment.
func (t *Twilio) SendMedia(ctx context.Context, to, body, mediaURL string) error {
	return t.send(ctx, to, body, mediaURL)
}

func (t *Twilio) send(ctx context.Context, to, body, mediaURL string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)
	if mediaURL != "" {
		form.Set("MediaUrl", mediaURL)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("to", to).Msg("message delivery failed")
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn().Int("status", resp.StatusCode).Str("to", to).Bytes("body", raw).Msg("message delivery rejected")
		return fmt.Errorf("%w: HTTP %d", ErrDeliveryFailed, resp.StatusCode)
	}

	return nil
}
