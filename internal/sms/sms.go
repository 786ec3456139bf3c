// Package sms defines the outbound message delivery contract and its Twilio
// implementation.
package sms

import "context"

// Sender delivers messages to a phone number.
type Sender interface {
	// Send delivers a text message.
	Send(ctx context.Context, to, body string) error

	// SendMedia delivers a message with a media attachment, referenced by URL.
	SendMedia(ctx context.Context, to, body, mediaURL string) error
}
