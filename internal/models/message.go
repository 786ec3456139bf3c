package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageKind is the kind of a conversation message.
type MessageKind string

const (
	MessageText  MessageKind = "text"
	MessageMedia MessageKind = "media"
)

// ConversationMessage is one append-only entry in a user's conversation
// history. Messages are immutable once created.
type ConversationMessage struct {
	DefaultModel
	UserID uuid.UUID
	User   User `json:"-"`
	Body   string      // Message text, or an opaque media reference for media messages
	Kind   MessageKind `gorm:"default:text"`
	Author string      // The user's display name or the assistant's name
}

// BeforeSave defaults the message kind.
func (m *ConversationMessage) BeforeSave(_ *gorm.DB) error {
	if m.Kind == "" {
		m.Kind = MessageText
	}

	return nil
}

// AppendMessage appends a text message to the user's conversation history.
func (u User) AppendMessage(db *gorm.DB, body, author string) error {
	return db.Create(&ConversationMessage{
		UserID: u.ID,
		Body:   body,
		Kind:   MessageText,
		Author: author,
	}).Error
}

// AppendMedia appends a media reference to the user's conversation history.
func (u User) AppendMedia(db *gorm.DB, reference, author string) error {
	return db.Create(&ConversationMessage{
		UserID: u.ID,
		Body:   reference,
		Kind:   MessageMedia,
		Author: author,
	}).Error
}

// Conversation returns the user's full conversation history, sorted by
// timestamp ascending regardless of insertion order.
func (u User) Conversation(db *gorm.DB) ([]ConversationMessage, error) {
	var messages []ConversationMessage

	err := db.Where(&ConversationMessage{UserID: u.ID}).Order("created_at ASC").Find(&messages).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// RecentConversation returns the most recent n history entries, sorted by
// timestamp ascending. The history grows without bound, callers should
// always window their reads.
func (u User) RecentConversation(db *gorm.DB, n int) ([]ConversationMessage, error) {
	messages, err := u.Conversation(db)
	if err != nil {
		return nil, err
	}

	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}

	return messages, nil
}
