package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ConversationState is the state the conversation with a user is in. It
// decides how the next inbound message is interpreted.
type ConversationState string

const (
	StateRegistration     ConversationState = "Registration"
	StateAboutApp         ConversationState = "AboutApp"
	StateModifyBudget     ConversationState = "ModifyBudget"
	StateDiscussion       ConversationState = "Discussion"
	StateAccountInquiry   ConversationState = "AccountInquiry"
	StateTrackExpense     ConversationState = "TrackExpense"
	StateNeedsElaboration ConversationState = "NeedsElaboration"
)

// User represents a person texting the assistant. There is exactly one user
// per phone number.
type User struct {
	DefaultModel
	Name        string            // Set during onboarding, empty while in Registration
	PhoneNumber string            `gorm:"uniqueIndex"`
	State       ConversationState `gorm:"default:Registration"`
}

// BeforeSave trims whitespace from all strings and defaults the state.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.PhoneNumber = strings.TrimSpace(u.PhoneNumber)

	if u.State == "" {
		u.State = StateRegistration
	}

	return nil
}

// UserByPhone returns the user for a phone number, creating it in the
// Registration state when the phone number has not been seen before.
func UserByPhone(db *gorm.DB, phoneNumber string) (User, error) {
	var user User

	err := db.Where(&User{PhoneNumber: strings.TrimSpace(phoneNumber)}).First(&user).Error
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return User{}, err
	}

	user = User{PhoneNumber: phoneNumber, State: StateRegistration}
	err = db.Create(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// SetName stores the display name captured during onboarding.
func (u *User) SetName(db *gorm.DB, name string) error {
	u.Name = name
	return db.Model(u).Update("name", name).Error
}

// SetState persists a conversation state transition.
func (u *User) SetState(db *gorm.DB, state ConversationState) error {
	u.State = state
	return db.Model(u).Update("state", state).Error
}
