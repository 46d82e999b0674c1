package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// UserStatus is the lifecycle state of a user account.
type UserStatus string

// Known user statuses.
const (
	UserStatusActive   UserStatus = "active"
	UserStatusInvited  UserStatus = "invited"
	UserStatusDisabled UserStatus = "disabled"
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusInvited, UserStatusDisabled:
		return true
	}
	return false
}

// User is a registered account. Values are treated as immutable: the With
// methods return modified copies.
type User struct {
	ID          UserID `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	// PasswordHash is empty for users that never set a local password.
	PasswordHash string     `json:"-"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NewUser creates an invited user with a fresh ID.
func NewUser(email, displayName string) (User, error) {
	now := time.Now().UTC()
	u := User{
		ID:          NewUserID(),
		Email:       strings.TrimSpace(email),
		DisplayName: strings.TrimSpace(displayName),
		Status:      UserStatusInvited,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// Validate checks every field of u.
func (u User) Validate() error {
	if u.ID.IsZero() {
		return fmt.Errorf("%w: empty id", ErrInvalidUserID)
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}
	if u.DisplayName == "" {
		return ErrEmptyDisplayName
	}
	if !u.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidUserStatus, u.Status)
	}
	return nil
}

// WithDisplayName returns a copy of u with a new display name.
func (u User) WithDisplayName(name string) User {
	u.DisplayName = name
	u.UpdatedAt = nextTimestamp(u.UpdatedAt)
	return u
}

// WithStatus returns a copy of u with a new status.
func (u User) WithStatus(status UserStatus) User {
	u.Status = status
	u.UpdatedAt = nextTimestamp(u.UpdatedAt)
	return u
}

// WithPasswordHash returns a copy of u with a new password hash.
func (u User) WithPasswordHash(hash string) User {
	u.PasswordHash = hash
	u.UpdatedAt = nextTimestamp(u.UpdatedAt)
	return u
}

// nextTimestamp returns now, or previous plus one millisecond when the clock
// has not advanced past previous.
func nextTimestamp(previous time.Time) time.Time {
	now := time.Now().UTC()
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Millisecond)
}
