package domain

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var userIDPattern = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

// UserID identifies a user. Valid IDs are 36 characters of hex digits and
// dashes, the textual shape of a UUID.
type UserID struct {
	value string
}

// NewUserID generates a random user ID.
func NewUserID() UserID {
	return UserID{value: uuid.NewString()}
}

// ParseUserID validates s and wraps it as a UserID.
func ParseUserID(s string) (UserID, error) {
	if !IsValidUserID(s) {
		return UserID{}, fmt.Errorf("%w: %q", ErrInvalidUserID, s)
	}
	return UserID{value: s}, nil
}

// MustParseUserID is ParseUserID that panics on invalid input. Intended for
// constants and tests.
func MustParseUserID(s string) UserID {
	id, err := ParseUserID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValidUserID reports whether s has the shape of a user ID.
func IsValidUserID(s string) bool {
	return userIDPattern.MatchString(s)
}

// IsZero reports whether id is the zero value.
func (id UserID) IsZero() bool {
	return id.value == ""
}

// String returns the textual form of id.
func (id UserID) String() string {
	return id.value
}

// MarshalText implements encoding.TextMarshaler.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
