package session

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserID = errors.New("user id is empty or malformed")
)

// MaxUserIDLength bounds user identifiers so a garbage key cannot silently
// create a throwaway thread.
const MaxUserIDLength = 128

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Turn is one exchange in a conversation thread. Immutable once appended.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn stamps a turn with a fresh id and the current UTC time.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// ThreadIDFor derives the thread identifier for a user. The derivation is
// deterministic so repeated requests from one user always resolve to the
// same thread.
func ThreadIDFor(userID string) string {
	return "thread-" + userID
}

// ValidateUserID rejects malformed identifiers at the store boundary.
func ValidateUserID(userID string) (string, error) {
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" || len(trimmed) > MaxUserIDLength {
		return "", ErrInvalidUserID
	}
	return trimmed, nil
}
