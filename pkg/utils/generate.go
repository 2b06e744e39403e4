package utils

import (
	"github.com/google/uuid"
)

// ==================== UUID ====================

// GenerateCommentID returns a time-ordered identifier. UUIDv7 values from
// this package are monotonic within the process, so two comments created in
// the same millisecond still sort in creation order.
func GenerateCommentID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func GenerateViewID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}
