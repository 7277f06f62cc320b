package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new random (v4) UUID string. Used for both
// transaction ids and session ids; the two are always drawn independently.
func GenerateID() string {
	return uuid.NewString()
}
