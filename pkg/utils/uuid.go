package utils

import "github.com/google/uuid"

// GenerateUUID returns a random RFC 4122 version 4 UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}
