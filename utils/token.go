package utils

import "github.com/google/uuid"

// CreateToken returns an opaque high-entropy token built from two UUIDs.
func CreateToken() string {
	firstUUID, err := uuid.NewRandom()
	if err != nil {
		return ""
	}

	secondUUID, err := uuid.NewRandom()
	if err != nil {
		return ""
	}

	return firstUUID.String() + secondUUID.String()
}
