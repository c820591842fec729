package utils

import "github.com/google/uuid"

// UUIDGenerator produces string identifiers for verification tokens and
// other one-off secrets. Prefers time-ordered v7 UUIDs and falls back to
// random v4 if the system clock source is unavailable.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
