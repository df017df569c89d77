package app

import "github.com/google/uuid"

// IDGenerator produces opaque identifiers that are unique for the life of the process.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator hands out random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
