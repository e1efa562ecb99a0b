package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/secretsanta/internal/common/uuid Generator

// Generator hands out identifiers for events and draws
type Generator interface {
	NewUUID() string
}

// RandomGenerator implements Generator with random (version 4) UUIDs
type RandomGenerator struct{}

func New() *RandomGenerator {
	return &RandomGenerator{}
}

// NewUUID returns a new random UUID string
func (g *RandomGenerator) NewUUID() string {
	return uuid.NewString()
}
