package shortid

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_shortid.go github.com/KirkDiggler/secretsanta/internal/common/shortid Generator

// alphabet avoids look-alike characters so ids can be read out loud
const alphabet = "23456789abcdefghjkmnpqrstuvwxyz"

// DefaultLength is long enough for the participant count of a single event
const DefaultLength = 10

// Generator produces short, URL-safe participant ids
type Generator interface {
	NewID() (string, error)
}

// NanoGenerator implements Generator using nanoid
type NanoGenerator struct {
	length int
}

// New creates a nanoid backed generator; a non-positive length falls back to DefaultLength
func New(length int) *NanoGenerator {
	if length <= 0 {
		length = DefaultLength
	}
	return &NanoGenerator{length: length}
}

// NewID returns a fresh id
func (g *NanoGenerator) NewID() (string, error) {
	id, err := gonanoid.Generate(alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("failed to generate short id: %w", err)
	}
	return id, nil
}
