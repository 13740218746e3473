package utils

import (
	"github.com/google/uuid"
)

// NewRequestID generates an identifier for an incoming request
func NewRequestID() string {
	return uuid.NewString()
}
