package generator

import (
	"errors"
	"fmt"

	"github.com/samdwyer/hexboard/internal/rules"
)

var (
	// ErrGenerationExhausted is returned when the attempt cap is reached
	// without a valid layout. The caller may retry or relax the rules.
	ErrGenerationExhausted = errors.New("no valid layout found")

	// ErrInvalidConfiguration is returned for options no layout can satisfy.
	ErrInvalidConfiguration = rules.ErrInvalidConfiguration
)

// ExhaustedError reports how a failed generation spent its attempts.
type ExhaustedError struct {
	Attempts   int
	Rejections map[string]int // Rule name to rejected candidates
}

// Error implements the error interface
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts", ErrGenerationExhausted, e.Attempts)
}

// Unwrap returns ErrGenerationExhausted so errors.Is matches.
func (e *ExhaustedError) Unwrap() error {
	return ErrGenerationExhausted
}
