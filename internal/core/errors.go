package core

import (
	"errors"
	"fmt"
)

var (
	ErrMessageRequired = errors.New("message is required")
	ErrUserRequired    = errors.New("user id is required")
	ErrPersonaLimit    = fmt.Errorf("custom personality limit reached (%d)", MaxPersonas)
	ErrPersonaNotFound = errors.New("personality not found")
)

// UpstreamError marks a failed or empty response from the model API. The turn
// that hit it can be retried by resending; the service itself never retries.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model api error: http %d", e.Status)
	}
	return fmt.Sprintf("model api error: %s", e.Detail)
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsInput reports whether err is a caller mistake rather than a server-side
// failure.
func IsInput(err error) bool {
	return errors.Is(err, ErrMessageRequired) || errors.Is(err, ErrUserRequired)
}
