package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrVocalsUnavailable indicates the vocal synthesis provider rejected or
// failed the request.
var ErrVocalsUnavailable = errors.New("vocal synthesis unavailable")

// VocalSynthesisError provides provider context for a failed synthesis.
type VocalSynthesisError struct {
	Provider string
	Reason   string
}

func (e VocalSynthesisError) Error() string {
	if e.Reason == "" {
		return ErrVocalsUnavailable.Error()
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e VocalSynthesisError) Is(target error) bool {
	return target == ErrVocalsUnavailable
}

// VocalSynthesizer converts lyric text into preview audio (MP3 bytes).
type VocalSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID, modelID string) ([]byte, error)
}
