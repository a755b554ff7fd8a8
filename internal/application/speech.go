package application

import (
	"context"

	"voice-assistant/internal/domain"
)

// Transcriber converts an encoded utterance into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer renders text into playable audio using a provisioned voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice domain.VoiceID) ([]byte, error)
}

// VoiceCreator registers a cloned voice from a reference sample.
type VoiceCreator interface {
	CreateVoice(ctx context.Context, name string, sample []byte) (domain.VoiceID, error)
}

// SampleFetcher downloads the reference voice sample used for cloning.
type SampleFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}
