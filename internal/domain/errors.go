package domain

import "errors"

var (
	// ErrNoSpeech means the recognition service understood nothing in the
	// captured audio. Treated as empty input, not a failure.
	ErrNoSpeech = errors.New("no speech recognized")

	// ErrNoVoiceID means the provider's voice-creation response did not
	// contain a voice identifier.
	ErrNoVoiceID = errors.New("voice creation response missing voice_id")

	// ErrVoiceNotProvisioned means synthesis was attempted without a voice
	// identifier. This is a caller bug, not a network condition.
	ErrVoiceNotProvisioned = errors.New("voice not provisioned")
)
