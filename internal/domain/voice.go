package domain

// VoiceID is the opaque token the synthesis provider returns when a custom
// voice is registered. It is required by every synthesis call.
type VoiceID string

func (v VoiceID) IsZero() bool {
	return v == ""
}
