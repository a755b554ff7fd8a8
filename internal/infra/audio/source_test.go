package audio

import "voice-assistant/internal/application"

// Both the real microphone and its stub must satisfy the application ports;
// this file carries no build tag so the check holds either way.
var (
	_ application.UtteranceSource  = (*MicrophoneSource)(nil)
	_ application.UtteranceEncoder = (*FLACEncoder)(nil)
)
