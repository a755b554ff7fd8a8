package application

// Player plays synthesized audio. Playback is best effort and never reports
// failure to the caller.
type Player interface {
	Play(audio []byte)
}
