package player

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"

	"voice-assistant/internal/domain"
)

// FallbackSpeaker is the offline engine used when primary playback fails.
type FallbackSpeaker interface {
	Say(text string) error
}

// Player plays MP3 buffers through the default output device. Playback is
// fire and forget: Play returns before the audio finishes, so a long reply
// may overlap the next one. Play never fails the caller; a broken primary
// path degrades to the fallback engine speaking a fixed apology phrase
// instead of the requested audio.
type Player struct {
	primary  func(audio []byte) error
	fallback FallbackSpeaker
	logger   *slog.Logger

	initOnce sync.Once
	initErr  error
}

func New(fallback FallbackSpeaker, logger *slog.Logger) *Player {
	p := &Player{
		fallback: fallback,
		logger:   logger,
	}
	p.primary = p.playMP3
	return p
}

// NewWithPrimary swaps the primary playback path, used by tests to simulate
// player failures without an audio device.
func NewWithPrimary(primary func(audio []byte) error, fallback FallbackSpeaker, logger *slog.Logger) *Player {
	return &Player{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (p *Player) Play(audio []byte) {
	if len(audio) == 0 {
		return
	}

	err := p.primary(audio)
	if err == nil {
		return
	}

	p.logger.Warn("primary playback failed, switching to fallback engine", "error", err)
	if err := p.fallback.Say(domain.ReplyPlaybackBroken); err != nil {
		p.logger.Error("fallback playback failed", "error", err)
	}
}

func (p *Player) playMP3(audio []byte) error {
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(audio)))
	if err != nil {
		return fmt.Errorf("decoding mp3: %w", err)
	}

	p.initOnce.Do(func() {
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if p.initErr != nil {
		streamer.Close()
		return fmt.Errorf("initializing speaker: %w", p.initErr)
	}

	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		streamer.Close()
	})))
	return nil
}
