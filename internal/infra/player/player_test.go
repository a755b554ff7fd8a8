package player

import (
	"errors"
	"log/slog"
	"testing"

	"voice-assistant/internal/domain"
)

type recordingFallback struct {
	phrases []string
	err     error
}

func (f *recordingFallback) Say(text string) error {
	f.phrases = append(f.phrases, text)
	return f.err
}

func TestPlay_PrimarySuccessSkipsFallback(t *testing.T) {
	fallback := &recordingFallback{}
	played := 0
	p := NewWithPrimary(func(audio []byte) error {
		played++
		return nil
	}, fallback, slog.Default())

	p.Play([]byte("mp3 bytes"))

	if played != 1 {
		t.Fatalf("primary called %d times, want 1", played)
	}
	if len(fallback.phrases) != 0 {
		t.Fatalf("fallback called %d times, want 0", len(fallback.phrases))
	}
}

func TestPlay_PrimaryFailureInvokesFallbackOnce(t *testing.T) {
	fallback := &recordingFallback{}
	p := NewWithPrimary(func(audio []byte) error {
		return errors.New("no output device")
	}, fallback, slog.Default())

	p.Play([]byte("mp3 bytes"))

	if len(fallback.phrases) != 1 {
		t.Fatalf("fallback called %d times, want 1", len(fallback.phrases))
	}
	if fallback.phrases[0] != domain.ReplyPlaybackBroken {
		t.Fatalf("fallback spoke %q, want %q", fallback.phrases[0], domain.ReplyPlaybackBroken)
	}
}

func TestPlay_EmptyAudioIsNoOp(t *testing.T) {
	fallback := &recordingFallback{}
	played := 0
	p := NewWithPrimary(func(audio []byte) error {
		played++
		return nil
	}, fallback, slog.Default())

	p.Play(nil)

	if played != 0 || len(fallback.phrases) != 0 {
		t.Fatalf("expected no playback for empty audio, primary=%d fallback=%d", played, len(fallback.phrases))
	}
}

func TestPlay_FallbackErrorIsSwallowed(t *testing.T) {
	fallback := &recordingFallback{err: errors.New("espeak missing")}
	p := NewWithPrimary(func(audio []byte) error {
		return errors.New("decode failed")
	}, fallback, slog.Default())

	// Must not panic or propagate anything.
	p.Play([]byte("mp3 bytes"))

	if len(fallback.phrases) != 1 {
		t.Fatalf("fallback called %d times, want 1", len(fallback.phrases))
	}
}
