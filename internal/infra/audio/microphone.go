//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	frameDuration = 20 * time.Millisecond

	// minThresholdRMS is the floor for the silence threshold so that a dead
	// quiet room does not make the endpointer trigger on sensor noise.
	minThresholdRMS = 0.01
)

// MicrophoneSource captures one utterance at a time from the default input
// device. It calibrates against ambient noise on Start and bounds each
// utterance by trailing silence.
type MicrophoneSource struct {
	sampleRate   int
	calibration  time.Duration
	silenceHold  time.Duration
	maxUtterance time.Duration
	logger       *slog.Logger

	stream    *portaudio.Stream
	frame     []int16
	threshold float64
}

func NewMicrophoneSource(sampleRate int, calibration, silenceHold, maxUtterance time.Duration, logger *slog.Logger) *MicrophoneSource {
	return &MicrophoneSource{
		sampleRate:   sampleRate,
		calibration:  calibration,
		silenceHold:  silenceHold,
		maxUtterance: maxUtterance,
		logger:       logger,
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Start(ctx context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	frameSize := m.sampleRate * int(frameDuration.Milliseconds()) / 1000
	m.frame = make([]int16, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), frameSize, m.frame)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	m.stream = stream

	if err := m.stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	if err := m.calibrate(ctx); err != nil {
		return fmt.Errorf("calibrating ambient noise: %w", err)
	}

	m.logger.Info("microphone started",
		"sample_rate", m.sampleRate,
		"silence_threshold", m.threshold,
	)
	return nil
}

func (m *MicrophoneSource) Stop() error {
	var errs []error
	if m.stream != nil {
		if err := m.stream.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping stream: %w", err))
		}
		if err := m.stream.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing stream: %w", err))
		}
		m.stream = nil
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("terminating portaudio: %w", err))
	}
	return errors.Join(errs...)
}

// calibrate listens to the room for the configured window and derives the
// silence threshold from the average background energy.
func (m *MicrophoneSource) calibrate(ctx context.Context) error {
	frames := int(m.calibration / frameDuration)
	if frames < 1 {
		frames = 1
	}

	var total float64
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := m.stream.Read(); err != nil {
			return fmt.Errorf("reading from stream: %w", err)
		}
		total += frameRMS(m.frame)
	}

	m.threshold = math.Max(minThresholdRMS, 1.5*total/float64(frames))
	return nil
}

// NextUtterance blocks until speech is detected and returns the samples up to
// the trailing silence, or whatever was captured when the length cap hits.
// The returned slice is empty when the cap expires without any speech.
func (m *MicrophoneSource) NextUtterance(ctx context.Context) ([]int16, error) {
	out := make([]int16, 0, m.sampleRate*3)
	holdFrames := int(m.silenceHold / frameDuration)
	maxFrames := int(m.maxUtterance / frameDuration)

	var (
		speaking      bool
		silenceFrames int
	)

	for i := 0; i < maxFrames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := m.stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		if frameRMS(m.frame) > m.threshold {
			speaking = true
			silenceFrames = 0
			out = append(out, m.frame...)
			continue
		}

		if speaking {
			silenceFrames++
			if silenceFrames >= holdFrames {
				break
			}
			out = append(out, m.frame...)
		}
	}

	return out, nil
}

func frameRMS(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		x := float64(s) / 32768.0
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(frame)))
}
