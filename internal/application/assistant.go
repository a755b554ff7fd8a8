package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"voice-assistant/internal/domain"
)

// Assistant wires the voice pipeline together: it clones a voice on startup,
// then loops listening for utterances, dispatching them and speaking the
// replies until an exit command or context cancellation.
type Assistant struct {
	samples    SampleFetcher
	voices     VoiceCreator
	synth      Synthesizer
	recognizer Transcriber
	source     UtteranceSource
	encoder    UtteranceEncoder
	player     Player
	dispatcher *Dispatcher
	logger     *slog.Logger

	voiceName string
	voiceID   domain.VoiceID
}

type AssistantConfig struct {
	Samples     SampleFetcher
	Voices      VoiceCreator
	Synthesizer Synthesizer
	Recognizer  Transcriber
	Source      UtteranceSource
	Encoder     UtteranceEncoder
	Player      Player
	Dispatcher  *Dispatcher
	Logger      *slog.Logger
	VoiceName   string
}

func NewAssistant(cfg AssistantConfig) *Assistant {
	return &Assistant{
		samples:    cfg.Samples,
		voices:     cfg.Voices,
		synth:      cfg.Synthesizer,
		recognizer: cfg.Recognizer,
		source:     cfg.Source,
		encoder:    cfg.Encoder,
		player:     cfg.Player,
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
		voiceName:  cfg.VoiceName,
	}
}

// Run provisions the voice and enters the listen/dispatch/speak loop. It
// returns nil after a clean exit command and the context error when the
// context is cancelled. Provisioning failure aborts before any audio is
// captured or spoken.
func (a *Assistant) Run(ctx context.Context) error {
	if err := a.provisionVoice(ctx); err != nil {
		return fmt.Errorf("provisioning voice: %w", err)
	}

	if err := a.source.Start(ctx); err != nil {
		return fmt.Errorf("starting audio source: %w", err)
	}
	defer func() {
		if err := a.source.Stop(); err != nil {
			a.logger.Warn("stopping audio source", "error", err)
		}
	}()

	a.logger.Info("assistant ready", "source", a.source.Name(), "voice_id", a.voiceID)
	a.say(ctx, domain.ReplyStartup)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		utterance, err := a.listen(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if errors.Is(err, domain.ErrNoSpeech) {
				a.logger.Debug("no speech detected, listening again")
			} else {
				a.logger.Error("recognition failed", "error", err)
			}
			continue
		}

		a.logger.Info("heard utterance", "text", utterance)

		reply, terminate := a.dispatcher.Dispatch(utterance)
		a.say(ctx, reply)
		if terminate {
			a.logger.Info("exit command received, shutting down")
			return nil
		}
	}
}

func (a *Assistant) provisionVoice(ctx context.Context) error {
	a.logger.Info("downloading voice sample")
	sample, err := a.samples.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching voice sample: %w", err)
	}

	a.logger.Info("cloning voice", "name", a.voiceName, "sample_bytes", len(sample))
	voiceID, err := a.voices.CreateVoice(ctx, a.voiceName, sample)
	if err != nil {
		return fmt.Errorf("creating voice: %w", err)
	}

	a.voiceID = voiceID
	a.logger.Info("voice cloned", "voice_id", voiceID)
	return nil
}

func (a *Assistant) listen(ctx context.Context) (string, error) {
	samples, err := a.source.NextUtterance(ctx)
	if err != nil {
		return "", fmt.Errorf("capturing utterance: %w", err)
	}

	encoded, err := a.encoder.Encode(samples)
	if err != nil {
		return "", fmt.Errorf("encoding utterance: %w", err)
	}

	text, err := a.recognizer.Transcribe(ctx, encoded)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(text)), nil
}

// say synthesizes and plays a reply. Speech failures are logged and swallowed
// so that a flaky synthesis backend never changes the dispatch decision that
// was already made.
func (a *Assistant) say(ctx context.Context, text string) {
	audio, err := a.synth.Synthesize(ctx, text, a.voiceID)
	if err != nil {
		a.logger.Error("synthesis failed", "text", text, "error", err)
		return
	}
	a.player.Play(audio)
}
