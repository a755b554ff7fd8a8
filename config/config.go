package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ElevenLabs ElevenLabsConfig `yaml:"elevenlabs"`
	Voice      VoiceConfig      `yaml:"voice"`
	Recognizer RecognizerConfig `yaml:"recognizer"`
	Log        LogConfig        `yaml:"log"`
}

type ElevenLabsConfig struct {
	APIKey          string  `yaml:"api_key"`
	ModelID         string  `yaml:"model_id"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
}

type VoiceConfig struct {
	Name      string `yaml:"name"`
	SampleURL string `yaml:"sample_url"`
}

type RecognizerConfig struct {
	APIKey          string `yaml:"api_key"`
	Language        string `yaml:"language"`
	SampleRate      int    `yaml:"sample_rate"`
	CalibrationMs   int    `yaml:"calibration_ms"`
	SilenceHoldMs   int    `yaml:"silence_hold_ms"`
	MaxUtteranceSec int    `yaml:"max_utterance_sec"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the yaml config at path, expanding ${VAR} references from the
// environment. A missing file is not an error: defaults plus environment
// variables are enough to run. A missing synthesis credential is fatal.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.setDefaults()

	if cfg.ElevenLabs.APIKey == "" {
		cfg.ElevenLabs.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	}
	if cfg.Recognizer.APIKey == "" {
		cfg.Recognizer.APIKey = os.Getenv("SPEECH_API_KEY")
	}

	if cfg.ElevenLabs.APIKey == "" {
		return nil, errors.New("elevenlabs api key not set: set elevenlabs.api_key or export ELEVENLABS_API_KEY")
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.ElevenLabs.ModelID == "" {
		c.ElevenLabs.ModelID = "eleven_monolingual_v1"
	}
	if c.ElevenLabs.Stability == 0 {
		c.ElevenLabs.Stability = 0.5
	}
	if c.ElevenLabs.SimilarityBoost == 0 {
		c.ElevenLabs.SimilarityBoost = 0.5
	}
	if c.Voice.Name == "" {
		c.Voice.Name = "My Custom Voice"
	}
	if c.Voice.SampleURL == "" {
		c.Voice.SampleURL = "https://ipfs.io/ipfs/bafybeiczarcv4ccnfnba73i5pj3s3oe726sotl5ybmqnnmtx4ah7h4djri"
	}
	if c.Recognizer.Language == "" {
		c.Recognizer.Language = "en-US"
	}
	if c.Recognizer.SampleRate == 0 {
		c.Recognizer.SampleRate = 16000
	}
	if c.Recognizer.CalibrationMs == 0 {
		c.Recognizer.CalibrationMs = 500
	}
	if c.Recognizer.SilenceHoldMs == 0 {
		c.Recognizer.SilenceHoldMs = 600
	}
	if c.Recognizer.MaxUtteranceSec == 0 {
		c.Recognizer.MaxUtteranceSec = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
