package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra"
)

// Client talks to the ElevenLabs voice-creation and synthesis endpoints.
type Client struct {
	apiKey          string
	modelID         string
	stability       float64
	similarityBoost float64
	baseURL         string
	httpClient      *http.Client
}

func NewClient(apiKey, modelID string, stability, similarityBoost float64) *Client {
	return NewClientWithURL(apiKey, modelID, stability, similarityBoost, "https://api.elevenlabs.io")
}

func NewClientWithURL(apiKey, modelID string, stability, similarityBoost float64, baseURL string) *Client {
	return &Client{
		apiKey:          apiKey,
		modelID:         modelID,
		stability:       stability,
		similarityBoost: similarityBoost,
		baseURL:         baseURL,
		httpClient:      &http.Client{Timeout: 60 * time.Second},
	}
}

type addVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}

// CreateVoice uploads an audio sample and registers it as a custom voice.
// Single attempt: provisioning failures are fatal to the caller, so there is
// no point hiding them behind a retry loop.
func (c *Client) CreateVoice(ctx context.Context, name string, sample []byte) (domain.VoiceID, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="files"; filename="voice_sample.mp3"`)
	header.Set("Content-Type", "audio/mpeg")

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("creating form part: %w", err)
	}
	if _, err = part.Write(sample); err != nil {
		return "", fmt.Errorf("writing sample: %w", err)
	}
	if err = writer.WriteField("name", name); err != nil {
		return "", fmt.Errorf("writing name field: %w", err)
	}
	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("closing writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/voices/add", body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("elevenlabs API error %d: %s", resp.StatusCode, string(respBody))
	}

	var result addVoiceResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if result.VoiceID == "" {
		return "", domain.ErrNoVoiceID
	}

	return domain.VoiceID(result.VoiceID), nil
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to MP3 audio using the given custom voice.
func (c *Client) Synthesize(ctx context.Context, text string, voice domain.VoiceID) ([]byte, error) {
	if voice.IsZero() {
		return nil, domain.ErrVoiceNotProvisioned
	}

	payload, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       c.stability,
			SimilarityBoost: c.similarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var audio []byte
	retryErr := infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/v1/text-to-speech/"+string(voice), bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("xi-api-key", c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "audio/mpeg")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return fmt.Errorf("elevenlabs API error %d: %s (retryable)", resp.StatusCode, string(respBody))
			}
			return fmt.Errorf("elevenlabs API error %d: %s", resp.StatusCode, string(respBody))
		}

		audio, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading audio stream: %w", err)
		}
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return audio, nil
}
