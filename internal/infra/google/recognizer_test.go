package google_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra/google"
)

func TestClient_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "audio/x-flac; rate=16000" {
			t.Errorf("content type: got %q, want audio/x-flac; rate=16000", got)
		}
		q := r.URL.Query()
		if q.Get("client") != "chromium" {
			t.Errorf("client param: got %q, want chromium", q.Get("client"))
		}
		if q.Get("lang") != "en-US" {
			t.Errorf("lang param: got %q, want en-US", q.Get("lang"))
		}
		if q.Get("key") == "" {
			t.Error("key param missing")
		}

		fmt.Fprintln(w, `{"result":[]}`)
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":"what is the time","confidence":0.93},{"transcript":"what is the dime","confidence":0.41}],"final":true}],"result_index":0}`)
	}))
	defer server.Close()

	client := google.NewClientWithURL("", "en-US", 16000, server.URL)

	text, err := client.Transcribe(context.Background(), []byte("flac audio"))
	if err != nil {
		t.Fatalf("Transcribe error: %v", err)
	}
	if text != "what is the time" {
		t.Errorf("transcript: got %q, want the highest-confidence hypothesis", text)
	}
}

func TestClient_Transcribe_NoSpeech(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":[]}`)
	}))
	defer server.Close()

	client := google.NewClientWithURL("", "en-US", 16000, server.URL)

	_, err := client.Transcribe(context.Background(), []byte("flac audio"))
	if !errors.Is(err, domain.ErrNoSpeech) {
		t.Errorf("error: got %v, want ErrNoSpeech", err)
	}
}

func TestClient_Transcribe_EmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":""}],"final":true}]}`)
	}))
	defer server.Close()

	client := google.NewClientWithURL("", "en-US", 16000, server.URL)

	_, err := client.Transcribe(context.Background(), []byte("flac audio"))
	if !errors.Is(err, domain.ErrNoSpeech) {
		t.Errorf("error: got %v, want ErrNoSpeech", err)
	}
}

func TestClient_Transcribe_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := google.NewClientWithURL("", "en-US", 16000, server.URL)

	if _, err := client.Transcribe(context.Background(), []byte("flac audio")); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
