package application

import (
	"log/slog"
	"regexp"
	"testing"
	"time"

	"voice-assistant/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDispatch_Greeting(t *testing.T) {
	d := NewDispatcher(nil, slog.Default())

	for _, utterance := range []string{"hello", "Hello there", "well hello friend"} {
		reply, terminate := d.Dispatch(utterance)
		if reply != domain.ReplyGreeting {
			t.Errorf("Dispatch(%q) reply = %q, want %q", utterance, reply, domain.ReplyGreeting)
		}
		if terminate {
			t.Errorf("Dispatch(%q) requested termination", utterance)
		}
	}
}

func TestDispatch_Time(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 7, 0, 0, time.UTC)
	d := NewDispatcher(fixedClock(now), slog.Default())

	reply, terminate := d.Dispatch("hey, what is the time right now?")
	if terminate {
		t.Fatal("time query requested termination")
	}
	if want := "The current time is 02:07 PM"; reply != want {
		t.Fatalf("reply = %q, want %q", reply, want)
	}

	pattern := regexp.MustCompile(`The current time is \d{2}:\d{2} (AM|PM)`)
	if !pattern.MatchString(reply) {
		t.Fatalf("reply %q does not match 12-hour clock format", reply)
	}
}

func TestDispatch_ExitWords(t *testing.T) {
	d := NewDispatcher(nil, slog.Default())

	for _, utterance := range []string{"exit", "please quit", "Stop now", "STOP"} {
		reply, terminate := d.Dispatch(utterance)
		if reply != domain.ReplyFarewell {
			t.Errorf("Dispatch(%q) reply = %q, want %q", utterance, reply, domain.ReplyFarewell)
		}
		if !terminate {
			t.Errorf("Dispatch(%q) did not request termination", utterance)
		}
	}
}

func TestDispatch_GreetingBeatsExit(t *testing.T) {
	d := NewDispatcher(nil, slog.Default())

	reply, terminate := d.Dispatch("hello, please stop")
	if reply != domain.ReplyGreeting {
		t.Fatalf("reply = %q, want greeting to win by rule order", reply)
	}
	if terminate {
		t.Fatal("greeting rule must not terminate")
	}
}

func TestDispatch_Unknown(t *testing.T) {
	d := NewDispatcher(nil, slog.Default())

	for _, utterance := range []string{"", "   ", "play some music", "what is the weather"} {
		reply, terminate := d.Dispatch(utterance)
		if reply != domain.ReplyUnknown {
			t.Errorf("Dispatch(%q) reply = %q, want %q", utterance, reply, domain.ReplyUnknown)
		}
		if terminate {
			t.Errorf("Dispatch(%q) requested termination", utterance)
		}
	}
}

func TestDispatch_CaseInsensitive(t *testing.T) {
	d := NewDispatcher(nil, slog.Default())

	lower, _ := d.Dispatch("what is the time")
	upper, _ := d.Dispatch("WHAT IS THE TIME")
	if lower != upper {
		t.Fatalf("case sensitivity detected: %q vs %q", lower, upper)
	}
}
