package application

import (
	"log/slog"
	"strings"
	"time"

	"voice-assistant/internal/domain"
)

type rule struct {
	name     string
	triggers []string
	reply    func(now time.Time) string
	terminal bool
}

// Dispatcher maps a transcribed utterance to a spoken reply. Matching is
// substring based and case insensitive, and rules are checked in a fixed
// order, so "hello, please stop" greets instead of exiting.
type Dispatcher struct {
	now    func() time.Time
	rules  []rule
	logger *slog.Logger
}

// NewDispatcher builds the command table. now may be nil, in which case the
// wall clock is used.
func NewDispatcher(now func() time.Time, logger *slog.Logger) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		now:    now,
		logger: logger,
		rules: []rule{
			{
				name:     "greeting",
				triggers: []string{domain.TriggerHello},
				reply:    func(time.Time) string { return domain.ReplyGreeting },
			},
			{
				name:     "time",
				triggers: []string{domain.TriggerTime},
				reply: func(now time.Time) string {
					return "The current time is " + now.Format("03:04 PM")
				},
			},
			{
				name:     "exit",
				triggers: []string{domain.TriggerExit, domain.TriggerQuit, domain.TriggerStop},
				reply:    func(time.Time) string { return domain.ReplyFarewell },
				terminal: true,
			},
		},
	}
}

// Dispatch returns the reply to speak and whether the assistant should shut
// down after speaking it.
func (d *Dispatcher) Dispatch(utterance string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(utterance))

	for _, r := range d.rules {
		for _, trigger := range r.triggers {
			if strings.Contains(normalized, trigger) {
				d.logger.Debug("command matched", "rule", r.name, "trigger", trigger)
				return r.reply(d.now()), r.terminal
			}
		}
	}

	d.logger.Debug("no command matched", "utterance", normalized)
	return domain.ReplyUnknown, false
}
