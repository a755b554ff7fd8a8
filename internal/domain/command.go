package domain

// Trigger phrases matched against recognized utterances. Matching is
// case-insensitive substring containment, first match wins.
const (
	TriggerHello = "hello"
	TriggerTime  = "what is the time"
	TriggerExit  = "exit"
	TriggerQuit  = "quit"
	TriggerStop  = "stop"
)

// Canned spoken replies.
const (
	ReplyStartup  = "Hello, I am your custom voice assistant. How can I help you today?"
	ReplyGreeting = "Hello! How can I help you?"
	ReplyFarewell = "Goodbye!"
	ReplyUnknown  = "I'm sorry, I don't understand that yet."

	// ReplyPlaybackBroken is spoken through the offline fallback engine when
	// primary playback fails. The originally requested audio is not replayed.
	ReplyPlaybackBroken = "Sorry, audio playback is not working right now."
)
