package application

import "context"

// UtteranceSource captures a single spoken utterance from the user. Start
// must be called before NextUtterance and Stop when the source is no longer
// needed.
type UtteranceSource interface {
	Start(ctx context.Context) error
	Stop() error
	NextUtterance(ctx context.Context) ([]int16, error)
	Name() string
}

// UtteranceEncoder packages raw PCM samples into the container format the
// recognizer expects.
type UtteranceEncoder interface {
	Encode(samples []int16) ([]byte, error)
}
