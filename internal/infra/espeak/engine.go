// Package espeak shells out to the espeak command line synthesizer. It is the
// last-resort voice when MP3 playback is unavailable, so it has no dependency
// on the audio stack at all.
package espeak

import (
	"fmt"
	"os/exec"
)

type Engine struct {
	binary string
	voice  string
}

func NewEngine(voice string) *Engine {
	return &Engine{
		binary: "espeak",
		voice:  voice,
	}
}

func (e *Engine) Say(text string) error {
	if text == "" {
		return nil
	}

	args := []string{}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	args = append(args, text)

	cmd := exec.Command(e.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running espeak: %w (output: %s)", err, out)
	}
	return nil
}
