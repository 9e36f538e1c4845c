// Package speech speaks answers aloud through the host's speech command.
//
// Synthesis is best-effort: when the command is missing or fails, the
// answer still reaches the caller and only a warning is logged.
package speech

import (
	"context"
	"log"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// speakTimeout bounds one synthesis run.
const speakTimeout = 30 * time.Second

// For testing: allow overriding the command runner.
var runSpeech = func(ctx context.Context, name string, arg ...string) error {
	return exec.CommandContext(ctx, name, arg...).Run()
}

// DefaultCommand returns the platform's stock text-to-speech command,
// or "" when the platform has none.
func DefaultCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "say"
	case "linux":
		return "espeak"
	default:
		return ""
	}
}

// Speaker runs a text-to-speech command for each spoken text. It starts
// muted; callers opt in with SetEnabled(true).
type Speaker struct {
	mu      sync.Mutex
	enabled bool
	command string
}

// New returns a muted Speaker using the given command. An empty command
// selects the platform default.
func New(command string) *Speaker {
	if command == "" {
		command = DefaultCommand()
	}
	return &Speaker{command: command}
}

// SetEnabled turns speech on or off.
func (s *Speaker) SetEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = on
}

// Enabled reports whether speech is on.
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Speak synthesizes text out loud. It is a no-op when muted, when the
// platform has no speech command, or when text is empty, and it never
// reports failure to the caller.
func (s *Speaker) Speak(text string) {
	s.mu.Lock()
	enabled, command := s.enabled, s.command
	s.mu.Unlock()

	if !enabled || command == "" || text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
	defer cancel()

	if err := runSpeech(ctx, command, text); err != nil {
		log.Printf("WARNING: speech: %s failed: %v", command, err)
	}
}
