package speech

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

// recordRunner swaps runSpeech for one that records invocations, and
// restores the original when the test ends.
func recordRunner(t *testing.T, runErr error) *[]string {
	t.Helper()

	var calls []string
	orig := runSpeech
	runSpeech = func(ctx context.Context, name string, arg ...string) error {
		call := name
		for _, a := range arg {
			call += " " + a
		}
		calls = append(calls, call)
		return runErr
	}
	t.Cleanup(func() { runSpeech = orig })
	return &calls
}

func TestSpeak_MutedByDefault(t *testing.T) {
	calls := recordRunner(t, nil)

	s := New("say")
	s.Speak("hello")

	if len(*calls) != 0 {
		t.Errorf("runSpeech called %d times while muted, want 0", len(*calls))
	}
}

func TestSpeak_RunsCommandWhenEnabled(t *testing.T) {
	calls := recordRunner(t, nil)

	s := New("say")
	s.SetEnabled(true)
	s.Speak("hello world")

	if len(*calls) != 1 {
		t.Fatalf("runSpeech called %d times, want 1", len(*calls))
	}
	if want := "say hello world"; (*calls)[0] != want {
		t.Errorf("call = %q, want %q", (*calls)[0], want)
	}
}

func TestSpeak_EmptyTextIsNoOp(t *testing.T) {
	calls := recordRunner(t, nil)

	s := New("say")
	s.SetEnabled(true)
	s.Speak("")

	if len(*calls) != 0 {
		t.Errorf("runSpeech called %d times for empty text, want 0", len(*calls))
	}
}

func TestSpeak_NoCommandIsNoOp(t *testing.T) {
	calls := recordRunner(t, nil)

	s := &Speaker{enabled: true}
	s.Speak("hello")

	if len(*calls) != 0 {
		t.Errorf("runSpeech called %d times without a command, want 0", len(*calls))
	}
}

func TestSpeak_CommandFailureIsSwallowed(t *testing.T) {
	recordRunner(t, errors.New("no audio device"))

	s := New("say")
	s.SetEnabled(true)
	s.Speak("hello")
}

func TestSetEnabled_Toggles(t *testing.T) {
	s := New("say")

	if s.Enabled() {
		t.Error("Enabled = true for a fresh Speaker, want false")
	}
	s.SetEnabled(true)
	if !s.Enabled() {
		t.Error("Enabled = false after SetEnabled(true)")
	}
	s.SetEnabled(false)
	if s.Enabled() {
		t.Error("Enabled = true after SetEnabled(false)")
	}
}

func TestNew_EmptyCommandUsesPlatformDefault(t *testing.T) {
	s := New("")
	if s.command != DefaultCommand() {
		t.Errorf("command = %q, want %q", s.command, DefaultCommand())
	}
}

func TestDefaultCommand(t *testing.T) {
	got := DefaultCommand()
	switch runtime.GOOS {
	case "darwin":
		if got != "say" {
			t.Errorf("DefaultCommand = %q on darwin, want %q", got, "say")
		}
	case "linux":
		if got != "espeak" {
			t.Errorf("DefaultCommand = %q on linux, want %q", got, "espeak")
		}
	default:
		if got != "" {
			t.Errorf("DefaultCommand = %q on %s, want empty", got, runtime.GOOS)
		}
	}
}
