package notify

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
)

// Runner starts an external command without waiting for it.
type Runner func(name string, args ...string) error

// StartCommand is the default Runner. The child is reaped in the
// background once it exits.
func StartCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// DesktopChannel raises a desktop notification through notify-send on
// Linux or osascript on macOS.
type DesktopChannel struct {
	enabled bool
	goos    string
	run     Runner
}

// NewDesktopChannel creates a DesktopChannel for the current platform.
func NewDesktopChannel(enabled bool) *DesktopChannel {
	return &DesktopChannel{enabled: enabled, goos: runtime.GOOS, run: StartCommand}
}

func (d *DesktopChannel) Name() string { return "desktop" }

func (d *DesktopChannel) IsEnabled() bool { return d.enabled }

func (d *DesktopChannel) Send(_ context.Context, n Notification) error {
	switch d.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", n.Message, n.Title)
		return d.run("osascript", "-e", script)
	case "linux", "freebsd", "openbsd":
		return d.run("notify-send", "--app-name=trading-journal", n.Title, n.Message)
	default:
		return fmt.Errorf("desktop notifications unsupported on %s", d.goos)
	}
}

// SoundChannel plays the notification sound with a configured player
// command. "{sound}" in the command is replaced by the sound URL; without
// it the URL is appended as the last argument.
type SoundChannel struct {
	command []string
	run     Runner
}

// NewSoundChannel creates a SoundChannel. An empty command disables it.
func NewSoundChannel(command string) *SoundChannel {
	return &SoundChannel{command: strings.Fields(command), run: StartCommand}
}

func (s *SoundChannel) Name() string { return "sound" }

func (s *SoundChannel) IsEnabled() bool { return len(s.command) > 0 }

func (s *SoundChannel) Send(_ context.Context, n Notification) error {
	if n.Sound == "" || len(s.command) == 0 {
		return nil
	}
	args := make([]string, 0, len(s.command))
	substituted := false
	for _, arg := range s.command[1:] {
		if strings.Contains(arg, "{sound}") {
			arg = strings.ReplaceAll(arg, "{sound}", n.Sound)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, n.Sound)
	}
	return s.run(s.command[0], args...)
}

// BellChannel rings the terminal bell for notifications carrying a sound.
type BellChannel struct {
	w io.Writer
}

// NewBellChannel creates a BellChannel writing to w.
func NewBellChannel(w io.Writer) *BellChannel {
	return &BellChannel{w: w}
}

func (b *BellChannel) Name() string { return "bell" }

func (b *BellChannel) IsEnabled() bool { return b.w != nil }

func (b *BellChannel) Send(_ context.Context, n Notification) error {
	if n.Sound == "" {
		return nil
	}
	_, err := io.WriteString(b.w, "\a")
	return err
}
