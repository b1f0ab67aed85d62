// Package notify emits desktop notifications for due tasks and decides,
// idempotently, which notifications to emit.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Permission mirrors the host notification facility's states.
type Permission string

const (
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnsupported Permission = "unsupported"
)

// Notifier is the host notification facility. Show returns false when
// the host suppresses or fails the notification; callers must not mark
// the event delivered in that case.
type Notifier interface {
	Show(title, body string) bool
}

// Desktop sends notifications through the platform notifier command:
// osascript on macOS, notify-send elsewhere.
type Desktop struct{}

func (Desktop) command() (string, func(title, body string) *exec.Cmd) {
	if runtime.GOOS == "darwin" {
		return "osascript", func(title, body string) *exec.Cmd {
			script := fmt.Sprintf(`display notification %q with title %q`,
				escapeAppleScript(body), escapeAppleScript(title))
			return exec.Command("osascript", "-e", script)
		}
	}
	return "notify-send", func(title, body string) *exec.Cmd {
		return exec.Command("notify-send", "--app-name=agenda", title, body)
	}
}

// CurrentPermission reports whether the platform notifier command is
// available at all.
func (d Desktop) CurrentPermission() Permission {
	name, _ := d.command()
	if _, err := exec.LookPath(name); err != nil {
		return PermissionUnsupported
	}
	return PermissionGranted
}

// RequestPermission is a no-op probe for command-line notifiers; there
// is nothing to prompt for.
func (d Desktop) RequestPermission() Permission {
	return d.CurrentPermission()
}

func (d Desktop) Show(title, body string) bool {
	_, build := d.command()
	if err := build(title, body).Run(); err != nil {
		return false
	}
	return true
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
