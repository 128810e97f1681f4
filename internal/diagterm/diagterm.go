// Package diagterm decides whether cmd/tarac should wrap a rendered
// diagnostic line in ANSI color, gating on isatty plus the NO_COLOR
// convention. This is the one formatting decision the CLI is allowed
// to make on top of the core's structured diagnostics (spec §1 scopes
// diagnostic rendering itself out of the core).
package diagterm

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Enabled reports whether color output should be used for fd (usually
// os.Stderr.Fd()): disabled when NO_COLOR is set, and disabled when fd
// is not a terminal (including a Cygwin pty).
func Enabled(fd uintptr) bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const (
	red    = "\033[31m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

// Red wraps s in the error color if enabled is true, else returns s
// unchanged.
func Red(s string, enabled bool) string {
	if !enabled {
		return s
	}
	return red + s + reset
}

// Yellow wraps s in the warning color if enabled is true, else returns
// s unchanged.
func Yellow(s string, enabled bool) string {
	if !enabled {
		return s
	}
	return yellow + s + reset
}
