//go:build !windows

package cmdutil

import "os/exec"

// HideWindow is a no-op outside Windows.
func HideWindow(_ *exec.Cmd) {}
