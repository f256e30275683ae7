package cmdutil

import (
	"os/exec"
	"syscall"
)

// HideWindow keeps the spawned process from opening a console window.
func HideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow: true,
	}
}
