//go:build windows

package executor

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps cmd.exe from flashing a console window.
const createNoWindow = 0x08000000

func setRawCommandLine(cmd *exec.Cmd, line string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       line,
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
