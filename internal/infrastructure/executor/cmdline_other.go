//go:build !windows

package executor

import "os/exec"

func setRawCommandLine(*exec.Cmd, string) {}
