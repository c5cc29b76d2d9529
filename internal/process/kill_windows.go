//go:build windows

// Package process terminates the headless browser and its helper processes.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its child tree with taskkill.
// Non-positive pids are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort: launcher.Kill still runs afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
