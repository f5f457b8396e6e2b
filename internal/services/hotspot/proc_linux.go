//go:build linux

package hotspot

import (
	"os/exec"
	"syscall"
)

// setProcessGroup gives the helper its own process group so the whole
// create_ap tree (hostapd, dnsmasq) can be signaled at once.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
