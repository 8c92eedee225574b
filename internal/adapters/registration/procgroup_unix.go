//go:build unix

package registration

import (
	"os/exec"
	"syscall"
)

// killGroupOnCancel starts the child in its own process group and kills the group on cancel
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		// negative pid targets the group, so sudo and its children go too
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
