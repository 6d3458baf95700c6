//go:build !windows

package player

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configure puts the player in its own process group. Terminal-generated
// signals then reach only fmcli, and signals sent here reach any helper
// process the player spawned.
func configure(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func suspend(p *os.Process) error {
	return signalGroup(p, syscall.SIGSTOP)
}

func resume(p *os.Process) error {
	return signalGroup(p, syscall.SIGCONT)
}

func terminate(p *os.Process) error {
	return signalGroup(p, syscall.SIGTERM)
}

func kill(p *os.Process) error {
	return signalGroup(p, syscall.SIGKILL)
}

func signalGroup(p *os.Process, sig syscall.Signal) error {
	err := syscall.Kill(-p.Pid, sig)
	if errors.Is(err, syscall.ESRCH) {
		return p.Signal(sig)
	}
	return err
}
