//go:build windows

package player

import (
	"os"
	"os/exec"
)

func configure(*exec.Cmd) {}

func suspend(*os.Process) error {
	return ErrUnsupported
}

func resume(*os.Process) error {
	return ErrUnsupported
}

// Windows has no graceful termination signal for console processes.
func terminate(p *os.Process) error {
	return p.Kill()
}

func kill(p *os.Process) error {
	return p.Kill()
}
