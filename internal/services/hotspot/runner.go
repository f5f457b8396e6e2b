package hotspot

import (
	"bufio"
	"os"
	"os/exec"
)

// ExitStatus is the terminal result of a helper process.
type ExitStatus struct {
	Code int // exit code, -1 when killed by signal or unknown
	Err  error
}

// Handle is a started helper process.
type Handle interface {
	PID() int
	// Output streams combined stdout and stderr line by line. Closed
	// once the helper and its children release the pipe.
	Output() <-chan string
	// Wait delivers the exit status exactly once.
	Wait() <-chan ExitStatus
	// Kill terminates the helper's whole process group.
	Kill() error
}

// Runner spawns helper processes. Replaced in tests.
type Runner interface {
	Start(name string, args ...string) (Handle, error)
}

type execRunner struct{}

type execHandle struct {
	cmd    *exec.Cmd
	output chan string
	done   chan ExitStatus
}

// Start launches the helper in its own process group with stdout and
// stderr merged into one line stream. The helper's lifetime is not tied
// to any context; teardown goes through Kill.
func (r *execRunner) Start(name string, args ...string) (Handle, error) {
	cmd := exec.Command(name, args...)
	setProcessGroup(cmd)

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	// The child holds its own copy of the write end
	pw.Close()

	h := &execHandle{
		cmd:    cmd,
		output: make(chan string, 64),
		done:   make(chan ExitStatus, 1),
	}

	go func() {
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			h.output <- scanner.Text()
		}
		pr.Close()
		close(h.output)
	}()

	go func() {
		waitErr := cmd.Wait()
		code := -1
		if cmd.ProcessState != nil {
			code = cmd.ProcessState.ExitCode()
		}
		h.done <- ExitStatus{Code: code, Err: waitErr}
	}()

	return h, nil
}

func (h *execHandle) PID() int {
	return h.cmd.Process.Pid
}

func (h *execHandle) Output() <-chan string {
	return h.output
}

func (h *execHandle) Wait() <-chan ExitStatus {
	return h.done
}

func (h *execHandle) Kill() error {
	return killProcessGroup(h.cmd.Process.Pid)
}
