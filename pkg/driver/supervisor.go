package driver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/deskpilot/deskpilot/internal/logger"
	"github.com/deskpilot/deskpilot/pkg/cmdutil"
	"github.com/deskpilot/deskpilot/pkg/config"
)

// stopTimeout bounds the graceful wait during Stop. Exceeding it is
// logged and treated as good-enough cleanup, not a failure.
const stopTimeout = 5 * time.Second

// Supervisor manages the external driver executable's lifetime,
// independent of the protocol session. It owns at most one child
// process.
type Supervisor struct {
	cfg config.Driver
	cmd *exec.Cmd
	log *log.Logger
}

// NewSupervisor creates a supervisor for the configured driver.
func NewSupervisor(cfg config.Driver) *Supervisor {
	return &Supervisor{
		cfg: cfg,
		log: logger.Component("supervisor"),
	}
}

// Start launches the driver executable and waits for its HTTP listener
// to come up. A missing executable returns ErrDriverNotInstalled; the
// caller degrades to coordinate-only mode rather than failing the run.
// Calling Start with a live child already running is a no-op.
func (s *Supervisor) Start(ctx context.Context) error {
	if s.Running() {
		return nil
	}

	if _, err := os.Stat(s.cfg.Path); err != nil {
		s.log.Warn("driver executable not found, continuing without it", "path", s.cfg.Path)
		return fmt.Errorf("%w: %s", ErrDriverNotInstalled, s.cfg.Path)
	}

	cmd := exec.Command(s.cfg.Path)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmdutil.HideWindow(cmd)

	if err := cmd.Start(); err != nil {
		return &ProcessError{Path: s.cfg.Path, Err: err}
	}
	s.cmd = cmd
	s.log.Info("driver process started", "pid", cmd.Process.Pid, "port", s.cfg.Port)

	// The HTTP listener is not ready the moment the process spawns.
	// Poll with backoff instead of a fixed sleep, bounded by the
	// configured timeout.
	if err := s.waitReady(ctx); err != nil {
		s.log.Warn("driver did not become ready", "err", err)
		return &ProcessError{Path: s.cfg.Path, Err: err}
	}
	return nil
}

// waitReady polls the driver's status endpoint until it answers.
func (s *Supervisor) waitReady(ctx context.Context) error {
	probe := &http.Client{Timeout: time.Second}
	url := fmt.Sprintf("http://127.0.0.1:%d/status", s.cfg.Port)

	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		resp, err := probe.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return struct{}{}, nil
		}
		return struct{}{}, fmt.Errorf("driver status endpoint returned %d", resp.StatusCode)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(s.cfg.Timeout.Std()))
	return err
}

// Stop terminates the driver process gracefully, waiting up to
// stopTimeout before force-killing. It never returns an error for a
// process that already exited, and is safe to call repeatedly.
func (s *Supervisor) Stop() error {
	cmd := s.cmd
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	pid := cmd.Process.Pid
	if proc, err := process.NewProcess(int32(pid)); err == nil {
		if err := proc.Terminate(); err != nil {
			s.log.Debug("terminate failed, killing", "pid", pid, "err", err)
			_ = cmd.Process.Kill()
		}
	} else {
		// Process already gone.
		s.cmd = nil
		return nil
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("driver process stopped", "pid", pid)
	case <-time.After(stopTimeout):
		s.log.Warn("driver process did not exit in time, killing", "pid", pid)
		_ = cmd.Process.Kill()
		// Kill guarantees Wait returns; drain it so the child is reaped.
		<-done
	}

	s.cmd = nil
	return nil
}

// Running reports whether the supervised process is alive.
func (s *Supervisor) Running() bool {
	if s.cmd == nil || s.cmd.Process == nil {
		return false
	}
	proc, err := process.NewProcess(int32(s.cmd.Process.Pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	return err == nil && running
}

// PID returns the supervised process id, or 0 when not running.
func (s *Supervisor) PID() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}
