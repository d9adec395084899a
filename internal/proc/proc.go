// Package proc launches and terminates the operating system processes a
// profile runs.
//
// Launched processes are fully detached: no inherited stdio, their own
// session or process group, released immediately. The parent can exit
// without taking them down, and a later invocation finds them again only
// through the process table, by executable name or resolved path.
package proc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// LaunchDetached starts argv[0] with the remaining arguments as a fully
// detached process and returns its pid. dir sets the working directory;
// empty means inherit.
func LaunchDetached(argv []string, dir string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir

	// Discard all stdio; the child must not hold our terminal open
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachSysProcAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start detached process: %w", err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("failed to release detached process: %w", err)
	}
	return pid, nil
}

// NameRunning reports whether any live process in the OS process table
// runs under the given executable name. Matching is case-insensitive and
// normalizes the platform's executable suffix.
func NameRunning(name string) bool {
	if name == "" {
		return false
	}
	return nameRunning(name)
}

// KillByPath terminates every process whose resolved executable equals
// path. Each match first gets the polite termination signal; survivors
// are force-killed once grace elapses. Returns how many processes were
// signaled.
func KillByPath(path string, grace time.Duration) (int, error) {
	target, err := canonicalPath(path)
	if err != nil {
		return 0, err
	}

	pids := processIDsByPath(target)
	if len(pids) == 0 {
		return 0, nil
	}

	terminated := 0
	for _, pid := range pids {
		if err := terminateProcess(pid); err == nil {
			terminated++
		}
	}

	waitForExit(pids, grace)

	for _, pid := range pids {
		if processAlive(pid) {
			_ = forceKillProcess(pid)
		}
	}
	return terminated, nil
}

// waitForExit polls until every pid is gone or the grace period elapses.
func waitForExit(pids []int, grace time.Duration) {
	if grace <= 0 {
		return
	}

	deadline := time.After(grace)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			anyAlive := false
			for _, pid := range pids {
				if processAlive(pid) {
					anyAlive = true
					break
				}
			}
			if !anyAlive {
				return
			}
		}
	}
}

// canonicalPath expands and resolves path so comparisons hold across
// symlinks and home-relative spellings.
func canonicalPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	// The executable may be gone already; match on the absolute spelling.
	return abs, nil
}
