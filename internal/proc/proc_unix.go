//go:build unix

package proc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// detachSysProcAttr detaches the child into its own session so it
// survives the parent and never receives the parent terminal's signals.
func detachSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setsid: true,
	}
}

// nameRunning scans /proc/<pid>/comm, falling back to ps where /proc is
// not available (macOS and the BSDs).
func nameRunning(name string) bool {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return psNameRunning(name)
	}

	sawProcess := false
	for _, entry := range entries {
		if !isNumeric(entry.Name()) {
			continue
		}
		sawProcess = true

		comm, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "comm"))
		if err != nil {
			// Entries owned by other users may be unreadable
			continue
		}
		if !processNameMatches(strings.TrimSpace(string(comm)), name) {
			continue
		}
		if pid, err := strconv.Atoi(entry.Name()); err == nil && isZombie(pid) {
			continue
		}
		return true
	}

	if !sawProcess {
		return psNameRunning(name)
	}
	return false
}

// psNameRunning asks ps for every process's executable name.
func psNameRunning(name string) bool {
	out, err := exec.Command("ps", "-eo", "comm=").Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		// ps may print full paths; match on the basename
		if processNameMatches(filepath.Base(strings.TrimSpace(line)), name) {
			return true
		}
	}
	return false
}

// processNameMatches compares a process-table name against the wanted
// executable name, tolerating the kernel's 15-byte comm truncation.
func processNameMatches(procName, want string) bool {
	if procName == "" || procName == "." {
		return false
	}
	if strings.EqualFold(procName, want) {
		return true
	}
	return len(procName) == 15 && len(want) > 15 && strings.EqualFold(procName, want[:15])
}

// processIDsByPath returns the pids whose /proc/<pid>/exe resolves to
// target.
func processIDsByPath(target string) []int {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil
	}

	var pids []int
	for _, entry := range entries {
		if !isNumeric(entry.Name()) {
			continue
		}
		link, err := os.Readlink(filepath.Join("/proc", entry.Name(), "exe"))
		if err != nil {
			// Kernel threads and other users' processes are unreadable
			continue
		}
		// The kernel marks unlinked executables
		link = strings.TrimSuffix(link, " (deleted)")
		if link != target {
			continue
		}
		if pid, err := strconv.Atoi(entry.Name()); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids
}

func terminateProcess(pid int) error {
	return syscall.Kill(pid, syscall.SIGTERM)
}

func forceKillProcess(pid int) error {
	return syscall.Kill(pid, syscall.SIGKILL)
}

// processAlive checks existence with signal 0, which probes without
// delivering anything. Children we launched and never reaped linger as
// zombies that still answer the probe, so the state file rules them out.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	if err := syscall.Kill(pid, 0); err != nil {
		return false
	}
	return !isZombie(pid)
}

// isZombie reads the process state from /proc/<pid>/stat. The comm field
// may contain spaces and parentheses, so the state is found after the
// last ')'. An unreadable stat file means the process is gone or not
// inspectable; report not-zombie and let the existence probe decide.
func isZombie(pid int) bool {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return false
	}
	s := string(data)
	idx := strings.LastIndexByte(s, ')')
	if idx < 0 || idx+2 >= len(s) {
		return false
	}
	return s[idx+2] == 'Z'
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
