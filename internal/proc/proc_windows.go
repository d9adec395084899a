//go:build windows

package proc

import (
	"encoding/csv"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
)

// DETACHED_PROCESS creates a process without a console, so it runs
// independently of the parent's console lifetime.
const DETACHED_PROCESS = 0x00000008

// CREATE_NO_WINDOW suppresses the console window a console application
// would otherwise open.
const CREATE_NO_WINDOW = 0x08000000

// detachSysProcAttr detaches the child from the parent's console and
// process group.
func detachSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | DETACHED_PROCESS | CREATE_NO_WINDOW,
	}
}

// nameRunning parses tasklist CSV output. Image names carry an .exe
// suffix, so a bare name is normalized before matching.
func nameRunning(name string) bool {
	want := name
	if !strings.HasSuffix(strings.ToLower(want), ".exe") {
		want += ".exe"
	}

	out, err := exec.Command("tasklist", "/fo", "csv", "/nh").Output()
	if err != nil {
		return false
	}

	reader := csv.NewReader(strings.NewReader(string(out)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return false
	}
	for _, record := range records {
		if len(record) > 0 && strings.EqualFold(record[0], want) {
			return true
		}
	}
	return false
}

// processIDsByPath asks wmic for executable paths. The CSV output lines
// are Node,ExecutablePath,ProcessId; the header and processes without a
// readable path fall out of the numeric parse.
func processIDsByPath(target string) []int {
	out, err := exec.Command("wmic", "process", "get", "ProcessId,ExecutablePath", "/format:csv").Output()
	if err != nil {
		return nil
	}

	var pids []int
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) < 3 {
			continue
		}
		exe := strings.TrimSpace(fields[1])
		if exe == "" || !strings.EqualFold(exe, target) {
			continue
		}
		if pid, err := strconv.Atoi(strings.TrimSpace(fields[2])); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids
}

func terminateProcess(pid int) error {
	return exec.Command("taskkill", "/pid", strconv.Itoa(pid)).Run()
}

func forceKillProcess(pid int) error {
	return exec.Command("taskkill", "/f", "/pid", strconv.Itoa(pid)).Run()
}

// processAlive probes via os.FindProcess, which opens a handle on
// Windows and fails for missing pids.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = proc.Release()
	return true
}
