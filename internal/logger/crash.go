// Package logger provides crash logging and panic recovery for pmagent.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxCrashLogs is the number of crash reports kept in the crash directory.
const maxCrashLogs = 10

// crashContext stores the invocation details included in crash reports.
type crashContext struct {
	mu      sync.RWMutex
	runID   string
	command string
	version string
	dir     string
}

var globalContext = &crashContext{runID: uuid.NewString()}

// SetCrashDir sets the directory crash reports are written to.
func SetCrashDir(dir string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.dir = dir
}

// SetVersion records the application version for crash reports.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand records the command line being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// RunID returns the identifier for this invocation. Crash reports carry it
// so a report can be matched to a user's session.
func RunID() string {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	return globalContext.runID
}

// CrashReport is the JSON document written when a panic is recovered.
type CrashReport struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic recovers from a panic, writes a crash report, and exits
// non-zero. Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	report := newCrashReport(r)
	path, err := writeCrashReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\npmagent: failed to write crash report: %v\n", err)
		fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, report.StackTrace)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\npmagent encountered an unexpected error.\n")
	fmt.Fprintf(os.Stderr, "A crash report was saved to %s (run %s).\n", path, report.RunID)
	os.Exit(1)
}

func newCrashReport(panicValue any) CrashReport {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashReport{
		RunID:      globalContext.runID,
		Timestamp:  time.Now().UTC(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func writeCrashReport(report CrashReport) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}
	if err := pruneCrashReports(dir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to prune old crash reports: %v\n", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal crash report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("crash_%s.json", report.Timestamp.Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write crash report: %w", err)
	}
	return path, nil
}

func crashDir() string {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	if globalContext.dir == "" {
		return "crash_logs"
	}
	return globalContext.dir
}

// pruneCrashReports drops the oldest reports past the retention cap.
// os.ReadDir returns entries sorted by name, and the name embeds the
// timestamp, so the first entries are the oldest.
func pruneCrashReports(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var reports []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".json") {
			reports = append(reports, e)
		}
	}
	if len(reports) < maxCrashLogs {
		return nil
	}

	for _, e := range reports[:len(reports)-maxCrashLogs+1] {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove old crash report %s: %w", e.Name(), err)
		}
	}
	return nil
}
