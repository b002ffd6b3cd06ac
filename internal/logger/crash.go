// Package logger configures structured logging and records crash reports
// with the last task description and AI prompt that were in flight.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	// CrashLogDir is the directory for crash reports, relative to the base path.
	CrashLogDir = "crash_logs"

	// DefaultBasePath is used when SetBasePath was never called.
	DefaultBasePath = ".taskpilot"

	// MaxCrashLogs is the number of reports kept on disk.
	MaxCrashLogs = 10

	maxDescriptionLen = 500
	maxPromptLen      = 2000
)

// crashContext stores what was in flight when a panic happened.
type crashContext struct {
	mu          sync.RWMutex
	fs          afero.Fs
	basePath    string
	version     string
	command     string
	description string
	prompt      string
}

var current = &crashContext{fs: afero.NewOsFs()}

// SetFs swaps the filesystem crash reports are written to.
func SetFs(fs afero.Fs) {
	current.mu.Lock()
	defer current.mu.Unlock()
	current.fs = fs
}

// SetBasePath sets the directory that holds crash_logs/.
func SetBasePath(path string) {
	current.mu.Lock()
	defer current.mu.Unlock()
	current.basePath = path
}

// SetVersion records the binary version.
func SetVersion(version string) {
	current.mu.Lock()
	defer current.mu.Unlock()
	current.version = version
}

// SetCommand records the running subcommand (serve, suggest, mcp, ...).
func SetCommand(cmd string) {
	current.mu.Lock()
	defer current.mu.Unlock()
	current.command = cmd
}

// SetLastDescription records the task description being processed.
func SetLastDescription(desc string) {
	current.mu.Lock()
	defer current.mu.Unlock()
	current.description = truncate(strings.TrimSpace(desc), maxDescriptionLen)
}

// SetLastPrompt records the last prompt sent to the AI service.
func SetLastPrompt(prompt string) {
	current.mu.Lock()
	defer current.mu.Unlock()
	current.prompt = truncate(prompt, maxPromptLen)
}

func truncate(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashReport is one recovered panic.
type CrashReport struct {
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	Command     string    `json:"command"`
	PanicValue  string    `json:"panic_value"`
	StackTrace  string    `json:"stack_trace"`
	Description string    `json:"description,omitempty"`
	Prompt      string    `json:"prompt,omitempty"`
	GoVersion   string    `json:"go_version"`
	OS          string    `json:"os"`
	Arch        string    `json:"arch"`
}

// RecordPanic writes a crash report for panicValue and returns its path.
// It does not exit; the HTTP recovery middleware uses it directly.
func RecordPanic(panicValue any) (string, error) {
	report := newCrashReport(panicValue, string(debug.Stack()))
	return writeCrashReport(report)
}

// HandlePanic recovers a panic in the CLI, writes a report and exits 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	path, err := RecordPanic(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] panic: %v\n%s\n", r, debug.Stack())
		os.Exit(1)
	}
	printCrashNotice(os.Stderr, path)
	os.Exit(1)
}

func printCrashNotice(w io.Writer, path string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "taskpilot encountered an unexpected error.")
	fmt.Fprintf(w, "A crash log has been saved to:\n  %s\n\n", path)
	fmt.Fprintln(w, "Attach it when reporting the problem; it contains the last task description and prompt.")
}

func newCrashReport(panicValue any, stack string) CrashReport {
	current.mu.RLock()
	defer current.mu.RUnlock()

	return CrashReport{
		Timestamp:   time.Now(),
		Version:     current.version,
		Command:     current.command,
		PanicValue:  fmt.Sprintf("%v", panicValue),
		StackTrace:  stack,
		Description: current.description,
		Prompt:      current.prompt,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
}

func writeCrashReport(report CrashReport) (string, error) {
	fs := crashFs()
	dir := crashLogDir()

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}
	if err := pruneCrashLogs(fs, dir, MaxCrashLogs-1); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] failed to prune crash logs: %v\n", err)
	}

	path := crashLogPath(report.Timestamp)
	if err := afero.WriteFile(fs, path, []byte(formatCrashReport(report)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func crashFs() afero.Fs {
	current.mu.RLock()
	defer current.mu.RUnlock()
	return current.fs
}

func crashLogDir() string {
	current.mu.RLock()
	base := current.basePath
	current.mu.RUnlock()

	if base == "" {
		base = DefaultBasePath
	}
	return filepath.Join(base, CrashLogDir)
}

func crashLogPath(t time.Time) string {
	return filepath.Join(crashLogDir(), fmt.Sprintf("crash_%s.log", t.Format("20060102_150405")))
}

func formatCrashReport(r CrashReport) string {
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	var sb strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&sb, "\n%s\n%s\n%s\n%s\n", thin, title, thin, strings.TrimRight(body, "\n"))
	}

	fmt.Fprintf(&sb, "%s\nTASKPILOT CRASH LOG\n%s\n\n", rule, rule)
	fmt.Fprintf(&sb, "Timestamp: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", r.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", r.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", r.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", r.OS, r.Arch)

	section("PANIC VALUE", r.PanicValue)
	section("STACK TRACE", r.StackTrace)
	if r.Description != "" {
		section("LAST TASK DESCRIPTION", r.Description)
	}
	if r.Prompt != "" {
		section("LAST AI PROMPT", r.Prompt)
	}

	fmt.Fprintf(&sb, "\n%s\nEND OF CRASH LOG\n%s\n", rule, rule)
	return sb.String()
}

// pruneCrashLogs deletes the oldest reports so at most keep remain.
func pruneCrashLogs(fs afero.Fs, dir string, keep int) error {
	names, err := crashLogNames(fs, dir)
	if err != nil {
		return err
	}
	for i := 0; i < len(names)-keep; i++ {
		if err := fs.Remove(filepath.Join(dir, names[i])); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", names[i], err)
		}
	}
	return nil
}

func crashLogNames(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	// timestamped names sort chronologically
	sort.Strings(names)
	return names, nil
}

// ListCrashLogs returns the paths of stored crash reports, oldest first.
func ListCrashLogs() ([]string, error) {
	dir := crashLogDir()
	names, err := crashLogNames(crashFs(), dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// ReadCrashLog returns the content of one crash report.
func ReadCrashLog(path string) (string, error) {
	content, err := afero.ReadFile(crashFs(), path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
