package logger

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// resetCrashContext points crash reports at an in-memory filesystem.
func resetCrashContext(t *testing.T, basePath string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	current = &crashContext{fs: fs, basePath: basePath}
	t.Cleanup(func() { current = &crashContext{fs: afero.NewOsFs()} })
	return fs
}

func TestCrashContext_Setters(t *testing.T) {
	resetCrashContext(t, "")

	SetBasePath("/tmp/taskpilot-test")
	SetVersion("1.0.0-test")
	SetCommand("serve")
	SetLastDescription("  fix checkout button  ")
	SetLastPrompt("prompt text")

	current.mu.RLock()
	defer current.mu.RUnlock()

	if current.basePath != "/tmp/taskpilot-test" {
		t.Errorf("basePath = %q", current.basePath)
	}
	if current.version != "1.0.0-test" {
		t.Errorf("version = %q", current.version)
	}
	if current.command != "serve" {
		t.Errorf("command = %q", current.command)
	}
	if current.description != "fix checkout button" {
		t.Errorf("description = %q, want trimmed", current.description)
	}
	if current.prompt != "prompt text" {
		t.Errorf("prompt = %q", current.prompt)
	}
}

func TestSetLastPrompt_Truncates(t *testing.T) {
	resetCrashContext(t, "")

	SetLastPrompt(strings.Repeat("a", 3000))

	current.mu.RLock()
	defer current.mu.RUnlock()
	if len(current.prompt) > maxPromptLen+20 {
		t.Errorf("prompt length = %d, want truncated", len(current.prompt))
	}
	if !strings.HasSuffix(current.prompt, "[truncated]") {
		t.Error("truncated prompt should end with [truncated]")
	}
}

func TestNewCrashReport(t *testing.T) {
	resetCrashContext(t, "")
	SetVersion("1.0.0")
	SetCommand("suggest")
	SetLastDescription("user input")

	report := newCrashReport(errors.New("boom"), "stack")

	if report.PanicValue != "boom" {
		t.Errorf("PanicValue = %q", report.PanicValue)
	}
	if report.Version != "1.0.0" || report.Command != "suggest" {
		t.Errorf("version/command = %q/%q", report.Version, report.Command)
	}
	if report.Description != "user input" {
		t.Errorf("Description = %q", report.Description)
	}
	if report.GoVersion == "" || report.OS == "" {
		t.Error("runtime fields should be populated")
	}
}

func TestFormatCrashReport(t *testing.T) {
	report := CrashReport{
		Timestamp:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Version:     "1.0.0",
		Command:     "serve",
		PanicValue:  "test panic",
		StackTrace:  "goroutine 1 [running]:\nmain.main()",
		Description: "landing page banner",
		GoVersion:   "go1.24.6",
		OS:          "linux",
		Arch:        "amd64",
	}

	formatted := formatCrashReport(report)

	for _, want := range []string{
		"TASKPILOT CRASH LOG",
		"Timestamp: 2025-01-01T12:00:00Z",
		"Command:   serve",
		"OS/Arch:   linux/amd64",
		"PANIC VALUE",
		"goroutine 1 [running]",
		"LAST TASK DESCRIPTION",
		"landing page banner",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("formatted report missing %q", want)
		}
	}
	if strings.Contains(formatted, "LAST AI PROMPT") {
		t.Error("empty prompt section should be omitted")
	}
}

func TestRecordPanic_WritesReport(t *testing.T) {
	resetCrashContext(t, "/data/.taskpilot")
	SetLastPrompt("Eres un product manager")

	path, err := RecordPanic("handler exploded")
	if err != nil {
		t.Fatalf("RecordPanic() error = %v", err)
	}
	if filepath.Dir(path) != filepath.Join("/data/.taskpilot", CrashLogDir) {
		t.Errorf("path = %q", path)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 crash log, got %d", len(logs))
	}

	content, err := ReadCrashLog(logs[0])
	if err != nil {
		t.Fatalf("ReadCrashLog() error = %v", err)
	}
	if !strings.Contains(content, "handler exploded") || !strings.Contains(content, "Eres un product manager") {
		t.Errorf("crash log missing panic value or prompt:\n%s", content)
	}
}

func TestPruneCrashLogs(t *testing.T) {
	fs := resetCrashContext(t, "/base")
	dir := filepath.Join("/base", CrashLogDir)

	for i := 0; i < MaxCrashLogs+5; i++ {
		name := filepath.Join(dir, fmt.Sprintf("crash_20250101_1200%02d.log", i))
		if err := afero.WriteFile(fs, name, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := pruneCrashLogs(fs, dir, MaxCrashLogs); err != nil {
		t.Fatalf("pruneCrashLogs() error = %v", err)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs() error = %v", err)
	}
	if len(logs) != MaxCrashLogs {
		t.Fatalf("expected %d logs, got %d", MaxCrashLogs, len(logs))
	}
	if filepath.Base(logs[0]) != "crash_20250101_120005.log" {
		t.Errorf("oldest remaining = %q, want the five oldest removed", filepath.Base(logs[0]))
	}
	if ok, _ := afero.Exists(fs, filepath.Join(dir, "notes.txt")); !ok {
		t.Error("non crash files must be left alone")
	}
}

func TestCrashLogPath(t *testing.T) {
	resetCrashContext(t, "/tmp/test")

	got := crashLogPath(time.Date(2025, 1, 15, 14, 30, 45, 0, time.UTC))
	want := filepath.Join("/tmp/test", "crash_logs", "crash_20250115_143045.log")
	if got != want {
		t.Errorf("crashLogPath() = %q, want %q", got, want)
	}
}

func TestCrashLogDir_Default(t *testing.T) {
	resetCrashContext(t, "")

	if got, want := crashLogDir(), filepath.Join(".taskpilot", "crash_logs"); got != want {
		t.Errorf("crashLogDir() = %q, want %q", got, want)
	}
}
