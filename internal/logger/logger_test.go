package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTruncateLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}

	truncateLogFile(path, 5)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if lines[0] != "line 15" || lines[4] != "line 19" {
		t.Errorf("kept lines = %q, want line 15..line 19", lines)
	}
}

func TestTruncateLogFileShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.log")
	os.WriteFile(path, []byte("a\nb\n"), 0644)

	truncateLogFile(path, 5)

	data, _ := os.ReadFile(path)
	if string(data) != "a\nb\n" {
		t.Errorf("short file changed: %q", data)
	}
}

func TestDebugGate(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetDebug(false)

	SetDebug(false)
	Debug("hidden %d", 1)
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug line written while debug disabled: %q", buf.String())
	}

	SetDebug(true)
	Debug("shown %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}

func TestInitWritesFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Warn("something %s", "odd")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[WARN] something odd") {
		t.Errorf("log file missing warn line: %q", data)
	}
}
