package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/FocuswithJustin/Lectern/core/passage"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	if err := fn(); err != nil {
		w.Close()
		t.Fatalf("command failed: %v", err)
	}
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	return string(out)
}

func TestResolveCmd_Run(t *testing.T) {
	cmd := &ResolveCmd{Text: []string{"John", "3:16"}}
	out := captureStdout(t, cmd.Run)
	if strings.TrimSpace(out) != "John 3:16" {
		t.Errorf("output = %q, want John 3:16", out)
	}
}

func TestResolveCmd_RunJSON(t *testing.T) {
	cmd := &ResolveCmd{Text: []string{"Luke", "611"}, JSON: true}
	out := captureStdout(t, cmd.Run)

	var passages []passage.Passage
	if err := json.Unmarshal([]byte(out), &passages); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(passages) != 1 || passages[0].Reference() != "Luke 6:11" {
		t.Errorf("passages = %v, want Luke 6:11", passages)
	}
}

func TestResolveCmd_RunNoMatch(t *testing.T) {
	cmd := &ResolveCmd{Text: []string{"hello", "there"}}
	out := captureStdout(t, cmd.Run)
	if out != "" {
		t.Errorf("stdout = %q, want empty on no match", out)
	}
}

func TestBooksCmd_Run(t *testing.T) {
	cmd := &BooksCmd{}
	out := captureStdout(t, cmd.Run)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 66 {
		t.Errorf("got %d lines, want 66", len(lines))
	}
	if !strings.Contains(out, "Genesis") || !strings.Contains(out, "Revelation") {
		t.Error("listing missing expected books")
	}
}

func TestVersionCmd_Run(t *testing.T) {
	cmd := &VersionCmd{}
	out := captureStdout(t, cmd.Run)
	if !strings.Contains(out, version) {
		t.Errorf("output = %q, want version %s", out, version)
	}
}
