package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "stickynote.log")
	l, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.WithComponent("test").Infow("hello", "n", 1)
	l.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"hello"`) || !strings.Contains(s, `"component":"test"`) {
		t.Fatalf("unexpected log content: %s", s)
	}
}

func TestNew_RejectsBadLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	l := OrNop(nil)
	if l == nil || l.SugaredLogger == nil {
		t.Fatalf("expected usable logger")
	}
	l.Warnw("discarded")
}
