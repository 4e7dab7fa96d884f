package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestAnsiToHTML(t *testing.T) {
	in := "\033[32minfo\033[0m [pack] <done>"
	got := ansiToHTML(in)
	want := `<pre><span style="color: green;">info</span> [pack] &lt;done&gt;</pre>`
	if got != want {
		t.Fatalf("ansiToHTML() = %q, want %q", got, want)
	}
}

func TestAnsiToHTMLUnclosed(t *testing.T) {
	got := ansiToHTML("\033[31merror")
	if !strings.HasSuffix(got, "</span></pre>") {
		t.Fatalf("open span not closed: %q", got)
	}
}

func TestCaptureAndConsole(t *testing.T) {
	var console bytes.Buffer
	log := New(WithConsole(&console))
	log.Info("[pack] finished", zap.Int("cells", 16))
	log.Warn("[holes] short", zap.Int("missing", 2))

	text := log.Text()
	for _, want := range []string{"[pack] finished", "cells", "16", "[holes] short", "warn"} {
		if !strings.Contains(text, want) {
			t.Errorf("captured log missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "\033[") {
		t.Errorf("Text() kept colour codes: %q", text)
	}
	if !strings.Contains(console.String(), "[pack] finished") {
		t.Errorf("console did not receive entries: %q", console.String())
	}
	if !strings.Contains(log.HTML(), "<pre>") {
		t.Errorf("HTML() not wrapped in <pre>")
	}

	log.ClearLogs()
	if log.Text() != "" {
		t.Errorf("ClearLogs() left %q", log.Text())
	}
}

func TestLevelFilter(t *testing.T) {
	log := New(WithLevel(zap.InfoLevel))
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(log.Text(), "hidden") {
		t.Errorf("debug entry passed an info-level logger")
	}
	if !strings.Contains(log.Text(), "shown") {
		t.Errorf("info entry missing")
	}
}

func TestDebugEnabled(t *testing.T) {
	if !New().DebugEnabled() {
		t.Error("default logger should keep debug entries")
	}
	if New(WithLevel(zap.InfoLevel)).DebugEnabled() {
		t.Error("info-level logger reports debug as enabled")
	}
	if NewNop().DebugEnabled() {
		t.Error("nop logger reports debug as enabled")
	}
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Error("nothing")
	if log.Text() != "" {
		t.Errorf("nop logger captured %q", log.Text())
	}
}
