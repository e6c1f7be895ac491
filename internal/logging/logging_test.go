package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info record should be written")
	}

	buf.Reset()
	New(&buf, true).Debug("verbose")
	if !strings.Contains(buf.String(), "verbose") {
		t.Error("verbose logger should write debug records")
	}
}

func TestFileSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	sink, err := OpenFileSink(path)
	if err != nil {
		t.Fatalf("OpenFileSink() error = %v", err)
	}

	if err := sink.Appendf("line %d", 1); err != nil {
		t.Fatalf("Appendf() error = %v", err)
	}
	if _, err := sink.Write([]byte("line 2\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "line 1\nline 2\n" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestFileSinkConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	sink, err := OpenFileSink(path)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sink.Appendf("worker line")
		}()
	}
	wg.Wait()
	_ = sink.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 50 {
		t.Fatalf("got %d lines, want 50", len(lines))
	}
	for _, line := range lines {
		if line != "worker line" {
			t.Errorf("interleaved line: %q", line)
		}
	}
}

func TestTeeFileAlwaysDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	sink, err := OpenFileSink(path)
	if err != nil {
		t.Fatal(err)
	}

	var console bytes.Buffer
	log := Tee(&console, sink, false)
	log.Debug("detail")
	log.Info("headline")
	_ = sink.Close()

	if strings.Contains(console.String(), "detail") {
		t.Error("console should filter debug records when not verbose")
	}
	if !strings.Contains(console.String(), "headline") {
		t.Error("console should carry info records")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "detail") || !strings.Contains(string(data), "headline") {
		t.Errorf("file sink should carry all records, got:\n%s", string(data))
	}
}
