package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/nvramkit/internal/config"
	"github.com/joshuapare/nvramkit/pkg/nvram"
)

const (
	testImageSize  = 0x4000
	testCommonSize = 0x800
)

// testDevice writes a freshly formatted image holding vars to a temp file
// and points the command configuration at it.
func testDevice(t *testing.T, vars map[string]map[string]string) string {
	t.Helper()
	img, err := nvram.New(testImageSize, testCommonSize)
	if err != nil {
		t.Fatalf("nvram.New: %v", err)
	}
	for part, kv := range vars {
		sec := img.ActivePartition().Common
		if part == "system" {
			sec = img.ActivePartition().System
		}
		for k, v := range kv {
			sec.Insert(nvram.Variable{Key: []byte(k), Value: []byte(v)})
		}
	}
	data, err := img.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	path := filepath.Join(t.TempDir(), "nvram.img")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg = &config.Config{Device: path}
	writeBackup, writeDryRun = "", false
	deleteBackup, deleteDryRun = "", false
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
