package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/VKoskiv/c-ray/internal/rayerr"
)

func TestParseDims(t *testing.T) {
	cases := []struct {
		in          string
		w, h        int
		expectError bool
	}{
		{"1920x1080", 1920, 1080, false},
		{"800X600", 800, 600, false},
		{"not-a-size", 0, 0, true},
		{"0x0", 0, 0, true},
		{"-4x4", 0, 0, true},
	}
	for _, c := range cases {
		w, h, err := parseDims(c.in)
		if c.expectError {
			if err == nil {
				t.Errorf("parseDims(%q): expected an error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDims(%q): unexpected error %v", c.in, err)
		}
		if w != c.w || h != c.h {
			t.Errorf("parseDims(%q) = %d,%d want %d,%d", c.in, w, h, c.w, c.h)
		}
	}
}

func TestExitCodeMapsRayerrKind(t *testing.T) {
	err := rayerr.New(rayerr.InputNotFound, "missing.json")
	if got, want := exitCode(err), -int(rayerr.InputNotFound); got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestExitCodeFallsBackForPlainErrors(t *testing.T) {
	if got := exitCode(errors.New("boom")); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestLoadOverrideParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	src := "threadCount: 4\nsampleCount: 16\ntileOrder: random\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	o, err := loadOverride(path)
	if err != nil {
		t.Fatalf("loadOverride: %v", err)
	}
	if o.ThreadCount != 4 || o.SampleCount != 16 || o.TileOrder != "random" {
		t.Errorf("got %+v", o)
	}
}

func TestLoadOverrideMissingFile(t *testing.T) {
	if _, err := loadOverride(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing override file")
	}
}

func TestSelfCheckPasses(t *testing.T) {
	logger := discardLogger()
	if !selfCheck(logger) {
		t.Errorf("expected the built-in self-check suite to pass")
	}
}

func TestRunRequiresInFlag(t *testing.T) {
	if code := run(nil); code != -1 {
		t.Errorf("got exit code %d, want -1 for a missing -in flag", code)
	}
}
