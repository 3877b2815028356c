package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestFrameCommandWritesSCAD(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.scad")

	app := newCLIApp(zap.NewNop())
	err := app.Run([]string{"forma", "frame", "--out", out})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	if !strings.HasPrefix(src, "$fn = 100;\n") {
		t.Errorf("missing facet header: %q", src[:minInt(len(src), 40)])
	}
	if strings.Count(src, "cube(") != 5 || strings.Count(src, "cylinder(") != 4 {
		t.Errorf("unexpected primitive counts in %q", src)
	}
}

func TestPlaqueCommandWritesSCAD(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plaque.scad")

	app := newCLIApp(zap.NewNop())
	err := app.Run([]string{"forma", "plaque", "--text", "Hi", "--out", out})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `text("Hi"`) {
		t.Errorf("plaque source missing text call: %q", string(data))
	}
}

func TestFrameCommandRejectsBadParameters(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.scad")

	app := newCLIApp(zap.NewNop())
	err := app.Run([]string{"forma", "frame", "--arm-length", "5", "--out", out})
	if err == nil {
		t.Fatal("expected error for out-of-range arm length")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("no artifact should be written on validation failure")
	}
}

func TestEvalCommandWritesPerAssembly(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "parts.forma")
	src := "(radial-frame :arms 2)\n(text-plaque :text \"Hi\")\n"
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newCLIApp(zap.NewNop())
	err := app.Run([]string{"forma", "eval", "--out-dir", dir, "--format", "scad", script})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"radial-frame-0.scad", "text-plaque-1.scad"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
