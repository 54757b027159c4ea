package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %s", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("sample config missing: %v", err)
	}
	if !strings.Contains(string(data), "[tts]") {
		t.Fatal("sample config missing tts section")
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("second init must refuse to overwrite")
	}
}

func TestConfigValidateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out, err := runCommand(t, "config", "validate", "--path", target)
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Configuration is valid") {
		t.Fatalf("unexpected output: %s", out)
	}
}
