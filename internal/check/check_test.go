package check

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mingzapingin/BatchBlast/internal/config"
)

func TestCheckDeps_MissingBlastn(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cfg := config.DefaultConfig()
	if err := CheckDeps(&cfg); !errors.Is(err, ErrBlastnNotFound) {
		t.Errorf("err = %v, want ErrBlastnNotFound", err)
	}
}

func TestCheckDeps_Found(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blastn"), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
	cfg := config.DefaultConfig()
	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
