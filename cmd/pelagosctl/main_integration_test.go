//go:build sqlite

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRunCommandSQLitePersistsRun(t *testing.T) {
	workdir := t.TempDir()
	dbPath := filepath.Join(workdir, "pelagos.db")

	args := []string{
		"run",
		"--store", "sqlite",
		"--db-path", dbPath,
		"--scenario", "baseline",
		"--seed", "11",
		"--dt", "0.005",
		"--t-save", "0.5",
		"--warmup-years", "1",
		"--recovery-years", "1",
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("run command: %v", err)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite db at %s: %v", dbPath, err)
	}

	listArgs := []string{"runs", "--store", "sqlite", "--db-path", dbPath}
	if err := run(context.Background(), listArgs); err != nil {
		t.Fatalf("runs command: %v", err)
	}

	summaryArgs := []string{"summary", "--store", "sqlite", "--db-path", dbPath, "--scenario", "baseline"}
	if err := run(context.Background(), summaryArgs); err != nil {
		t.Fatalf("summary command: %v", err)
	}

	if err := run(context.Background(), []string{"reset", "--store", "sqlite", "--db-path", dbPath}); err != nil {
		t.Fatalf("reset command: %v", err)
	}
	if err := run(context.Background(), summaryArgs); err == nil {
		t.Fatalf("summary should fail after reset")
	}
}
