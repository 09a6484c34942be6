package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"overfish"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if err := run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for missing command")
	}
}

func TestScenariosCommand(t *testing.T) {
	if err := run(context.Background(), []string{"scenarios"}); err != nil {
		t.Fatalf("scenarios command: %v", err)
	}
}

func TestRunCommandMemoryStore(t *testing.T) {
	args := []string{
		"run",
		"--scenario", "larval-mortality",
		"--seed", "7",
		"--dt", "0.005",
		"--t-save", "0.5",
		"--warmup-years", "1",
		"--recovery-years", "1",
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("run command: %v", err)
	}
}

func TestRunCommandRejectsNegativeDurations(t *testing.T) {
	args := []string{"run", "--warmup-years", "-1"}
	if err := run(context.Background(), args); err == nil {
		t.Fatalf("expected error for negative warm-up")
	}
}
