package logger

import (
	"context"
	"errors"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Init is safe to call again.
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestStructuredFields(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	l := Get()
	l.Info(ctx, "test message",
		String("k", "v"),
		Int("n", 1),
		Int64("n64", 2),
		Float64("f", 0.5),
		Bool("b", true),
		Any("any", []int{1, 2}),
		Error(errors.New("boom")),
	)
	l.Warn(ctx, "warn message")
	l.Debug(ctx, "debug message")
}

func TestNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("worker")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "test message")
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, lvl := range []string{"debug", "info", "WARN", "warning", "error", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("SetLevelString(%q) = %v", lvl, err)
		}
	}
	if err := SetLevelString("shout"); err == nil {
		t.Error("expected an error for an unknown level")
	}
	// Restore the default for other tests in the process.
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("failed to restore level: %v", err)
	}
}
