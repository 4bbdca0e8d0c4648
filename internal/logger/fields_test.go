package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStrings(t *testing.T) {
	fields := Strings(
		"  embedder  ", "  gemini  ",
		"ignored", "   ",
		"   ", "empty key",
		"dangling",
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "embedder" || fields[0].String != "gemini" {
		t.Fatalf("unexpected embedder field: %+v", fields[0])
	}

	if empty := Strings(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithFields(logger, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched := WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	enriched.Info("another log")
}

func TestWithEngineFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithEngineFields(zap.New(core), "2026.10", "gemini+local", "").Info("ranking")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldDictionary] != "2026.10" || ctx[FieldEmbedder] != "gemini+local" {
		t.Fatalf("unexpected fields: %v", ctx)
	}
	if _, ok := ctx[FieldModel]; ok {
		t.Fatalf("empty model must be omitted, got %v", ctx)
	}
}

func TestRunFields(t *testing.T) {
	fields := RunFields("run-1", "backend.txt")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldRunID || fields[1].String != "backend.txt" {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	if got := RunFields("run-1", ""); len(got) != 1 {
		t.Fatalf("empty jd name must be omitted, got %+v", got)
	}
}
