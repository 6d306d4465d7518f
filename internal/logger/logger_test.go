package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name  string
		json  bool
		debug bool
	}{
		{"console", false, false},
		{"json debug", true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := New(tc.json, tc.debug)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tc.debug {
				t.Fatalf("debug enabled = %v, want %v", got, tc.debug)
			}
		})
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
	if entries[0].ContextMap()["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", entries[0].ContextMap()["foo"])
	}

	if WithFields(nil, zap.String("baz", "qux")) == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
}

func TestApplicationFields(t *testing.T) {
	fields := ApplicationFields("  alice ", "Data Scientist")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldCandidate || fields[0].String != "alice" {
		t.Fatalf("unexpected candidate field: %+v", fields[0])
	}
	if fields[1].Key != FieldJobID || fields[1].String != "Data Scientist" {
		t.Fatalf("unexpected job field: %+v", fields[1])
	}

	if empty := ApplicationFields(" ", ""); len(empty) != 0 {
		t.Fatalf("expected no fields, got %d", len(empty))
	}
}

func TestForSession(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	ForSession(zap.New(core), "abc").Info("tagged")
	ForSession(zap.New(core), "").Info("untagged")

	entries := observed.All()
	if entries[0].ContextMap()[FieldSessionID] != "abc" {
		t.Fatalf("expected session id on first entry, got %v", entries[0].ContextMap())
	}
	if _, ok := entries[1].ContextMap()[FieldSessionID]; ok {
		t.Fatalf("expected no session id on second entry")
	}
}

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"абвгд", 3, "абв..."},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := TruncateForLog(tc.in, tc.limit); got != tc.want {
			t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}
