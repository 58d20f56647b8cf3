package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestWithContext_Identity(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	ctx := WithIdentity(context.Background(), "ana@example.com")
	cl := WithContext(ctx, l)
	cl.Info("hello")

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got := out["identity"]; got != "ana@example.com" {
		t.Errorf("identity = %v, want %q", got, "ana@example.com")
	}
}

func TestWithContext_NoSpan(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	cl := WithContext(context.Background(), l)
	cl.Info("no span")

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if _, ok := out["trace_id"]; ok {
		t.Error("trace_id should not be present when no span in context")
	}
	if _, ok := out["span_id"]; ok {
		t.Error("span_id should not be present when no span in context")
	}
}

func TestWithContext_WithValidSpan(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	// Create a valid span context with known IDs.
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	cl := WithContext(ctx, l)
	cl.Info("with span")

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got := out["trace_id"]; got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace_id = %v, want %q", got, "4bf92f3577b34da6a3ce929d0e0e4736")
	}
	if got := out["span_id"]; got != "00f067aa0ba902b7" {
		t.Errorf("span_id = %v, want %q", got, "00f067aa0ba902b7")
	}
}

func TestNew_AppNameField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "warn", &buf)

	l.Info("filtered out")
	if buf.Len() != 0 {
		t.Fatalf("info line should be filtered at warn level, got %q", buf.String())
	}

	l.Warn("kept")
	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got := out["app"]; got != "storefront" {
		t.Errorf("app = %v, want %q", got, "storefront")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext must never return nil")
	}

	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)
	ctx := NewContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Error("FromContext should return the stored logger")
	}
}

func TestIdentityFromContext_Absent(t *testing.T) {
	if got := IdentityFromContext(context.Background()); got != "" {
		t.Errorf("identity = %q, want empty", got)
	}
}
