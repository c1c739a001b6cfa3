package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if lvl.String() != name {
			t.Fatalf("round trip %q -> %q", name, lvl.String())
		}
	}
	if lvl, err := ParseLevel("DETAIL"); err != nil || lvl != LevelDetail {
		t.Fatalf("upper-case level: %v %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePass, false},
		{LevelDetail, ScopePass, true},
		{LevelDetail, ScopeSpan, false},
		{LevelDebug, ScopeSpan, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
	if !LevelError.ShouldEmitKind(KindError, ScopeSpan) {
		t.Fatalf("error points must pass LevelError")
	}
	if LevelOff.ShouldEmitKind(KindError, ScopeDriver) {
		t.Fatalf("LevelOff must drop everything")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ndjson: %v %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatAuto {
		t.Fatalf("empty: %v %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatalf("expected error")
	}
	if detectFormat(FormatAuto, "run.ndjson") != FormatNDJSON {
		t.Fatalf("auto .ndjson should be NDJSON")
	}
	if detectFormat(FormatAuto, "-") != FormatText {
		t.Fatalf("auto stderr should be text")
	}
	if detectFormat(FormatNDJSON, "run.txt") != FormatNDJSON {
		t.Fatalf("explicit format must win")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeFile, "file:a.py", 0)
	pass := Begin(tr, ScopePass, "tokenize", root.ID())
	pass.WithExtra("tokens", "12").WithExtra("errors", "0").End("")
	Begin(tr, ScopeSpan, "span", pass.ID()).End("") // below detail
	root.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ file:a.py") {
		t.Fatalf("unexpected begin line %q", lines[0])
	}
	if !strings.Contains(lines[1], "  → tokenize") {
		t.Fatalf("child span should be indented: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← tokenize {errors=0, tokens=12}") {
		t.Fatalf("extras should be sorted: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "← file:a.py (ok)") {
		t.Fatalf("unexpected end line %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	span := Begin(tr, ScopeDriver, "lint", 0)
	Error(tr, ScopeFile, "load", "permission denied", span.ID())
	span.WithExtra("files", "3").End("")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	var events []map[string]any
	for _, line := range lines {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %q is not JSON: %v", line, err)
		}
		events = append(events, m)
	}
	if events[0]["kind"] != "begin" || events[0]["name"] != "lint" || events[0]["scope"] != "driver" {
		t.Fatalf("unexpected begin event %v", events[0])
	}
	if events[1]["kind"] != "error" || events[1]["detail"] != "permission denied" {
		t.Fatalf("unexpected error event %v", events[1])
	}
	if _, ok := events[1]["parent_id"]; !ok {
		t.Fatalf("error event should carry parent_id: %v", events[1])
	}
	extra, ok := events[2]["extra"].(map[string]any)
	if !ok || extra["files"] != "3" {
		t.Fatalf("unexpected end extra %v", events[2]["extra"])
	}
}

func TestErrorLevelOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tr, ScopeDriver, "lint", 0).End("")
	Point(tr, ScopeDriver, "discovered", "3 files", 0)
	Error(tr, ScopeFile, "structural", "a.py", 0)
	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "! structural (a.py)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNopAndNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("LevelOff must produce a disabled tracer")
	}
	span := Begin(tr, ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatalf("nop span should be inert")
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf, OutputPath: "x.ndjson"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeDriver, "lint", 0).End("")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected NDJSON from .ndjson path, got %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if CurrentSpan(ctx).SpanID != 7 {
		t.Fatalf("span context not propagated")
	}
}

func TestContextNil(t *testing.T) {
	var nilCtx context.Context
	if FromContext(nilCtx) != Nop || CurrentSpan(nilCtx) != (SpanContext{}) {
		t.Fatalf("nil context should yield Nop and no span")
	}
	ctx := WithSpanContext(nilCtx, SpanContext{SpanID: 3})
	if ctx == nil || CurrentSpan(ctx).SpanID != 3 {
		t.Fatalf("WithSpanContext on nil context lost the span")
	}
	ctx = WithTracer(nilCtx, nil)
	if ctx == nil || FromContext(ctx) != Nop {
		t.Fatalf("WithTracer on nil context should attach Nop")
	}
}
