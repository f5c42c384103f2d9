package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "ERROR": LevelError, "phase": LevelPhase, "Detail": LevelDetail, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
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
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeToken, false},
		{LevelDebug, ScopeToken, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "tokenize", 0)
	pass := Begin(tr, ScopePass, "lex", root.ID())
	file := Begin(tr, ScopeFile, "file:a.wren", pass.ID()) // filtered at phase level
	file.End("")
	pass.WithExtra("tokens", "12").End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "end" || ev["name"] != "lex" || ev["scope"] != "pass" {
		t.Errorf("unexpected event %v", ev)
	}
	if extra, _ := ev["extra"].(map[string]any); extra["tokens"] != "12" {
		t.Errorf("extra = %v", ev["extra"])
	}
}

func TestStreamTracerChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	sp := Begin(tr, ScopePass, "lex", 0)
	Point(tr, ScopeToken, "token", "Ident(x)", sp.ID())
	sp.End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome trace: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 3 || doc.TraceEvents[1]["ph"] != "i" {
		t.Errorf("events = %v", doc.TraceEvents)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeToken, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot has %d events", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "• ") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestNewAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff should give a disabled tracer: %v", err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Error("tracer not propagated")
	}
	if FromContext(context.Background()) != Nop {
		t.Error("missing tracer should be Nop")
	}
	Begin(FromContext(ctx), ScopePass, "lex", 0).End("")
	if !strings.Contains(buf.String(), "lex") {
		t.Errorf("stream output = %q", buf.String())
	}
	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(9)}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ndjson -> %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error")
	}
}

func TestStartSpanNests(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)

	ctx, root := StartSpan(ctx, ScopeDriver, "tokenize-files")
	fctx, file := StartSpan(ctx, ScopeFile, "file:a.wren")
	if ParentID(fctx) != file.ID() {
		t.Fatalf("ParentID = %d, want %d", ParentID(fctx), file.ID())
	}
	// token scope is filtered at detail level; the context keeps the file span
	tctx, tok := StartSpan(fctx, ScopeToken, "token")
	if tok.ID() != 0 || ParentID(tctx) != file.ID() {
		t.Errorf("filtered span changed the parent: %d", ParentID(tctx))
	}
	file.End("")
	root.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("got %d events", len(snap))
	}
	if snap[1].ParentID != root.ID() {
		t.Errorf("file span parent = %d, want %d", snap[1].ParentID, root.ID())
	}
	if ParentID(context.Background()) != 0 {
		t.Error("background context should have no parent")
	}
}

func TestRingDumpChrome(t *testing.T) {
	tr := NewRingTracer(0, LevelPhase)
	if tr.Len() != 0 {
		t.Fatal("new ring not empty")
	}
	Begin(tr, ScopePass, "lex", 0).End("")
	if tr.Len() != 2 {
		t.Fatalf("Len = %d", tr.Len())
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatChrome); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid dump: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 2 || doc.TraceEvents[0]["ph"] != "B" || doc.TraceEvents[1]["ph"] != "E" {
		t.Errorf("events = %v", doc.TraceEvents)
	}
}

func TestStreamTracerOwnsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson")
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "tokenize", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	Point(tr, ScopeDriver, "late", "", 0) // dropped after Close

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("expected 2 ndjson lines, got %d:\n%s", n, data)
	}
}

type failingTracer struct {
	closed bool
}

func (f *failingTracer) Emit(*Event)   {}
func (f *failingTracer) Flush() error  { return errors.New("flush") }
func (f *failingTracer) Close() error  { f.closed = true; return errors.New("close") }
func (f *failingTracer) Level() Level  { return LevelDebug }
func (f *failingTracer) Enabled() bool { return true }

func TestMultiTracerJoinsErrors(t *testing.T) {
	a, b := &failingTracer{}, &failingTracer{}
	m := NewMultiTracer(LevelOff, a, Nop, nil, b)
	if got := len(m.Tracers()); got != 2 {
		t.Fatalf("members = %d, want 2", got)
	}
	if m.Level() != LevelDebug || !m.Enabled() {
		t.Errorf("level = %v", m.Level())
	}
	if err := m.Flush(); err == nil {
		t.Error("expected flush error")
	}
	if err := m.Close(); err == nil || !a.closed || !b.closed {
		t.Errorf("close err=%v a=%v b=%v", err, a.closed, b.closed)
	}
	if NewMultiTracer(LevelOff).Enabled() {
		t.Error("empty multi tracer should be disabled")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]StorageMode{"": ModeStream, "stream": ModeStream, "RING": ModeRing, "both": ModeBoth} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected error")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(DefaultRingSize, LevelError)
	hb := StartHeartbeat(ring, time.Millisecond, func() map[string]string {
		return map[string]string{"goroutines": "1"}
	})
	deadline := time.Now().Add(5 * time.Second)
	for ring.Len() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()

	snap := ring.Snapshot()
	if len(snap) < 2 {
		t.Fatalf("got %d heartbeats", len(snap))
	}
	if snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" || snap[0].Extra["goroutines"] != "1" {
		t.Errorf("first beat = %+v", snap[0])
	}

	if StartHeartbeat(Nop, time.Millisecond, nil) != nil {
		t.Error("disabled tracer should not beat")
	}
	var nilBeat *Heartbeat
	nilBeat.Stop()
}
