package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNilEmitterIsNoOp(t *testing.T) {
	t.Parallel()
	var e *Emitter
	if err := e.Emit(Event{Kind: KindRunStart}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestEmitWritesJSONL(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	events := []Event{
		{Kind: KindRunStart, PlanID: "abc123"},
		{Kind: KindScheduled, PlanID: "abc123", Data: map[string]any{"tasks": 3}},
		{Kind: KindRunDone, PlanID: "abc123"},
	}
	for _, evt := range events {
		if err := e.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var got []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
		got = append(got, evt)
	}
	if len(got) != len(events) {
		t.Fatalf("got %d lines, want %d", len(got), len(events))
	}
	for i, evt := range got {
		if evt.Kind != events[i].Kind || evt.PlanID != "abc123" {
			t.Errorf("line %d = %+v", i, evt)
		}
		if evt.Timestamp.IsZero() || evt.Timestamp.After(time.Now()) {
			t.Errorf("line %d has bad timestamp %v", i, evt.Timestamp)
		}
	}
}

func TestEmitConcurrent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Emit(Event{Kind: KindValidated, TaskID: i})
		}()
	}
	wg.Wait()
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("interleaved write produced bad JSON: %v", err)
		}
		lines++
	}
	if lines != 20 {
		t.Errorf("got %d lines, want 20", lines)
	}
}
