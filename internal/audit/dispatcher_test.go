package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(_ context.Context, _ Event) {
	s.count.Add(1)
}

// gateSink blocks every Emit until released, so tests can hold the
// dispatcher loop busy and fill the buffer deterministically.
type gateSink struct {
	release chan struct{}
	seen    atomic.Int64
}

func (s *gateSink) Emit(_ context.Context, _ Event) {
	s.seen.Add(1)
	<-s.release
}

func TestDispatcherDeliversAndDrains(t *testing.T) {
	sink := &countingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 64}, sink)

	for i := 0; i < 50; i++ {
		d.Emit(context.Background(), Event{EventType: EventLogout, Subject: "u1"})
	}
	d.Close()

	if got := sink.count.Load(); got != 50 {
		t.Fatalf("delivered = %d, want 50", got)
	}
	if got := d.Dropped(); got != 0 {
		t.Fatalf("dropped = %d, want 0", got)
	}
}

func TestDispatcherDisabled(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, &countingSink{})
	if d != nil {
		t.Fatal("disabled config must yield a nil dispatcher")
	}

	// Nil receiver behavior: everything is a no-op.
	d.Emit(context.Background(), Event{EventType: EventLoginSuccess})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &gateSink{release: make(chan struct{})}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// First event occupies the run loop, second fills the buffer.
	d.Emit(context.Background(), Event{EventType: EventLogout})
	waitFor(t, func() bool { return sink.seen.Load() == 1 })
	d.Emit(context.Background(), Event{EventType: EventLogout})

	d.Emit(context.Background(), Event{EventType: EventLogout})
	if got := d.Dropped(); got != 1 {
		t.Fatalf("dropped = %d, want 1", got)
	}

	close(sink.release)
	d.Close()
}

func TestDispatcherEmitAfterClose(t *testing.T) {
	sink := &countingSink{}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 4}, sink)
	d.Close()
	d.Close()

	d.Emit(context.Background(), Event{EventType: EventLogout})
	if got := sink.count.Load(); got != 0 {
		t.Fatalf("delivered after close = %d, want 0", got)
	}
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	event := Event{
		Timestamp: time.Now(),
		EventType: EventLoginSuccess,
		Subject:   "u1",
		TokenID:   "jti-1",
		Success:   true,
	}
	sink.Emit(context.Background(), event)

	var decoded Event
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("sink output is not valid JSON: %v", err)
	}
	if decoded.EventType != EventLoginSuccess || decoded.Subject != "u1" || decoded.TokenID != "jti-1" {
		t.Fatalf("decoded event = %+v", decoded)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
