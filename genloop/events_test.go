package genloop

import "testing"

func TestEventEmitterDeliversInOrder(t *testing.T) {
	e := NewEventEmitter("loop-1", 8)
	e.Emit(EventLoopStart, nil)
	e.Emit(EventAttemptStart, map[string]interface{}{"attempt": 1})
	e.Close()

	var kinds []EventKind
	for event := range e.Events() {
		kinds = append(kinds, event.Kind)
		if event.LoopID != "loop-1" {
			t.Errorf("expected loop ID loop-1, got %q", event.LoopID)
		}
		if event.Timestamp.IsZero() {
			t.Error("expected non-zero timestamp")
		}
	}
	if len(kinds) != 2 || kinds[0] != EventLoopStart || kinds[1] != EventAttemptStart {
		t.Errorf("unexpected events: %v", kinds)
	}
}

func TestEventEmitterDropsWhenFull(t *testing.T) {
	e := NewEventEmitter("loop-1", 1)
	e.Emit(EventLoopStart, nil)
	e.Emit(EventLoopEnd, nil) // dropped: buffer full, nobody reading
	e.Close()

	count := 0
	for range e.Events() {
		count++
	}
	if count != 1 {
		t.Errorf("expected 1 delivered event, got %d", count)
	}
}

func TestEventEmitterCloseIsIdempotent(t *testing.T) {
	e := NewEventEmitter("loop-1", 4)
	e.Close()
	e.Close()
	e.Emit(EventLoopStart, nil) // silently dropped after close
}
