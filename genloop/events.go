package genloop

import (
	"sync"
	"time"
)

// EventKind identifies the type of loop event.
type EventKind string

const (
	EventLoopStart         EventKind = "loop_start"
	EventAttemptStart      EventKind = "attempt_start"
	EventCandidateProduced EventKind = "candidate_produced"
	EventValidationPassed  EventKind = "validation_passed"
	EventValidationFailed  EventKind = "validation_failed"
	EventGenerationError   EventKind = "generation_error"
	EventRetryScheduled    EventKind = "retry_scheduled"
	EventStallDetected     EventKind = "stall_detected"
	EventLoopEnd           EventKind = "loop_end"
)

// LoopEvent is a typed event emitted by the loop.
type LoopEvent struct {
	Kind      EventKind              `json:"kind"`
	Timestamp time.Time              `json:"timestamp"`
	LoopID    string                 `json:"loop_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventEmitter delivers typed events to the host application via a channel.
type EventEmitter struct {
	loopID string
	ch     chan LoopEvent
	closed bool
	mu     sync.Mutex
}

// NewEventEmitter creates a new EventEmitter with a buffered channel.
func NewEventEmitter(loopID string, bufferSize int) *EventEmitter {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &EventEmitter{
		loopID: loopID,
		ch:     make(chan LoopEvent, bufferSize),
	}
}

// Emit sends an event to the channel. If the emitter is closed, the event
// is silently dropped.
func (e *EventEmitter) Emit(kind EventKind, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	event := LoopEvent{
		Kind:      kind,
		Timestamp: time.Now(),
		LoopID:    e.loopID,
		Data:      data,
	}
	select {
	case e.ch <- event:
	default:
		// Channel full; drop event to avoid blocking the loop.
	}
}

// Events returns the read-only event channel.
func (e *EventEmitter) Events() <-chan LoopEvent {
	return e.ch
}

// Close closes the event channel. Safe to call multiple times.
func (e *EventEmitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}
