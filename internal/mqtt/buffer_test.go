package mqtt

import (
	"fmt"
	"testing"
)

func TestRingBufferEmpty(t *testing.T) {
	rb := newRingBuffer(10)
	if rb.len() != 0 {
		t.Errorf("expected empty buffer, got %d", rb.len())
	}
	if got := rb.drainAll(); got != nil {
		t.Errorf("expected nil drain on empty buffer, got %v", got)
	}
}

func TestRingBufferPushDrain(t *testing.T) {
	rb := newRingBuffer(10)

	rb.push(bufferedMsg{topic: "a", payload: []byte("1")})
	rb.push(bufferedMsg{topic: "b", payload: []byte("2")})
	rb.push(bufferedMsg{topic: "c", payload: []byte("3")})

	if rb.len() != 3 {
		t.Fatalf("expected 3 messages, got %d", rb.len())
	}

	msgs := rb.drainAll()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 drained, got %d", len(msgs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if msgs[i].topic != want {
			t.Errorf("message %d: got topic %q, want %q", i, msgs[i].topic, want)
		}
	}

	if rb.len() != 0 {
		t.Errorf("expected empty buffer after drain, got %d", rb.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	rb := newRingBuffer(5)

	for i := 0; i < 8; i++ {
		rb.push(bufferedMsg{topic: fmt.Sprintf("t%d", i)})
	}

	if rb.len() != 5 {
		t.Fatalf("expected buffer capped at 5, got %d", rb.len())
	}

	msgs := rb.drainAll()
	// Oldest three (t0..t2) were dropped.
	for i, want := range []string{"t3", "t4", "t5", "t6", "t7"} {
		if msgs[i].topic != want {
			t.Errorf("message %d: got topic %q, want %q", i, msgs[i].topic, want)
		}
	}
}

func TestRingBufferReuseAfterDrain(t *testing.T) {
	rb := newRingBuffer(3)

	rb.push(bufferedMsg{topic: "a"})
	rb.drainAll()

	rb.push(bufferedMsg{topic: "b"})
	rb.push(bufferedMsg{topic: "c"})

	msgs := rb.drainAll()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].topic != "b" || msgs[1].topic != "c" {
		t.Errorf("unexpected order: %v", msgs)
	}
}
