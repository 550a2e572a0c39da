package components

import (
	"testing"

	"github.com/automoto/netcharacon/shared/messages"
)

func TestActionBufferDrainInOrderExactlyOnce(t *testing.T) {
	b := NewActionBuffer(0)
	for seq := uint32(1); seq <= 5; seq++ {
		b.Enqueue(messages.ControlIntent{Sequence: seq})
	}
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", b.Len())
	}

	got := b.Drain()
	if len(got) != 5 {
		t.Fatalf("drained %d intents, want 5", len(got))
	}
	for i, in := range got {
		if in.Sequence != uint32(i+1) {
			t.Errorf("intent %d has sequence %d, want %d", i, in.Sequence, i+1)
		}
	}
	if b.Len() != 0 {
		t.Fatalf("buffer not empty after drain: %d", b.Len())
	}
	if again := b.Drain(); len(again) != 0 {
		t.Fatalf("second drain returned %d intents", len(again))
	}
}

func TestActionBufferDrainedSliceIsNotReused(t *testing.T) {
	b := NewActionBuffer(4)
	b.Enqueue(messages.ControlIntent{Sequence: 1})
	first := b.Drain()
	b.Enqueue(messages.ControlIntent{Sequence: 2})

	if first[0].Sequence != 1 {
		t.Fatalf("drained slice was overwritten: %+v", first)
	}
}

func TestActionBufferDropsOldestWhenFull(t *testing.T) {
	b := NewActionBuffer(3)
	for seq := uint32(1); seq <= 5; seq++ {
		dropped := b.Enqueue(messages.ControlIntent{Sequence: seq})
		if want := seq > 3; dropped != want {
			t.Errorf("Enqueue(%d) dropped = %v, want %v", seq, dropped, want)
		}
	}
	if b.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", b.Dropped())
	}

	got := b.Drain()
	if len(got) != 3 || got[0].Sequence != 3 || got[2].Sequence != 5 {
		t.Fatalf("drained %+v, want sequences 3..5", got)
	}
}

func TestActionBufferTracksLastDrained(t *testing.T) {
	b := NewActionBuffer(8)
	if b.LastDrained() != 0 {
		t.Fatalf("LastDrained() = %d before any drain", b.LastDrained())
	}
	b.Enqueue(messages.ControlIntent{Sequence: 7})
	b.Enqueue(messages.ControlIntent{Sequence: 8})
	if b.LastDrained() != 0 {
		t.Fatal("enqueue must not acknowledge")
	}
	b.Drain()
	b.Drain()
	if b.LastDrained() != 8 {
		t.Fatalf("LastDrained() = %d, want 8", b.LastDrained())
	}
}
