package components

import (
	"github.com/automoto/netcharacon/shared/messages"
	"github.com/yohamta/donburi"
)

// ActionBufferData queues control intents for one character between network
// ticks and simulation substeps. It is bounded: when full the oldest intent
// is discarded.
type ActionBufferData struct {
	intents []messages.ControlIntent
	limit   int
	dropped int
	acked   uint32
}

var ActionBuffer = donburi.NewComponentType[ActionBufferData]()

// NewActionBuffer returns a buffer holding at most limit intents. A limit of
// 0 or less leaves it unbounded.
func NewActionBuffer(limit int) ActionBufferData {
	return ActionBufferData{limit: limit}
}

// Enqueue appends intent. It reports whether an older intent was dropped to
// make room.
func (b *ActionBufferData) Enqueue(intent messages.ControlIntent) bool {
	dropped := false
	if b.limit > 0 && len(b.intents) >= b.limit {
		copy(b.intents, b.intents[1:])
		b.intents = b.intents[:len(b.intents)-1]
		b.dropped++
		dropped = true
	}
	b.intents = append(b.intents, intent)
	return dropped
}

// Drain returns every buffered intent in submission order and empties the
// buffer. The returned slice is owned by the caller.
func (b *ActionBufferData) Drain() []messages.ControlIntent {
	out := b.intents
	b.intents = nil
	if len(out) > 0 {
		b.acked = out[len(out)-1].Sequence
	}
	return out
}

// LastDrained returns the sequence of the most recently drained intent, or 0
// before the first drain.
func (b *ActionBufferData) LastDrained() uint32 {
	return b.acked
}

// Len returns the number of buffered intents.
func (b *ActionBufferData) Len() int {
	return len(b.intents)
}

// Dropped returns how many intents were discarded on overflow.
func (b *ActionBufferData) Dropped() int {
	return b.dropped
}
