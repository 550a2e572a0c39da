package core

import (
	"sync/atomic"
	"time"
)

// Metrics counts server events. All methods are safe for concurrent use.
type Metrics struct {
	TickCount       int64
	TotalTickNs     int64
	IntentsAccepted int64
	IntentsClamped  int64
	UnknownIdentity int64 // intents for identities without a character
	StaleSequence   int64 // duplicate or reordered intents
	BufferOverflow  int64 // intents pushed out of a full action buffer
	CommandsDropped int64 // transport events lost to a full command queue
	JoinsAccepted   int64
	JoinsRejected   int64
	Disconnects     int64
	IdleEvictions   int64 // sessions dropped for going silent
}

func (m *Metrics) IncAccepted()        { atomic.AddInt64(&m.IntentsAccepted, 1) }
func (m *Metrics) IncClamped()         { atomic.AddInt64(&m.IntentsClamped, 1) }
func (m *Metrics) IncUnknownIdentity() { atomic.AddInt64(&m.UnknownIdentity, 1) }
func (m *Metrics) IncStaleSequence()   { atomic.AddInt64(&m.StaleSequence, 1) }
func (m *Metrics) IncBufferOverflow()  { atomic.AddInt64(&m.BufferOverflow, 1) }
func (m *Metrics) IncCommandsDropped() { atomic.AddInt64(&m.CommandsDropped, 1) }
func (m *Metrics) IncJoinsAccepted()   { atomic.AddInt64(&m.JoinsAccepted, 1) }
func (m *Metrics) IncJoinsRejected()   { atomic.AddInt64(&m.JoinsRejected, 1) }
func (m *Metrics) IncDisconnects()     { atomic.AddInt64(&m.Disconnects, 1) }
func (m *Metrics) IncIdleEvictions()   { atomic.AddInt64(&m.IdleEvictions, 1) }

func (m *Metrics) AddTick(d time.Duration) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, d.Nanoseconds())
}

// Snapshot returns a read-only copy for the admin API.
func (m *Metrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":       tick,
		"avg_tick_ms":      avgMs,
		"intents_accepted": atomic.LoadInt64(&m.IntentsAccepted),
		"intents_clamped":  atomic.LoadInt64(&m.IntentsClamped),
		"unknown_identity": atomic.LoadInt64(&m.UnknownIdentity),
		"stale_sequence":   atomic.LoadInt64(&m.StaleSequence),
		"buffer_overflow":  atomic.LoadInt64(&m.BufferOverflow),
		"commands_dropped": atomic.LoadInt64(&m.CommandsDropped),
		"joins_accepted":   atomic.LoadInt64(&m.JoinsAccepted),
		"joins_rejected":   atomic.LoadInt64(&m.JoinsRejected),
		"disconnects":      atomic.LoadInt64(&m.Disconnects),
		"idle_evictions":   atomic.LoadInt64(&m.IdleEvictions),
	}
}
