package systems

import (
	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/input"
	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/shared/messages"
	"github.com/yohamta/donburi"
)

// NetInput turns one raw input sample per network tick into a control
// intent, feeds it to the local predictor and sends it to the authority.
type NetInput struct {
	sampler  input.Sampler
	send     func(any) error
	seq      uint32
	jumpHeld bool
}

// NewNetInput returns a bridge polling sampler. send must not block.
func NewNetInput(sampler input.Sampler, send func(any) error) *NetInput {
	return &NetInput{sampler: sampler, send: send}
}

// Build samples the input and returns the next intent. Jump is set only on
// the tick the key goes down.
func (n *NetInput) Build() messages.ControlIntent {
	raw := n.sampler.Sample()
	n.seq++
	intent := messages.ControlIntent{
		Sequence: n.seq,
		Linear:   raw.Linear(),
		Angular:  raw.Look,
		Jump:     raw.Jump && !n.jumpHeld,
	}
	n.jumpHeld = raw.Jump
	return intent
}

// Tick builds one intent, enqueues it on local when the character is
// simulated here and sends it to the authority. Send failures are logged
// and the intent is dropped.
func (n *NetInput) Tick(local *donburi.Entry) messages.ControlIntent {
	intent := n.Build()

	if local != nil && local.Valid() && local.HasComponent(components.ActionBuffer) {
		if components.ActionBuffer.Get(local).Enqueue(intent) {
			logging.Named("netinput").Debugw("action buffer full, dropped oldest intent", "seq", intent.Sequence)
		}
	}

	if n.send != nil {
		if err := n.send(intent); err != nil {
			logging.Named("netinput").Debugw("send intent failed", "seq", intent.Sequence, "err", err)
		}
	}
	return intent
}

// Sequence returns the sequence of the last built intent.
func (n *NetInput) Sequence() uint32 {
	return n.seq
}
