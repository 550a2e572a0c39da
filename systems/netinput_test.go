package systems

import (
	"errors"
	"testing"

	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/input"
	"github.com/automoto/netcharacon/shared/messages"
	"github.com/go-gl/mathgl/mgl64"
)

type fixedSampler []input.RawInput

func (f *fixedSampler) Sample() input.RawInput {
	if len(*f) == 0 {
		return input.RawInput{}
	}
	in := (*f)[0]
	*f = (*f)[1:]
	return in
}

func TestNetInputJumpIsEdgeTriggered(t *testing.T) {
	s := &fixedSampler{{Jump: true}, {Jump: true}, {}, {Jump: true}}
	n := NewNetInput(s, nil)

	var got []bool
	for i := 0; i < 4; i++ {
		got = append(got, n.Build().Jump)
	}
	want := []bool{true, false, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("jumps = %v, want %v", got, want)
		}
	}
	if n.Sequence() != 4 {
		t.Errorf("Sequence = %d, want 4", n.Sequence())
	}
}

func TestNetInputEnqueuesAndSends(t *testing.T) {
	sim := newSim(t, nil)
	e := spawn(sim, mgl64.Vec3{0, 10, 0})

	var sent []any
	s := &fixedSampler{{Forward: true, Right: true, Look: mgl64.Vec2{3, 0}}}
	n := NewNetInput(s, func(msg any) error {
		sent = append(sent, msg)
		return nil
	})

	intent := n.Tick(e)
	want := messages.ControlIntent{Sequence: 1, Linear: mgl64.Vec2{1, 1}, Angular: mgl64.Vec2{3, 0}}
	if intent != want {
		t.Fatalf("intent = %+v, want %+v", intent, want)
	}
	if len(sent) != 1 || sent[0] != want {
		t.Fatalf("sent = %+v", sent)
	}
	buf := components.ActionBuffer.Get(e)
	if got := buf.Drain(); len(got) != 1 || got[0] != want {
		t.Fatalf("buffer = %+v", got)
	}
}

func TestNetInputSendFailureIsNotFatal(t *testing.T) {
	sim := newSim(t, nil)
	e := spawn(sim, mgl64.Vec3{0, 10, 0})
	n := NewNetInput(input.IdleSampler{}, func(any) error { return errors.New("closed") })

	n.Tick(e)
	n.Tick(nil)
	if got := components.ActionBuffer.Get(e).Len(); got != 1 {
		t.Fatalf("buffer len = %d, want 1", got)
	}
}
