// Package input produces raw per-tick input for the headless client.
package input

import "github.com/go-gl/mathgl/mgl64"

// RawInput is the state of the controls at one network tick.
type RawInput struct {
	Forward, Back, Left, Right bool
	Jump                       bool
	Look                       mgl64.Vec2 // accumulated look delta since the previous sample
}

// Linear maps the movement keys to a planar axis: X right, Y forward.
func (r RawInput) Linear() mgl64.Vec2 {
	var v mgl64.Vec2
	if r.Right {
		v[0]++
	}
	if r.Left {
		v[0]--
	}
	if r.Forward {
		v[1]++
	}
	if r.Back {
		v[1]--
	}
	return v
}

// Sampler is polled once per network tick.
type Sampler interface {
	Sample() RawInput
}

// IdleSampler never presses anything.
type IdleSampler struct{}

func (IdleSampler) Sample() RawInput { return RawInput{} }
