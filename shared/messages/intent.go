package messages

import "github.com/go-gl/mathgl/mgl64"

// ControlIntent is sampled once per network tick on the client and applied
// exactly once by whichever simulation owns the character.
type ControlIntent struct {
	Sequence uint32     // Incrementing per client, used for acknowledgement and stale drops
	Linear   mgl64.Vec2 // Planar move: X right, Y forward. Components in [-1,1]
	Angular  mgl64.Vec2 // Accumulated look delta since the previous intent
	Jump     bool       // Set on the tick the jump key went down
}
