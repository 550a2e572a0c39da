package systems

import (
	"github.com/automoto/netcharacon/components"
	cfg "github.com/automoto/netcharacon/config"
	"github.com/automoto/netcharacon/logging"
	"github.com/automoto/netcharacon/network"
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/automoto/netcharacon/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Correction is emitted when the local prediction is moved onto the
// authority's path.
type Correction struct {
	Sequence  uint32
	Offset    mgl64.Vec3
	YawOffset float64
	Snap      bool // before the first acknowledged intent the pose is copied outright
}

// Reconciler compares the locally predicted character with authority
// snapshots and corrects it once the divergence persists.
type Reconciler struct {
	Buffer *network.PredictionBuffer

	TranslationThreshold float64
	RotationThreshold    float64
	CountThreshold       int

	mismatches  int
	corrections int
}

// NewReconciler returns a reconciler using the configured thresholds.
func NewReconciler() *Reconciler {
	return &Reconciler{
		Buffer:               &network.PredictionBuffer{},
		TranslationThreshold: cfg.Network.TranslationErrorThreshold,
		RotationThreshold:    cfg.Network.RotationErrorThreshold,
		CountThreshold:       cfg.Network.PredictionErrorCountThreshold,
	}
}

// Record stores the local pose against the last intent the predictor has
// applied. Call it after every physics tick.
func (r *Reconciler) Record(e *donburi.Entry) {
	seq := components.ActionBuffer.Get(e).LastDrained()
	state := components.CharacterState.Get(e)
	r.Buffer.Store(seq, state.Position, state.Yaw)
}

// Mismatches returns the current run of consecutive mismatching snapshots.
func (r *Reconciler) Mismatches() int {
	return r.mismatches
}

// Corrections returns how many corrections have been applied.
func (r *Reconciler) Corrections() int {
	return r.corrections
}

// Reconcile checks snap against the prediction and corrects the local
// character when needed. It reports whether the character was moved.
func (r *Reconciler) Reconcile(sim *Simulation, e *donburi.Entry, snap netcomponents.NetCharacterData) (Correction, bool) {
	state := components.CharacterState.Get(e)
	authPos := mgl64.Vec3{snap.X, snap.Y, snap.Z}

	if snap.LastSequence == 0 {
		c := Correction{
			Offset:    authPos.Sub(state.Position),
			YawOffset: gamemath.WrapAngle(snap.Yaw - state.Yaw),
			Snap:      true,
		}
		state.Position = authPos
		state.Yaw = snap.Yaw
		state.Grounded = snap.Grounded
		sim.syncBody(e)
		return c, true
	}

	trans, rot, ok := r.Buffer.PredictionError(snap.LastSequence, authPos, snap.Yaw)
	if !ok {
		return Correction{}, false
	}
	if trans <= r.TranslationThreshold && rot <= r.RotationThreshold {
		r.mismatches = 0
		return Correction{}, false
	}

	r.mismatches++
	if r.mismatches < r.CountThreshold {
		return Correction{}, false
	}

	predicted, _ := r.Buffer.Get(snap.LastSequence)
	c := Correction{
		Sequence:  snap.LastSequence,
		Offset:    authPos.Sub(predicted.Position),
		YawOffset: gamemath.WrapAngle(snap.Yaw - predicted.Yaw),
	}
	state.Position = state.Position.Add(c.Offset)
	state.Yaw = gamemath.WrapAngle(state.Yaw + c.YawOffset)
	state.Grounded = snap.Grounded
	sim.syncBody(e)

	r.Buffer.Shift(c.Offset, c.YawOffset)
	r.mismatches = 0
	r.corrections++

	logging.Named("reconcile").Infow("corrected prediction",
		"seq", c.Sequence, "offset", c.Offset, "yaw", c.YawOffset, "translation_error", trans, "rotation_error", rot)
	return c, true
}
