package network

import (
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

const predictionBufferSize = 64

// PoseRecord is the locally predicted pose once an intent has been applied.
type PoseRecord struct {
	Sequence uint32
	Position mgl64.Vec3
	Yaw      float64
}

// PredictionBuffer is a ring buffer of predicted poses keyed by the last
// intent sequence applied when they were recorded.
type PredictionBuffer struct {
	history [predictionBufferSize]PoseRecord
	latest  uint32
}

// Store saves the predicted pose for seq, replacing an earlier pose for the
// same sequence. Sequence 0 is never stored.
func (pb *PredictionBuffer) Store(seq uint32, pos mgl64.Vec3, yaw float64) {
	if seq == 0 {
		return
	}
	pb.history[seq%predictionBufferSize] = PoseRecord{Sequence: seq, Position: pos, Yaw: yaw}
	if seq > pb.latest {
		pb.latest = seq
	}
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (PoseRecord, bool) {
	if seq == 0 {
		return PoseRecord{}, false
	}
	record := pb.history[seq%predictionBufferSize]
	if record.Sequence != seq {
		return PoseRecord{}, false
	}
	return record, true
}

// Latest returns the highest stored sequence.
func (pb *PredictionBuffer) Latest() uint32 {
	return pb.latest
}

// PredictionError returns the translation and yaw distance between the pose
// predicted for seq and the authority's pose. ok is false when seq is no
// longer buffered.
func (pb *PredictionBuffer) PredictionError(seq uint32, pos mgl64.Vec3, yaw float64) (translation, rotation float64, ok bool) {
	record, ok := pb.Get(seq)
	if !ok {
		return 0, 0, false
	}
	return record.Position.Sub(pos).Len(), gamemath.AngleDiff(record.Yaw, yaw), true
}

// Shift moves every stored pose by offset and yaw after a correction so
// later comparisons measure against the corrected path.
func (pb *PredictionBuffer) Shift(offset mgl64.Vec3, yaw float64) {
	for i := range pb.history {
		if pb.history[i].Sequence == 0 {
			continue
		}
		pb.history[i].Position = pb.history[i].Position.Add(offset)
		pb.history[i].Yaw = gamemath.WrapAngle(pb.history[i].Yaw + yaw)
	}
}

// Reset clears the buffer.
func (pb *PredictionBuffer) Reset() {
	*pb = PredictionBuffer{}
}
