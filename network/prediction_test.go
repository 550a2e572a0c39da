package network

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPredictionBufferStoreAndGet(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(5, mgl64.Vec3{1, 0, 0}, 0.1)
	pb.Store(5, mgl64.Vec3{2, 0, 0}, 0.2)

	rec, ok := pb.Get(5)
	if !ok || rec.Position != (mgl64.Vec3{2, 0, 0}) || rec.Yaw != 0.2 {
		t.Fatalf("Get(5) = %+v, %v; want the latest pose", rec, ok)
	}
	if _, ok := pb.Get(6); ok {
		t.Error("Get(6) should miss")
	}
	if pb.Latest() != 5 {
		t.Errorf("Latest = %d, want 5", pb.Latest())
	}

	pb.Store(0, mgl64.Vec3{9, 9, 9}, 0)
	if _, ok := pb.Get(0); ok {
		t.Error("sequence 0 must never be stored")
	}
}

func TestPredictionBufferOverwritesOldSlots(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(1, mgl64.Vec3{1, 0, 0}, 0)
	pb.Store(1+predictionBufferSize, mgl64.Vec3{2, 0, 0}, 0)

	if _, ok := pb.Get(1); ok {
		t.Error("slot for sequence 1 should have been overwritten")
	}
	if _, ok := pb.Get(1 + predictionBufferSize); !ok {
		t.Error("newest sequence missing")
	}
}

func TestPredictionError(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(3, mgl64.Vec3{0, 0, 0}, math.Pi-0.1)

	tr, rot, ok := pb.PredictionError(3, mgl64.Vec3{3, 4, 0}, -math.Pi+0.1)
	if !ok {
		t.Fatal("expected a stored pose")
	}
	if math.Abs(tr-5) > 1e-9 {
		t.Errorf("translation = %v, want 5", tr)
	}
	if math.Abs(rot-0.2) > 1e-9 {
		t.Errorf("rotation = %v, want 0.2 across the wrap", rot)
	}
	if _, _, ok := pb.PredictionError(4, mgl64.Vec3{}, 0); ok {
		t.Error("unknown sequence must report ok=false")
	}
}

func TestPredictionBufferShift(t *testing.T) {
	var pb PredictionBuffer
	pb.Store(1, mgl64.Vec3{1, 0, 0}, 0)
	pb.Store(2, mgl64.Vec3{2, 0, 0}, 0)
	pb.Shift(mgl64.Vec3{0, 1, 0}, 0.5)

	for seq, want := range map[uint32]mgl64.Vec3{1: {1, 1, 0}, 2: {2, 1, 0}} {
		rec, _ := pb.Get(seq)
		if rec.Position != want || math.Abs(rec.Yaw-0.5) > 1e-9 {
			t.Errorf("seq %d = %+v, want %v yaw 0.5", seq, rec, want)
		}
	}

	pb.Reset()
	if _, ok := pb.Get(1); ok || pb.Latest() != 0 {
		t.Error("Reset should clear the buffer")
	}
}
