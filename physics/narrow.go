package physics

import (
	"math"

	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

const separationEpsilon = 1e-9

// Contact is one point of an overlap.
type Contact struct {
	Point       mgl64.Vec3
	Penetration float64
}

// Manifold describes an overlap between two bodies during one substep.
// Normal is a unit vector pointing from Body1 towards Body2.
type Manifold struct {
	Body1, Body2 *Body
	Normal       mgl64.Vec3
	Contacts     []Contact
	Sensor       bool
}

// collide runs the narrow phase for a collider at aPos against one at bPos.
// The returned normal points from a to b.
func collide(aPos mgl64.Vec3, a Collider, bPos mgl64.Vec3, b Collider) (mgl64.Vec3, []Contact, bool) {
	switch {
	case a.Kind == KindCapsule && b.Kind == KindBox:
		return capsuleBox(aPos, a, bPos, b)
	case a.Kind == KindBox && b.Kind == KindCapsule:
		n, contacts, ok := capsuleBox(bPos, b, aPos, a)
		return n.Mul(-1), contacts, ok
	case a.Kind == KindCapsule && b.Kind == KindCapsule:
		return capsuleCapsule(aPos, a, bPos, b)
	default:
		return boxBox(aPos, a, bPos, b)
	}
}

func capsuleBox(p mgl64.Vec3, c Collider, center mgl64.Vec3, box Collider) (mgl64.Vec3, []Contact, bool) {
	y0, y1 := p.Y()-c.HalfHeight, p.Y()+c.HalfHeight
	bmin := center.Sub(box.HalfExtents)
	bmax := center.Add(box.HalfExtents)

	// The segment is vertical and the box axis-aligned, so the closest
	// segment point is the segment height nearest the box's vertical span.
	s := gamemath.Clamp(center.Y(), y0, y1)
	sp := mgl64.Vec3{p.X(), s, p.Z()}
	q := mgl64.Vec3{
		gamemath.Clamp(sp.X(), bmin.X(), bmax.X()),
		gamemath.Clamp(sp.Y(), bmin.Y(), bmax.Y()),
		gamemath.Clamp(sp.Z(), bmin.Z(), bmax.Z()),
	}

	v := q.Sub(sp)
	d := v.Len()
	if d >= c.Radius {
		return mgl64.Vec3{}, nil, false
	}
	if d > separationEpsilon {
		return v.Mul(1 / d), []Contact{{Point: q, Penetration: c.Radius - d}}, true
	}

	// Segment point inside the box: separate along the axis of least overlap.
	ox := box.HalfExtents.X() + c.Radius - math.Abs(p.X()-center.X())
	oz := box.HalfExtents.Z() + c.Radius - math.Abs(p.Z()-center.Z())
	var oy float64
	var ny float64
	if p.Y() >= center.Y() {
		oy = bmax.Y() - (y0 - c.Radius)
		ny = -1
	} else {
		oy = (y1 + c.Radius) - bmin.Y()
		ny = 1
	}

	switch {
	case oy <= ox && oy <= oz:
		return mgl64.Vec3{0, ny, 0}, []Contact{{Point: sp, Penetration: oy}}, true
	case ox <= oz:
		return mgl64.Vec3{towards(p.X(), center.X()), 0, 0}, []Contact{{Point: sp, Penetration: ox}}, true
	default:
		return mgl64.Vec3{0, 0, towards(p.Z(), center.Z())}, []Contact{{Point: sp, Penetration: oz}}, true
	}
}

func capsuleCapsule(p1 mgl64.Vec3, c1 Collider, p2 mgl64.Vec3, c2 Collider) (mgl64.Vec3, []Contact, bool) {
	a0, a1 := p1.Y()-c1.HalfHeight, p1.Y()+c1.HalfHeight
	b0, b1 := p2.Y()-c2.HalfHeight, p2.Y()+c2.HalfHeight

	var ya, yb float64
	switch lo, hi := math.Max(a0, b0), math.Min(a1, b1); {
	case lo <= hi:
		ya = (lo + hi) / 2
		yb = ya
	case a1 < b0:
		ya, yb = a1, b0
	default:
		ya, yb = a0, b1
	}

	pa := mgl64.Vec3{p1.X(), ya, p1.Z()}
	pb := mgl64.Vec3{p2.X(), yb, p2.Z()}
	v := pb.Sub(pa)
	d := v.Len()
	reach := c1.Radius + c2.Radius
	if d >= reach {
		return mgl64.Vec3{}, nil, false
	}

	n := gamemath.Up
	if d > separationEpsilon {
		n = v.Mul(1 / d)
	}
	return n, []Contact{{Point: pa.Add(n.Mul(c1.Radius)), Penetration: reach - d}}, true
}

func boxBox(p1 mgl64.Vec3, c1 Collider, p2 mgl64.Vec3, c2 Collider) (mgl64.Vec3, []Contact, bool) {
	delta := p2.Sub(p1)
	best := -1
	bestOverlap := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		overlap := c1.HalfExtents[axis] + c2.HalfExtents[axis] - math.Abs(delta[axis])
		if overlap <= 0 {
			return mgl64.Vec3{}, nil, false
		}
		if overlap < bestOverlap {
			best, bestOverlap = axis, overlap
		}
	}

	var n mgl64.Vec3
	n[best] = towards(p1[best], p2[best])
	mid := p1.Add(p2).Mul(0.5)
	return n, []Contact{{Point: mid, Penetration: bestOverlap}}, true
}

// towards returns the sign of to-from, defaulting to +1.
func towards(from, to float64) float64 {
	if to < from {
		return -1
	}
	return 1
}
