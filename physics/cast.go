package physics

import (
	"slices"

	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// CastHit is a body touched by a shape cast.
type CastHit struct {
	Body     *Body
	Distance float64    // travel along the cast direction at first touch
	Normal   mgl64.Vec3 // surface normal pointing back towards the caster
	Point    mgl64.Vec3
}

// CastShape sweeps shape from the position of from along dir for up to
// maxDist, sampling samples+1 evenly spaced placements including the start.
// Each touched body is reported once at its first touching sample, ordered
// by distance. The caster itself and sensors are ignored.
func (s *Space) CastShape(from *Body, shape Collider, dir mgl64.Vec3, maxDist float64, samples int) []CastHit {
	dir = gamemath.NormalizeOrZero3(dir)
	if dir == (mgl64.Vec3{}) || samples <= 0 || maxDist < 0 {
		return nil
	}

	cands := s.castCandidates(from, dir.Mul(maxDist))
	if len(cands) == 0 {
		return nil
	}

	var hits []CastHit
	seen := make(map[*Body]bool, len(cands))
	for i := 0; i <= samples; i++ {
		t := maxDist * float64(i) / float64(samples)
		pos := from.Position.Add(dir.Mul(t))
		for _, other := range cands {
			if seen[other] {
				continue
			}
			n, contacts, ok := collide(pos, shape, other.Position, other.Collider)
			if !ok {
				continue
			}
			seen[other] = true
			hits = append(hits, CastHit{
				Body:     other,
				Distance: t,
				Normal:   n.Mul(-1),
				Point:    contacts[0].Point,
			})
		}
	}

	slices.SortStableFunc(hits, func(a, b CastHit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

func (s *Space) castCandidates(from *Body, travel mgl64.Vec3) []*Body {
	out := s.candidates(from, 0, 0)
	if travel.X() != 0 || travel.Z() != 0 {
		for _, b := range s.candidates(from, travel.X(), travel.Z()) {
			if !slices.Contains(out, b) {
				out = append(out, b)
			}
		}
	}
	return slices.DeleteFunc(out, func(b *Body) bool { return b.Sensor })
}
