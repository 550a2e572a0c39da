package physics

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// Resolv tags for broad phase objects
const (
	TagStatic    = "static"
	TagKinematic = "kinematic"
	TagSensor    = "sensor"
)

// resolv works in whole grid units and trims one unit off every object's far
// edge, so world metres are scaled up and objects padded before insertion.
const (
	gridUnitsPerMetre = 16.0
	gridPadding       = 2.0
)

// Space holds every body of one simulation instance.
type Space struct {
	grid   *resolv.Space
	extent float64
	bodies []*Body
	nextID uint64
}

// NewSpace creates a space whose broad phase covers [-extent, extent] on X
// and Z with square cells of cellSize metres. Bodies outside that area never
// produce contacts.
func NewSpace(extent float64, cellSize int) *Space {
	size := int(math.Ceil(2 * extent * gridUnitsPerMetre))
	cell := int(float64(cellSize) * gridUnitsPerMetre)
	return &Space{
		grid:   resolv.NewSpace(size, size, cell, cell),
		extent: extent,
	}
}

// Add places b in the space and assigns its ID.
func (s *Space) Add(b *Body) *Body {
	s.nextID++
	b.ID = s.nextID
	b.space = s

	tag := TagStatic
	switch {
	case b.Sensor:
		tag = TagSensor
	case b.IsKinematic():
		tag = TagKinematic
	}

	x, y, w, h := s.gridRect(b.Position, b.Collider)
	b.object = resolv.NewObject(x, y, w, h, tag)
	b.object.SetShape(resolv.NewRectangle(0, 0, w, h))
	b.object.Data = b
	s.grid.Add(b.object)

	s.bodies = append(s.bodies, b)
	return b
}

// Remove takes b out of the space. Removing a body twice is a no-op.
func (s *Space) Remove(b *Body) {
	if b == nil || b.space != s {
		return
	}
	s.grid.Remove(b.object)
	s.bodies = slices.DeleteFunc(s.bodies, func(o *Body) bool { return o == b })
	b.space = nil
	b.object = nil
}

// SetPosition moves b and refreshes its broad phase cells.
func (s *Space) SetPosition(b *Body, pos mgl64.Vec3) {
	b.Position = pos
	if b.object == nil {
		return
	}
	x, y, _, _ := s.gridRect(pos, b.Collider)
	b.object.X = x
	b.object.Y = y
	b.object.Update()
}

// Bodies returns the bodies in insertion order.
func (s *Space) Bodies() []*Body {
	return s.bodies
}

// Len returns the number of bodies.
func (s *Space) Len() int {
	return len(s.bodies)
}

// Contacts runs the broad and narrow phase and returns one manifold per
// overlapping pair with at least one kinematic side. Body1 is always the
// kinematic body (the lower ID when both are). Sensor pairs are flagged,
// never dropped.
func (s *Space) Contacts() []Manifold {
	var out []Manifold
	for _, b := range s.bodies {
		if !b.IsKinematic() {
			continue
		}
		for _, other := range s.candidates(b, 0, 0) {
			if other.IsKinematic() && other.ID < b.ID {
				continue
			}
			if b.Sensor && other.Sensor {
				continue
			}
			n, contacts, ok := collide(b.Position, b.Collider, other.Position, other.Collider)
			if !ok {
				continue
			}
			out = append(out, Manifold{
				Body1:    b,
				Body2:    other,
				Normal:   n,
				Contacts: contacts,
				Sensor:   b.Sensor || other.Sensor,
			})
		}
	}
	return out
}

// candidates returns the bodies sharing broad phase cells with b, shifted by
// (dx, dz) metres, ordered by ID.
func (s *Space) candidates(b *Body, dx, dz float64) []*Body {
	if b.object == nil {
		return nil
	}
	check := b.object.Check(dx*gridUnitsPerMetre, dz*gridUnitsPerMetre)
	if check == nil {
		return nil
	}

	out := make([]*Body, 0, len(check.Objects))
	for _, o := range check.Objects {
		if other, ok := o.Data.(*Body); ok && other != b {
			out = append(out, other)
		}
	}
	slices.SortFunc(out, func(a, b *Body) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

func (s *Space) gridRect(pos mgl64.Vec3, c Collider) (x, y, w, h float64) {
	hx, hz := c.planarHalf()
	x = (pos.X()-hx+s.extent)*gridUnitsPerMetre - gridPadding
	y = (pos.Z()-hz+s.extent)*gridUnitsPerMetre - gridPadding
	w = 2*hx*gridUnitsPerMetre + 2*gridPadding
	h = 2*hz*gridUnitsPerMetre + 2*gridPadding
	return x, y, w, h
}
