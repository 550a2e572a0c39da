package archetypes

import (
	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/tags"
	"github.com/yohamta/donburi"
)

var (
	// Character is simulated by this process: the server's characters and the
	// client's own predicted character.
	Character = newArchetype(
		tags.Character,
		components.CharacterState,
		components.Movement,
		components.ActionBuffer,
		components.Body,
		components.Overlap,
	)
	// RemoteCharacter is display-only on a client. Its body blocks the local
	// character but is never simulated.
	RemoteCharacter = newArchetype(
		tags.RemoteCharacter,
		components.RemoteView,
		components.Body,
	)
	Obstacle = newArchetype(
		tags.Obstacle,
		components.Body,
	)
	Sensor = newArchetype(
		tags.Sensor,
		components.Body,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
