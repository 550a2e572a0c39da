package systems

import (
	"github.com/automoto/netcharacon/components"
	"github.com/automoto/netcharacon/shared/netcomponents"
	"github.com/automoto/netcharacon/tags"
	"github.com/yohamta/donburi"
)

// Snapshot maps a character state to its replicated pose.
func Snapshot(state components.CharacterStateData, lastSeq uint32) netcomponents.NetCharacterData {
	return netcomponents.NetCharacterData{
		X:            state.Position.X(),
		Y:            state.Position.Y(),
		Z:            state.Position.Z(),
		Yaw:          state.Yaw,
		Grounded:     state.Grounded,
		LastSequence: lastSeq,
	}
}

// PublishPoses writes the snapshot of every replicated character.
func PublishPoses(w donburi.World) {
	tags.Character.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetCharacter) {
			return
		}
		state := components.CharacterState.Get(e)
		lastSeq := components.ActionBuffer.Get(e).LastDrained()
		netcomponents.NetCharacter.SetValue(e, Snapshot(*state, lastSeq))
	})
}
