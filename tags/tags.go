package tags

import "github.com/yohamta/donburi"

var (
	Character       = donburi.NewTag().SetName("Character")
	LocalCharacter  = donburi.NewTag().SetName("LocalCharacter")
	RemoteCharacter = donburi.NewTag().SetName("RemoteCharacter")
	Obstacle        = donburi.NewTag().SetName("Obstacle")
	Sensor          = donburi.NewTag().SetName("Sensor")
)
