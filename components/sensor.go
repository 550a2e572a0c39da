package components

import "github.com/yohamta/donburi"

// OverlapData lists the sensor volumes a character touched during the last
// physics tick.
type OverlapData struct {
	Sensors []string
}

var Overlap = donburi.NewComponentType[OverlapData]()
