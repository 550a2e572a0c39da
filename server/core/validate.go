package core

import (
	"github.com/automoto/netcharacon/shared/gamemath"
	"github.com/automoto/netcharacon/shared/messages"
)

// SanitizeIntent clamps the move axis to [-1,1] and the look delta to
// [-maxAngular, maxAngular], replacing NaN and infinities with 0. It reports
// whether anything was changed.
func SanitizeIntent(in messages.ControlIntent, maxAngular float64) (messages.ControlIntent, bool) {
	linear, linearChanged := gamemath.SanitizeAxis(in.Linear, 1)
	angular, angularChanged := gamemath.SanitizeAxis(in.Angular, maxAngular)
	in.Linear = linear
	in.Angular = angular
	return in, linearChanged || angularChanged
}
