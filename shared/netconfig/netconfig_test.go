package netconfig

import "testing"

func TestConnStateTransitions(t *testing.T) {
	tests := []struct {
		from, to ConnState
		want     bool
	}{
		{Connecting, Connected, true},
		{Connecting, Disconnected, true},
		{Connected, Disconnected, true},
		{Connected, Connecting, false},
		{Disconnected, Connecting, false},
		{Disconnected, Connected, false},
		{Connecting, Connecting, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
