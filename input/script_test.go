package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("W*20, wd*10,SPACE,W+SPACE*2,>*3,_*5")
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	want := []Step{
		{Input: RawInput{Forward: true}, Ticks: 20},
		{Input: RawInput{Forward: true, Right: true}, Ticks: 10},
		{Input: RawInput{Jump: true}, Ticks: 1},
		{Input: RawInput{Forward: true, Jump: true}, Ticks: 2},
		{Input: RawInput{Look: mgl64.Vec2{LookStep, 0}}, Ticks: 3},
		{Input: RawInput{}, Ticks: 5},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, script := range []string{"W*0", "W*x", "Q", "SPACE*-1"} {
		if _, err := ParseScript(script); err == nil {
			t.Errorf("ParseScript(%q) should fail", script)
		}
	}
}

func TestScriptSamplerReplaysThenIdles(t *testing.T) {
	s, err := NewScriptSampler("W*2,SPACE", false)
	if err != nil {
		t.Fatal(err)
	}
	got := []RawInput{s.Sample(), s.Sample(), s.Sample(), s.Sample()}
	want := []RawInput{{Forward: true}, {Forward: true}, {Jump: true}, {}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !s.Done() {
		t.Error("sampler should be done")
	}
}

func TestScriptSamplerLoops(t *testing.T) {
	s, err := NewScriptSampler("A,D", true)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if !s.Sample().Left || !s.Sample().Right {
			t.Fatalf("loop %d broke the sequence", i)
		}
	}
	if s.Done() {
		t.Error("looping sampler is never done")
	}
}

func TestLinear(t *testing.T) {
	tests := []struct {
		in   RawInput
		want mgl64.Vec2
	}{
		{RawInput{}, mgl64.Vec2{}},
		{RawInput{Forward: true}, mgl64.Vec2{0, 1}},
		{RawInput{Back: true, Left: true}, mgl64.Vec2{-1, -1}},
		{RawInput{Left: true, Right: true}, mgl64.Vec2{}},
	}
	for _, tt := range tests {
		if got := tt.in.Linear(); got != tt.want {
			t.Errorf("%+v.Linear() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
