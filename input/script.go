package input

import (
	"fmt"
	"strconv"
	"strings"
)

// LookStep is the look delta applied by one '<' or '>' in a script.
const LookStep = 20.0

// Step holds one input state for a number of ticks.
type Step struct {
	Input RawInput
	Ticks int
}

// ParseScript parses a comma separated list of steps. Each step is a set of
// keys joined by '+' or written together, optionally followed by "*N" to
// hold it for N ticks:
//
//	W*20,WD*10,SPACE,W+SPACE*2,>*3,_*5
//
// W A S D move, SPACE jumps, '<' and '>' look left and right, '_' is idle.
func ParseScript(script string) ([]Step, error) {
	var steps []Step
	for _, raw := range strings.Split(script, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}

		ticks := 1
		if keys, count, ok := strings.Cut(tok, "*"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("step %q: invalid count", tok)
			}
			ticks = n
			tok = strings.TrimSpace(keys)
		}

		in, err := parseKeys(tok)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", raw, err)
		}
		steps = append(steps, Step{Input: in, Ticks: ticks})
	}
	return steps, nil
}

func parseKeys(tok string) (RawInput, error) {
	var in RawInput
	for _, part := range strings.Split(strings.ToUpper(tok), "+") {
		if part == "SPACE" {
			in.Jump = true
			continue
		}
		for _, r := range part {
			switch r {
			case 'W':
				in.Forward = true
			case 'S':
				in.Back = true
			case 'A':
				in.Left = true
			case 'D':
				in.Right = true
			case '<':
				in.Look[0] -= LookStep
			case '>':
				in.Look[0] += LookStep
			case '_':
			default:
				return RawInput{}, fmt.Errorf("unknown key %q", r)
			}
		}
	}
	return in, nil
}

// ScriptSampler replays parsed steps one tick at a time. When the script is
// exhausted it either loops or idles.
type ScriptSampler struct {
	steps []Step
	loop  bool
	idx   int
	tick  int
}

// NewScriptSampler parses script into a sampler.
func NewScriptSampler(script string, loop bool) (*ScriptSampler, error) {
	steps, err := ParseScript(script)
	if err != nil {
		return nil, err
	}
	return &ScriptSampler{steps: steps, loop: loop}, nil
}

func (s *ScriptSampler) Sample() RawInput {
	if s.idx >= len(s.steps) {
		if !s.loop || len(s.steps) == 0 {
			return RawInput{}
		}
		s.idx = 0
	}
	step := s.steps[s.idx]
	s.tick++
	if s.tick >= step.Ticks {
		s.tick = 0
		s.idx++
	}
	return step.Input
}

// Done reports whether a non-looping script has been fully replayed.
func (s *ScriptSampler) Done() bool {
	return !s.loop && s.idx >= len(s.steps)
}
