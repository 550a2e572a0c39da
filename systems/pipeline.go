package systems

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrDuplicateStage = errors.New("duplicate stage")
	ErrStageOrder     = errors.New("stage reads data that no earlier stage writes")
)

// Resource names a piece of data a stage reads or writes.
type Resource string

const (
	ResIntents  Resource = "intents"
	ResVelocity Resource = "velocity"
	ResPosition Resource = "position"
	ResYaw      Resource = "yaw"
	ResGrounded Resource = "grounded"
	ResContacts Resource = "contacts"
)

// CarriedResources persist across substeps, so reading them before they are
// rewritten within a substep sees the previous substep's value.
var CarriedResources = []Resource{ResIntents, ResVelocity, ResPosition, ResYaw, ResGrounded}

// Stage is one step of the substep pipeline.
type Stage struct {
	Name   string
	Reads  []Resource
	Writes []Resource
	Run    func(*Simulation)
}

// Pipeline is an ordered, validated list of stages run once per substep.
type Pipeline struct {
	stages []Stage
}

// NewPipeline validates that stage names are unique and that every read is
// either carried or written by an earlier stage.
func NewPipeline(carried []Resource, stages ...Stage) (*Pipeline, error) {
	available := make(map[Resource]bool, len(carried))
	for _, r := range carried {
		available[r] = true
	}

	names := make(map[string]bool, len(stages))
	for _, st := range stages {
		if names[st.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStage, st.Name)
		}
		names[st.Name] = true

		for _, r := range st.Reads {
			if !available[r] {
				return nil, fmt.Errorf("%w: %s reads %s", ErrStageOrder, st.Name, r)
			}
		}
		for _, r := range st.Writes {
			available[r] = true
		}
	}

	return &Pipeline{stages: slices.Clone(stages)}, nil
}

// DefaultPipeline is the character controller substep:
// controls, gravity, damping, integrate, contacts, resolve, grounding.
func DefaultPipeline() (*Pipeline, error) {
	return NewPipeline(CarriedResources,
		Stage{
			Name:   "controls",
			Reads:  []Resource{ResIntents, ResGrounded, ResVelocity, ResYaw},
			Writes: []Resource{ResIntents, ResVelocity, ResYaw},
			Run:    ApplyControls,
		},
		Stage{
			Name:   "gravity",
			Reads:  []Resource{ResVelocity},
			Writes: []Resource{ResVelocity},
			Run:    ApplyGravity,
		},
		Stage{
			Name:   "damping",
			Reads:  []Resource{ResVelocity},
			Writes: []Resource{ResVelocity},
			Run:    ApplyDamping,
		},
		Stage{
			Name:   "integrate",
			Reads:  []Resource{ResVelocity, ResPosition},
			Writes: []Resource{ResPosition},
			Run:    IntegratePositions,
		},
		Stage{
			Name:   "contacts",
			Reads:  []Resource{ResPosition},
			Writes: []Resource{ResContacts},
			Run:    GenerateContacts,
		},
		Stage{
			Name:   "resolve",
			Reads:  []Resource{ResContacts, ResPosition, ResVelocity},
			Writes: []Resource{ResPosition, ResVelocity},
			Run:    ResolveKinematicCollisions,
		},
		Stage{
			Name:   "grounding",
			Reads:  []Resource{ResPosition},
			Writes: []Resource{ResGrounded},
			Run:    UpdateGrounded,
		},
	)
}

// Run executes every stage in order.
func (p *Pipeline) Run(s *Simulation) {
	for _, st := range p.stages {
		st.Run(s)
	}
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	out := make([]string, len(p.stages))
	for i, st := range p.stages {
		out[i] = st.Name
	}
	return out
}
