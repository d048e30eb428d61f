package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: event dispatch, input poll, dirty marking
	PhaseUpdate                  // 1: streaming, generation, control, forces, batches
	PhasePostUpdate              // 2: LOD, integration clamps, metrics
	PhasePersist                 // 3: snapshot writes
	PhaseCleanup                 // 4: destroy queued entities, grid record removal
)

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
