package component

// Priority orders dirty-flag processing. Within a tick the batcher drains
// Critical first and Low last.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

// DirtyTransform marks an entity whose world transform must be recommitted
// (chunk ref refresh, distance-cache epoch bump).
type DirtyTransform struct {
	Priority    Priority
	FrameMarked uint64
}

// DirtyVisibility marks an entity whose render visibility must be applied.
type DirtyVisibility struct {
	Priority    Priority
	FrameMarked uint64
	Visible     bool
}

// DirtyPhysics marks an entity whose physics state needs revalidation
// (velocity clamps, sleep transitions).
type DirtyPhysics struct {
	Priority    Priority
	FrameMarked uint64
}

// DirtyLOD marks an entity with a pending LOD band change.
type DirtyLOD struct {
	Priority    Priority
	FrameMarked uint64
	Level       LodLevel
	VegDetail   VegetationDetail
}
