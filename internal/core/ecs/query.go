package ecs

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				fn(id, a, b)
			}
		}
	} else {
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok {
				fn(id, a, b)
			}
		}
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], sc *PtrComponentStore[C], fn func(EntityID, *A, *B, *C)) {
	// Iterate the smallest store
	smallest := sa.Len()
	which := 0
	if sb.Len() < smallest {
		smallest = sb.Len()
		which = 1
	}
	if sc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		for id, a := range sa.data {
			if b, ok := sb.data[id]; ok {
				if c, ok := sc.data[id]; ok {
					fn(id, a, b, c)
				}
			}
		}
	case 1:
		for id, b := range sb.data {
			if a, ok := sa.data[id]; ok {
				if c, ok := sc.data[id]; ok {
					fn(id, a, b, c)
				}
			}
		}
	case 2:
		for id, c := range sc.data {
			if a, ok := sa.data[id]; ok {
				if b, ok := sb.data[id]; ok {
					fn(id, a, b, c)
				}
			}
		}
	}
}

// Each4 iterates over entities that have components A, B, C, and D. The
// vehicle force systems join (ControlState, VehicleState, Transform,
// Velocity), which is the only four-way join in the engine; A should be the
// smallest store (the per-kind vehicle state).
func Each4[A, B, C, D any](sa *PtrComponentStore[A], sb *PtrComponentStore[B], sc *PtrComponentStore[C], sd *PtrComponentStore[D], fn func(EntityID, *A, *B, *C, *D)) {
	for id, a := range sa.data {
		b, ok := sb.data[id]
		if !ok {
			continue
		}
		c, ok := sc.data[id]
		if !ok {
			continue
		}
		d, ok := sd.data[id]
		if !ok {
			continue
		}
		fn(id, a, b, c, d)
	}
}

// EachTagged iterates over entities carrying the tag that also have component A.
func EachTagged[A any](tags *TagStore, sa *PtrComponentStore[A], fn func(EntityID, *A)) {
	for id := range tags.data {
		if a, ok := sa.data[id]; ok {
			fn(id, a)
		}
	}
}
