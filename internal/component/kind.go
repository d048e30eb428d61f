package component

// ContentKind classifies everything the streamer can place in the world.
// It routes spawn events, placement-grid records, LOD thresholds, and
// despawn bookkeeping.
type ContentKind uint8

const (
	KindRoad ContentKind = iota
	KindIntersection
	KindBuilding
	KindLandmark
	KindTree
	KindVehicle
	KindNPC
	KindTerrain
)

func (k ContentKind) String() string {
	switch k {
	case KindRoad:
		return "road"
	case KindIntersection:
		return "intersection"
	case KindBuilding:
		return "building"
	case KindLandmark:
		return "landmark"
	case KindTree:
		return "tree"
	case KindVehicle:
		return "vehicle"
	case KindNPC:
		return "npc"
	case KindTerrain:
		return "terrain"
	}
	return "unknown"
}

// Static reports whether entities of this kind never move once placed.
// Static content skips per-entity distance epochs in the distance cache.
func (k ContentKind) Static() bool {
	switch k {
	case KindVehicle, KindNPC:
		return false
	}
	return true
}
