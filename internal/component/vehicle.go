package component

// VehicleKind selects which force system simulates the entity.
type VehicleKind uint8

const (
	VehicleCar VehicleKind = iota
	VehicleHelicopter
	VehicleJet
	VehicleYacht
)

func (k VehicleKind) String() string {
	switch k {
	case VehicleCar:
		return "car"
	case VehicleHelicopter:
		return "helicopter"
	case VehicleJet:
		return "jet"
	case VehicleYacht:
		return "yacht"
	}
	return "unknown"
}

// VehicleState is the mutable runtime half of a vehicle. The immutable half
// (caps, geometry, sensitivities) lives in the spec table and is looked up by
// SpecName.
type VehicleState struct {
	Kind         VehicleKind
	SpecName     string
	Damage       float32 // [0,1]
	Fuel         float32 // [0,1]
	ColorIndex   uint8
	LastLodCheck float64 // timing-service seconds
	Submersion   float32 // [0,1], yachts only; fraction of hull under water
}

// AIMode selects the deterministic driver for non-active vehicles and NPCs.
type AIMode uint8

const (
	AIIdle AIMode = iota
	AIFollowRoad
	AIWander
)

// AIDriver produces ControlState for entities the player is not controlling.
// Seeded per entity so replays of the same world are identical.
type AIDriver struct {
	Mode         AIMode
	Seed         uint32
	RoadDist     float32 // arc-length progress along the assigned road spline
	RoadID       uint32
	Forward      bool
	LastDecision float64 // sim time of the previous drive decision
}
