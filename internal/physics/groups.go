package physics

// Collision groups are 16-bit masks used as a (membership, filter) pair.
// This is the single authoritative bit assignment; generation, vehicles, and
// characters all reference it.
const (
	GroupStatic    uint16 = 1 << 0 // terrain, roads, buildings
	GroupVehicle   uint16 = 1 << 1
	GroupCharacter uint16 = 1 << 2
	GroupDebris    uint16 = 1 << 3
	GroupSensor    uint16 = 1 << 4
	GroupWater     uint16 = 1 << 5
)

// CollisionGroups pairs what an object is with what it collides against.
type CollisionGroups struct {
	Membership uint16
	Filter     uint16
}

// Interacts reports whether two group pairs collide: each side's membership
// must pass the other's filter.
func (g CollisionGroups) Interacts(o CollisionGroups) bool {
	return g.Membership&o.Filter != 0 && o.Membership&g.Filter != 0
}

// VehicleGroups is the standard pair for drivable vehicles.
func VehicleGroups() CollisionGroups {
	return CollisionGroups{
		Membership: GroupVehicle,
		Filter:     GroupStatic | GroupVehicle | GroupCharacter | GroupDebris,
	}
}

// CharacterGroups is the standard pair for NPCs and the player on foot.
func CharacterGroups() CollisionGroups {
	return CollisionGroups{
		Membership: GroupCharacter,
		Filter:     GroupStatic | GroupVehicle | GroupCharacter,
	}
}

// StaticGroups is the standard pair for generated world content.
func StaticGroups() CollisionGroups {
	return CollisionGroups{
		Membership: GroupStatic,
		Filter:     GroupVehicle | GroupCharacter | GroupDebris,
	}
}
