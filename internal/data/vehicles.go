package data

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// VehicleSpecs holds the static configuration for one vehicle type, loaded
// from YAML. Specs are immutable for the lifetime of every entity that
// references them.
type VehicleSpecs struct {
	Name         string  `yaml:"name"`
	Kind         string  `yaml:"kind"` // car, helicopter, jet, yacht
	MaxSpeed     float32 `yaml:"max_speed"`
	Acceleration float32 `yaml:"acceleration"`

	LinearDamping  float32 `yaml:"linear_damping"`  // drag base, applied as v *= drag^dt
	AngularDamping float32 `yaml:"angular_damping"`

	// Geometry
	HalfExtentX float32 `yaml:"half_extent_x"`
	HalfExtentY float32 `yaml:"half_extent_y"`
	HalfExtentZ float32 `yaml:"half_extent_z"`
	Mass        float32 `yaml:"mass"`

	// Control sensitivities
	SteerRate    float32 `yaml:"steer_rate"`    // rad/s at full steering, low speed
	PitchRate    float32 `yaml:"pitch_rate"`    // rad/s
	RollRate     float32 `yaml:"roll_rate"`     // rad/s
	YawRate      float32 `yaml:"yaw_rate"`      // rad/s
	VerticalRate float32 `yaml:"vertical_rate"` // climb accel, heli/yacht

	// Grip/drag profile
	Grip      float32 `yaml:"grip"`       // lateral velocity kill fraction per second
	BrakePow  float32 `yaml:"brake_pow"`  // braking deceleration
	BoostMult float32 `yaml:"boost_mult"` // throttle multiplier while boosting

	// Water profile (yachts)
	HullVolume float32 `yaml:"hull_volume"` // m^3, full submersion displaces this
	WaterDrag  float32 `yaml:"water_drag"`  // drag coefficient at zero submersion
}

// Validate rejects specs that would break the force pipeline. Negative
// speeds and non-positive damping are configuration errors, not tunings.
func (s *VehicleSpecs) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("vehicle spec with empty name")
	}
	if s.MaxSpeed < 0 {
		return fmt.Errorf("vehicle %s: negative max_speed %.2f", s.Name, s.MaxSpeed)
	}
	for _, d := range []struct {
		name string
		v    float32
	}{
		{"linear_damping", s.LinearDamping},
		{"angular_damping", s.AngularDamping},
	} {
		f := float64(d.v)
		if math.IsNaN(f) || math.IsInf(f, 0) || d.v <= 0 {
			return fmt.Errorf("vehicle %s: %s must be finite and positive, got %v", s.Name, d.name, d.v)
		}
	}
	return nil
}

type vehicleFile struct {
	Vehicles []VehicleSpecs `yaml:"vehicles"`
}

// VehicleTable holds all vehicle specs indexed by name, with one default per
// kind for degraded-mode spawns when an asset fails to load.
type VehicleTable struct {
	byName map[string]*VehicleSpecs
	byKind map[string][]*VehicleSpecs
}

// LoadVehicleTable reads and validates a vehicle spec file.
func LoadVehicleTable(path string) (*VehicleTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vehicle specs %s: %w", path, err)
	}
	var f vehicleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse vehicle specs %s: %w", path, err)
	}
	t := newVehicleTable()
	for i := range f.Vehicles {
		s := &f.Vehicles[i]
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("vehicle specs %s: %w", path, err)
		}
		t.add(s)
	}
	if len(t.byName) == 0 {
		return nil, fmt.Errorf("vehicle specs %s: no vehicles defined", path)
	}
	return t, nil
}

// DefaultVehicleTable is the built-in fallback used when the asset file is
// missing or rejected. One sane entry per kind.
func DefaultVehicleTable() *VehicleTable {
	t := newVehicleTable()
	for _, s := range []VehicleSpecs{
		{
			Name: "default_car", Kind: "car",
			MaxSpeed: 40, Acceleration: 12,
			LinearDamping: 0.6, AngularDamping: 0.3,
			HalfExtentX: 1, HalfExtentY: 0.7, HalfExtentZ: 2.2, Mass: 1200,
			SteerRate: 1.2, Grip: 4.0, BrakePow: 20, BoostMult: 1.5,
		},
		{
			Name: "default_helicopter", Kind: "helicopter",
			MaxSpeed: 55, Acceleration: 10,
			LinearDamping: 0.8, AngularDamping: 0.5,
			HalfExtentX: 1.5, HalfExtentY: 1.5, HalfExtentZ: 4, Mass: 2500,
			PitchRate: 0.9, RollRate: 1.1, YawRate: 0.8, VerticalRate: 14,
		},
		{
			Name: "default_jet", Kind: "jet",
			MaxSpeed: 140, Acceleration: 30,
			LinearDamping: 0.2, AngularDamping: 0.4,
			HalfExtentX: 4, HalfExtentY: 1.2, HalfExtentZ: 7, Mass: 6000,
			PitchRate: 1.4, RollRate: 2.2, YawRate: 0.5, BoostMult: 1.8,
		},
		{
			Name: "default_yacht", Kind: "yacht",
			MaxSpeed: 18, Acceleration: 4,
			LinearDamping: 0.9, AngularDamping: 0.6,
			HalfExtentX: 3, HalfExtentY: 2, HalfExtentZ: 9, Mass: 20000,
			SteerRate: 0.4, VerticalRate: 0,
			HullVolume: 60, WaterDrag: 2.5,
		},
	} {
		spec := s
		t.add(&spec)
	}
	return t
}

func newVehicleTable() *VehicleTable {
	return &VehicleTable{
		byName: make(map[string]*VehicleSpecs, 16),
		byKind: make(map[string][]*VehicleSpecs, 4),
	}
}

func (t *VehicleTable) add(s *VehicleSpecs) {
	t.byName[s.Name] = s
	t.byKind[s.Kind] = append(t.byKind[s.Kind], s)
}

// Get returns the spec by name.
func (t *VehicleTable) Get(name string) (*VehicleSpecs, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// ByKind returns all specs of one kind.
func (t *VehicleTable) ByKind(kind string) []*VehicleSpecs {
	return t.byKind[kind]
}

// Pick deterministically selects a spec of the given kind from a seed.
func (t *VehicleTable) Pick(kind string, seed uint32) *VehicleSpecs {
	specs := t.byKind[kind]
	if len(specs) == 0 {
		return nil
	}
	return specs[int(seed)%len(specs)]
}

// Len returns the number of specs loaded.
func (t *VehicleTable) Len() int { return len(t.byName) }
