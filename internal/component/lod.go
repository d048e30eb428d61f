package component

// LodLevel is the generic detail bucket for vehicles, NPCs, and buildings.
// Lower value means closer and more detailed.
type LodLevel uint8

const (
	LodHigh LodLevel = iota
	LodMedium
	LodLow
	LodSleep
)

func (l LodLevel) String() string {
	switch l {
	case LodHigh:
		return "high"
	case LodMedium:
		return "medium"
	case LodLow:
		return "low"
	case LodSleep:
		return "sleep"
	}
	return "unknown"
}

// VegetationDetail is the vegetation-specific LOD ladder. Trees degrade to
// billboards before culling instead of sleeping.
type VegetationDetail uint8

const (
	VegFull VegetationDetail = iota
	VegMedium
	VegBillboard
	VegCulled
)

func (v VegetationDetail) String() string {
	switch v {
	case VegFull:
		return "full"
	case VegMedium:
		return "medium"
	case VegBillboard:
		return "billboard"
	case VegCulled:
		return "culled"
	}
	return "unknown"
}

// UnifiedCullable makes an entity eligible for distance culling and LOD.
// Level/VegDetail hold the current band; the LOD system owns all writes.
type UnifiedCullable struct {
	Kind             ContentKind
	CullDistance     float32
	HysteresisMargin float32 // fraction of threshold, e.g. 0.05
	Culled           bool
	Visible          bool
	Level            LodLevel
	VegDetail        VegetationDetail
}
