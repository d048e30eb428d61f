package roads

// RoadType classifies a road for generation spacing, width, and AI speed
// limits. Both the content generator and vehicle steering consume this one
// definition.
type RoadType uint8

const (
	RoadHighway RoadType = iota
	RoadMain
	RoadSide
	RoadAlley
)

func (t RoadType) String() string {
	switch t {
	case RoadHighway:
		return "highway"
	case RoadMain:
		return "main"
	case RoadSide:
		return "side"
	case RoadAlley:
		return "alley"
	}
	return "unknown"
}

// Width returns the half-width of the paved surface in world units.
func (t RoadType) Width() float32 {
	switch t {
	case RoadHighway:
		return 12
	case RoadMain:
		return 8
	case RoadSide:
		return 5
	case RoadAlley:
		return 3
	}
	return 5
}

// SpeedLimit returns the AI cruise speed in units/second.
func (t RoadType) SpeedLimit() float32 {
	switch t {
	case RoadHighway:
		return 35
	case RoadMain:
		return 20
	case RoadSide:
		return 12
	case RoadAlley:
		return 7
	}
	return 12
}
