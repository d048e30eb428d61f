package component

import "github.com/driftcity/engine/internal/mathx"

// Button flags packed into ControlState.Buttons.
const (
	BtnHandbrake uint32 = 1 << iota
	BtnBoost
	BtnHorn
	BtnLights
	BtnEnterExit
	BtnAfterburner
	BtnAnchor
)

// ControlState is the unified control surface every vehicle system reads.
// Throttle, brake, and vertical collapse are absolute [0,1] (vertical is
// [-1,1]); steering, pitch, roll, yaw are [-1,1]. The input system writes the
// active entity's state; AI drivers write everyone else's.
type ControlState struct {
	Throttle float32 // [0,1]
	Brake    float32 // [0,1]
	Steering float32 // [-1,1], positive steers left
	Pitch    float32 // [-1,1]
	Roll     float32 // [-1,1]
	Yaw      float32 // [-1,1]
	Vertical float32 // [-1,1], collective / dive
	Buttons  uint32
}

// Pressed reports whether the given button flag is set.
func (c *ControlState) Pressed(flag uint32) bool {
	return c.Buttons&flag != 0
}

// Sanitize clamps all analog fields into range and zeroes non-finite values.
// Returns true if any field had to be corrected for being non-finite.
func (c *ControlState) Sanitize() bool {
	corrected := !mathx.IsFinite(c.Throttle) || !mathx.IsFinite(c.Brake) ||
		!mathx.IsFinite(c.Steering) || !mathx.IsFinite(c.Pitch) ||
		!mathx.IsFinite(c.Roll) || !mathx.IsFinite(c.Yaw) ||
		!mathx.IsFinite(c.Vertical)

	c.Throttle = mathx.ClampFinite(c.Throttle, 0, 1)
	c.Brake = mathx.ClampFinite(c.Brake, 0, 1)
	c.Steering = mathx.ClampFinite(c.Steering, -1, 1)
	c.Pitch = mathx.ClampFinite(c.Pitch, -1, 1)
	c.Roll = mathx.ClampFinite(c.Roll, -1, 1)
	c.Yaw = mathx.ClampFinite(c.Yaw, -1, 1)
	c.Vertical = mathx.ClampFinite(c.Vertical, -1, 1)
	return corrected
}

// Reset zeroes every field. Called when an entity loses its control source.
func (c *ControlState) Reset() {
	*c = ControlState{}
}
