package world

import (
	"math"

	"github.com/driftcity/engine/internal/core/ecs"
	"go.uber.org/zap"
)

// Clock is the process-wide timing service: monotonic sim time, the frame
// counter, and interval throttles keyed by system id or entity. Accessed only
// from the game loop goroutine — no locks.
type Clock struct {
	current float64
	frame   uint64

	systems  map[string]*throttle
	entities map[ecs.EntityID]*entityThrottle

	log *zap.Logger
}

type throttle struct {
	interval float64
	lastRun  float64
	hasRun   bool
}

type entityThrottle struct {
	throttle
	kind       string
	registered float64
}

func NewClock(log *zap.Logger) *Clock {
	return &Clock{
		systems:  make(map[string]*throttle, 16),
		entities: make(map[ecs.EntityID]*entityThrottle, 1024),
		log:      log,
	}
}

// Now returns the accumulated sim time in seconds.
func (c *Clock) Now() float64 { return c.current }

// Frame returns the current frame number. Incremented once per Tick.
func (c *Clock) Frame() uint64 { return c.frame }

// Tick advances sim time. Non-finite or negative deltas are rejected and
// logged; a zero delta is legal and advances nothing but still counts the
// frame.
func (c *Clock) Tick(delta float32) {
	d := float64(delta)
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		c.log.Warn("clock: rejecting invalid delta", zap.Float64("delta", d))
		return
	}
	c.current += d
	c.frame++
}

// RegisterSystem sets the throttle interval for a system id. Re-registering
// updates the interval but keeps the last-run time.
func (c *Clock) RegisterSystem(id string, interval float32) {
	if t, ok := c.systems[id]; ok {
		t.interval = float64(interval)
		return
	}
	c.systems[id] = &throttle{interval: float64(interval)}
}

// ShouldRunSystem reports whether the system's interval has elapsed, and on
// true advances its last-run time. Unknown ids return false without side
// effect.
func (c *Clock) ShouldRunSystem(id string) bool {
	t, ok := c.systems[id]
	if !ok {
		return false
	}
	return t.gate(c.current)
}

// RegisterEntity sets a per-entity throttle (LOD checks, AI decisions).
func (c *Clock) RegisterEntity(id ecs.EntityID, kind string, interval float32) {
	if t, ok := c.entities[id]; ok {
		t.interval = float64(interval)
		t.kind = kind
		return
	}
	c.entities[id] = &entityThrottle{
		throttle:   throttle{interval: float64(interval)},
		kind:       kind,
		registered: c.current,
	}
}

// ShouldUpdateEntity is ShouldRunSystem keyed by entity.
func (c *Clock) ShouldUpdateEntity(id ecs.EntityID) bool {
	t, ok := c.entities[id]
	if !ok {
		return false
	}
	return t.gate(c.current)
}

// UnregisterEntity drops an entity's throttle. Called on despawn.
func (c *Clock) UnregisterEntity(id ecs.EntityID) {
	delete(c.entities, id)
}

// CleanupOldTimers removes per-entity timers whose last activity is older
// than maxAge seconds. Returns the number removed.
func (c *Clock) CleanupOldTimers(maxAge float32) int {
	cutoff := c.current - float64(maxAge)
	removed := 0
	for id, t := range c.entities {
		last := t.registered
		if t.hasRun {
			last = t.lastRun
		}
		if last < cutoff {
			delete(c.entities, id)
			removed++
		}
	}
	return removed
}

// EntityTimerCount returns how many per-entity throttles are live.
func (c *Clock) EntityTimerCount() int { return len(c.entities) }

func (t *throttle) gate(now float64) bool {
	if t.hasRun && now-t.lastRun < t.interval {
		return false
	}
	t.lastRun = now
	t.hasRun = true
	return true
}
