package system

import (
	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/config"
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/core/event"
	"github.com/driftcity/engine/internal/data"
	"github.com/driftcity/engine/internal/gen"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/roads"
	"github.com/driftcity/engine/internal/world"
	"go.uber.org/zap"
)

// MarkCounts tallies dirty-marker requests per kind since startup. The
// batcher's metrics snapshot reports them next to the processed counters.
type MarkCounts struct {
	Transform  uint64
	Visibility uint64
	Physics    uint64
	LOD        uint64
}

// Deps bundles the exclusive resources systems share. Each resource has one
// writing system per phase; everything here is game-loop-goroutine only.
type Deps struct {
	World    *ecs.World
	Stores   *component.Stores
	Bus      *event.Bus
	Clock    *world.Clock
	Tracker  *world.ChunkTracker
	Grid     *world.PlacementGrid
	Dist     *world.DistanceCache
	Active   *world.Active
	Network  *roads.Network
	Terrain  *gen.Terrain
	Vehicles *data.VehicleTable
	Catalogs *data.Catalogs
	Cfg      *config.Config
	Bounds   mathx.AABB
	Log      *zap.Logger

	Marks MarkCounts
}

// NewDeps wires the resource set in dependency order: clock, distance cache,
// placement grid, tracker, then everything downstream.
func NewDeps(cfg *config.Config, vehicles *data.VehicleTable, catalogs *data.Catalogs, log *zap.Logger) *Deps {
	w := ecs.NewWorld()
	ext := cfg.World.BoundsExtent
	return &Deps{
		World:    w,
		Stores:   component.NewStores(w.Registry()),
		Bus:      event.NewBus(),
		Clock:    world.NewClock(log.Named("clock")),
		Tracker:  world.NewChunkTracker(),
		Grid:     world.NewPlacementGrid(),
		Dist:     world.NewDistanceCache(cfg.Lod.RefreshRadius),
		Active:   world.NewActive(),
		Network:  roads.NewNetwork(),
		Terrain:  gen.NewTerrain(cfg.World.Seed, cfg.Physics.WaterLevel),
		Vehicles: vehicles,
		Catalogs: catalogs,
		Cfg:      cfg,
		Bounds: mathx.NewAABB(
			mathx.V3(-ext, cfg.World.MinY, -ext),
			mathx.V3(ext, cfg.World.MaxY, ext),
		),
		Log: log,
	}
}

// MarkTransformDirty attaches or escalates a DirtyTransform marker. Marking
// twice in one frame keeps the earliest frame stamp and the highest
// priority, so the batcher processes the entity once.
func (d *Deps) MarkTransformDirty(id ecs.EntityID, prio component.Priority) {
	d.Marks.Transform++
	if m, ok := d.Stores.DirtyTransforms.Get(id); ok {
		if prio > m.Priority {
			m.Priority = prio
		}
		return
	}
	d.Stores.DirtyTransforms.Set(id, &component.DirtyTransform{
		Priority: prio, FrameMarked: d.Clock.Frame(),
	})
}

// MarkVisibilityDirty attaches or escalates a DirtyVisibility marker.
func (d *Deps) MarkVisibilityDirty(id ecs.EntityID, prio component.Priority, visible bool) {
	d.Marks.Visibility++
	if m, ok := d.Stores.DirtyVisibilities.Get(id); ok {
		if prio > m.Priority {
			m.Priority = prio
		}
		m.Visible = visible
		return
	}
	d.Stores.DirtyVisibilities.Set(id, &component.DirtyVisibility{
		Priority: prio, FrameMarked: d.Clock.Frame(), Visible: visible,
	})
}

// MarkPhysicsDirty attaches or escalates a DirtyPhysics marker.
func (d *Deps) MarkPhysicsDirty(id ecs.EntityID, prio component.Priority) {
	d.Marks.Physics++
	if m, ok := d.Stores.DirtyPhysicsSet.Get(id); ok {
		if prio > m.Priority {
			m.Priority = prio
		}
		return
	}
	d.Stores.DirtyPhysicsSet.Set(id, &component.DirtyPhysics{
		Priority: prio, FrameMarked: d.Clock.Frame(),
	})
}

// MarkLODDirty attaches or escalates a DirtyLOD marker carrying the target
// band.
func (d *Deps) MarkLODDirty(id ecs.EntityID, prio component.Priority, level component.LodLevel, veg component.VegetationDetail) {
	d.Marks.LOD++
	if m, ok := d.Stores.DirtyLODs.Get(id); ok {
		if prio > m.Priority {
			m.Priority = prio
		}
		m.Level = level
		m.VegDetail = veg
		return
	}
	d.Stores.DirtyLODs.Set(id, &component.DirtyLOD{
		Priority: prio, FrameMarked: d.Clock.Frame(), Level: level, VegDetail: veg,
	})
}
