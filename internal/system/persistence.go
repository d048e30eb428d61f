package system

import (
	"context"
	"time"

	"github.com/driftcity/engine/internal/core/event"
	coresys "github.com/driftcity/engine/internal/core/system"
	"github.com/driftcity/engine/internal/persist"
	"go.uber.org/zap"
)

// saveTimeout bounds one snapshot write against a stalled backend.
const saveTimeout = 10 * time.Second

// PersistenceSystem captures world snapshots into save slots. Requests
// queue up during the frame and are served one per Persist phase, so a
// burst of save requests cannot stall the loop.
type PersistenceSystem struct {
	deps  *Deps
	store persist.Store
	queue []string
	log   *zap.Logger
}

func NewPersistenceSystem(deps *Deps, store persist.Store) *PersistenceSystem {
	s := &PersistenceSystem{deps: deps, store: store, log: deps.Log.Named("persist")}
	event.Subscribe(deps.Bus, s.onSaveRequest)
	return s
}

func (s *PersistenceSystem) onSaveRequest(ev event.RequestSaveSnapshot) {
	if ev.Slot == "" {
		s.log.Warn("save request with empty slot dropped")
		return
	}
	for _, q := range s.queue {
		if q == ev.Slot {
			return
		}
	}
	s.queue = append(s.queue, ev.Slot)
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	if len(s.queue) == 0 {
		return
	}
	slot := s.queue[0]
	s.queue = s.queue[1:]
	if err := s.save(slot); err != nil {
		s.log.Error("snapshot save failed", zap.String("slot", slot), zap.Error(err))
	}
}

func (s *PersistenceSystem) save(slot string) error {
	d := s.deps
	snap := persist.Capture(d.World, d.Stores)
	payload, checksum, err := persist.Encode(snap)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	meta := persist.SlotMeta{
		Slot:        slot,
		EntityCount: len(snap.Entities),
		Checksum:    checksum,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Save(ctx, meta, payload); err != nil {
		return err
	}
	event.Emit(d.Bus, event.SnapshotSaved{Slot: slot, EntityCount: len(snap.Entities)})
	s.log.Info("snapshot saved",
		zap.String("slot", slot),
		zap.Int("entities", len(snap.Entities)),
		zap.Int("bytes", len(payload)))
	return nil
}

// LoadSlot restores a saved snapshot into the world. Called from the host
// before the loop starts, never mid-frame.
func (s *PersistenceSystem) LoadSlot(ctx context.Context, slot string) (int, error) {
	d := s.deps
	meta, payload, err := s.store.Load(ctx, slot)
	if err != nil {
		return 0, err
	}
	snap, err := persist.Decode(payload, meta.Checksum)
	if err != nil {
		return 0, err
	}
	ids := persist.Apply(snap, d.World, d.Stores, d.Tracker, d.Grid)
	s.log.Info("snapshot loaded", zap.String("slot", slot), zap.Int("entities", len(ids)))
	return len(ids), nil
}
