package persist

import (
	"bytes"
	"fmt"
	"time"

	"github.com/driftcity/engine/internal/component"
	"github.com/driftcity/engine/internal/core/ecs"
	"github.com/driftcity/engine/internal/mathx"
	"github.com/driftcity/engine/internal/world"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Save payload layout: a fixed header, then one record per entity. The body
// after the header is zstd-compressed; the blake2b checksum of the
// uncompressed body travels in the slot metadata so a corrupt file fails
// loudly instead of spawning garbage.

var snapshotMagic = [4]byte{'D', 'C', 'S', 'V'}

const snapshotVersion uint16 = 1

// EntityRecord is one saved entity. Parent is the index of the parent record
// within the snapshot, or -1; indices survive the save/load round trip where
// raw entity ids would not.
type EntityRecord struct {
	Kind   component.ContentKind
	Pos    mathx.Vec3
	Yaw    float32
	Pitch  float32
	Roll   float32
	Parent int32

	HasVehicle bool
	Vehicle    component.VehicleState
}

// Snapshot is the in-memory form of a save.
type Snapshot struct {
	Timestamp int64
	Entities  []EntityRecord
}

// Capture walks the live world into a snapshot. Only entities with a
// transform are saved; dirty flags and cached LOD state regenerate on load.
func Capture(w *ecs.World, stores *component.Stores) *Snapshot {
	snap := &Snapshot{Timestamp: time.Now().Unix()}
	indexOf := make(map[ecs.EntityID]int32, stores.Transforms.Len())

	stores.Transforms.Each(func(id ecs.EntityID, t *component.Transform) {
		if !w.Alive(id) || w.PendingDestruction(id) {
			return
		}
		rec := EntityRecord{
			Pos:    t.Pos,
			Yaw:    t.Yaw,
			Pitch:  t.Pitch,
			Roll:   t.Roll,
			Parent: -1,
		}
		if ref, ok := stores.ChunkRefs.Get(id); ok {
			rec.Kind = ref.Kind
		}
		if vs, ok := stores.Vehicles.Get(id); ok {
			rec.HasVehicle = true
			rec.Vehicle = *vs
		}
		indexOf[id] = int32(len(snap.Entities))
		snap.Entities = append(snap.Entities, rec)

		// Second pass below fixes up parents once every index is known.
	})

	stores.Parents.Each(func(id ecs.EntityID, p *component.Parent) {
		ci, ok := indexOf[id]
		if !ok {
			return
		}
		if pi, ok := indexOf[p.Entity]; ok {
			snap.Entities[ci].Parent = pi
		}
	})
	return snap
}

// Apply spawns every snapshot record into the world as fresh entities,
// re-registering chunk ownership and placement records. Returns the created
// entity ids in record order.
func Apply(snap *Snapshot, w *ecs.World, stores *component.Stores, tracker *world.ChunkTracker, grid *world.PlacementGrid) []ecs.EntityID {
	ids := make([]ecs.EntityID, len(snap.Entities))
	for i, rec := range snap.Entities {
		id := w.CreateEntity()
		ids[i] = id
		stores.Transforms.Set(id, &component.Transform{
			Pos: rec.Pos, Yaw: rec.Yaw, Pitch: rec.Pitch, Roll: rec.Roll,
		})
		coord := world.ChunkAt(rec.Pos)
		stores.ChunkRefs.Set(id, &component.ChunkRef{
			Coord: coord, Kind: rec.Kind,
			GridPos: rec.Pos, GridRadius: 1,
		})
		tracker.AddEntity(coord, id)
		grid.Insert(rec.Pos, rec.Kind, 1)
		if rec.HasVehicle {
			vs := rec.Vehicle
			stores.Vehicles.Set(id, &vs)
		}
	}
	// Parent links after all ids exist.
	for i, rec := range snap.Entities {
		if rec.Parent >= 0 && int(rec.Parent) < len(ids) {
			stores.Parents.Set(ids[i], &component.Parent{Entity: ids[rec.Parent]})
		}
	}
	return ids
}

// Encode serializes and compresses a snapshot, returning the payload and the
// blake2b-256 checksum of the uncompressed body.
func Encode(snap *Snapshot) (payload []byte, checksum []byte, err error) {
	w := NewWriter()
	for _, rec := range snap.Entities {
		w.WriteC(byte(rec.Kind))
		w.WriteF(rec.Pos.X)
		w.WriteF(rec.Pos.Y)
		w.WriteF(rec.Pos.Z)
		w.WriteF(rec.Yaw)
		w.WriteF(rec.Pitch)
		w.WriteF(rec.Roll)
		w.WriteD(rec.Parent)
		if rec.HasVehicle {
			w.WriteC(1)
			w.WriteC(byte(rec.Vehicle.Kind))
			w.WriteS(rec.Vehicle.SpecName)
			w.WriteF(rec.Vehicle.Damage)
			w.WriteF(rec.Vehicle.Fuel)
			w.WriteC(rec.Vehicle.ColorIndex)
		} else {
			w.WriteC(0)
		}
	}
	body := w.Bytes()
	sum := blake2b.Sum256(body)

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("zstd writer: %w", err)
	}
	compressed := enc.EncodeAll(body, nil)
	enc.Close()

	head := NewWriter()
	head.WriteC(snapshotMagic[0])
	head.WriteC(snapshotMagic[1])
	head.WriteC(snapshotMagic[2])
	head.WriteC(snapshotMagic[3])
	head.WriteH(snapshotVersion)
	head.WriteQ(uint64(snap.Timestamp))
	head.WriteD(int32(len(snap.Entities)))
	return append(head.Bytes(), compressed...), sum[:], nil
}

// Decode parses a payload produced by Encode, verifying the checksum when
// one is provided (nil skips verification).
func Decode(payload []byte, checksum []byte) (*Snapshot, error) {
	if len(payload) < 18 {
		return nil, fmt.Errorf("save payload too short: %d bytes", len(payload))
	}
	hr := NewReader(payload[:18])
	var magic [4]byte
	for i := range magic {
		magic[i] = hr.ReadC()
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("bad save magic %q", magic)
	}
	version := hr.ReadH()
	if version != snapshotVersion {
		return nil, fmt.Errorf("unsupported save version %d", version)
	}
	ts := int64(hr.ReadQ())
	count := int(hr.ReadD())

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	body, err := dec.DecodeAll(payload[18:], nil)
	if err != nil {
		return nil, fmt.Errorf("decompress save: %w", err)
	}

	if checksum != nil {
		sum := blake2b.Sum256(body)
		if !bytes.Equal(sum[:], checksum) {
			return nil, fmt.Errorf("save checksum mismatch")
		}
	}

	snap := &Snapshot{Timestamp: ts, Entities: make([]EntityRecord, 0, count)}
	r := NewReader(body)
	for i := 0; i < count; i++ {
		rec := EntityRecord{
			Kind: component.ContentKind(r.ReadC()),
		}
		rec.Pos = mathx.V3(r.ReadF(), r.ReadF(), r.ReadF())
		rec.Yaw = r.ReadF()
		rec.Pitch = r.ReadF()
		rec.Roll = r.ReadF()
		rec.Parent = r.ReadD()
		if r.ReadC() == 1 {
			rec.HasVehicle = true
			rec.Vehicle.Kind = component.VehicleKind(r.ReadC())
			rec.Vehicle.SpecName = r.ReadS()
			rec.Vehicle.Damage = r.ReadF()
			rec.Vehicle.Fuel = r.ReadF()
			rec.Vehicle.ColorIndex = r.ReadC()
		}
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("decode save entity %d: %w", i, err)
		}
		snap.Entities = append(snap.Entities, rec)
	}
	return snap, nil
}
