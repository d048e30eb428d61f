package ecs

import "testing"

func TestEntityIDEncoding(t *testing.T) {
	id := NewEntityID(42, 7)
	if id.Index() != 42 || id.Generation() != 7 {
		t.Fatalf("round trip lost bits: index=%d gen=%d", id.Index(), id.Generation())
	}
	if !NewEntityID(0, 0).IsZero() {
		t.Fatal("index 0 generation 0 should be the zero id")
	}
}

func TestPoolRecyclesWithNewGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	p.Destroy(a)
	b := p.Create()

	if b.Index() != a.Index() {
		t.Fatalf("free list not reused: %d vs %d", b.Index(), a.Index())
	}
	if b.Generation() == a.Generation() {
		t.Fatal("recycled index kept its generation; stale handles would alias")
	}
	if p.Alive(a) {
		t.Fatal("stale handle reports alive")
	}
	if !p.Alive(b) {
		t.Fatal("fresh handle reports dead")
	}
}

func TestDoubleDestroyIsHarmless(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	p.Destroy(a)
	p.Destroy(a) // stale, must not free the index twice

	b := p.Create()
	c := p.Create()
	if b.Index() == c.Index() {
		t.Fatalf("double destroy handed out the same index twice: %v %v", b, c)
	}
	if p.Live() != 2 {
		t.Fatalf("live = %d, want 2", p.Live())
	}
}

type tag struct{ n int }

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	store := NewPtrComponentStore[tag]()
	w.Registry().Register(store)

	id := w.CreateEntity()
	store.Set(id, &tag{n: 1})

	w.MarkForDestruction(id)
	if !w.Alive(id) {
		t.Fatal("entity died before the flush")
	}
	if !w.PendingDestruction(id) {
		t.Fatal("pending flag not set")
	}
	if !store.Has(id) {
		t.Fatal("components must survive until the flush")
	}

	w.FlushDestroyQueue()
	if w.Alive(id) {
		t.Fatal("entity survived the flush")
	}
	if store.Has(id) {
		t.Fatal("registered store not swept on destroy")
	}
	if w.PendingDestruction(id) {
		t.Fatal("pending flag leaked past the flush")
	}
}

func TestStoreIDsSnapshot(t *testing.T) {
	s := NewPtrComponentStore[tag]()
	for i := 0; i < 4; i++ {
		s.Set(NewEntityID(uint32(i), 0), &tag{n: i})
	}

	got := s.IDs(nil)
	if len(got) != 4 {
		t.Fatalf("IDs returned %d entries, want 4", len(got))
	}
	// mutation during iteration over the snapshot is safe
	for _, id := range got {
		s.Remove(id)
	}
	if s.Len() != 0 {
		t.Fatalf("store still holds %d after removal", s.Len())
	}
}
