package system

import (
	"testing"
	"time"
)

type probe struct {
	phase Phase
	tag   string
	log   *[]string
}

func (p *probe) Phase() Phase           { return p.phase }
func (p *probe) Update(_ time.Duration) { *p.log = append(*p.log, p.tag) }

func TestRunnerSortsByPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&probe{phase: PhaseCleanup, tag: "cleanup", log: &log})
	r.Register(&probe{phase: PhasePreUpdate, tag: "pre", log: &log})
	r.Register(&probe{phase: PhasePersist, tag: "persist", log: &log})
	r.Register(&probe{phase: PhaseUpdate, tag: "update", log: &log})
	r.Register(&probe{phase: PhasePostUpdate, tag: "post", log: &log})

	r.Tick(time.Millisecond)

	want := []string{"pre", "update", "post", "persist", "cleanup"}
	for i, w := range want {
		if log[i] != w {
			t.Fatalf("tick order %v, want %v", log, want)
		}
	}
}

func TestRunnerKeepsRegistrationOrderWithinPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	for _, tag := range []string{"a", "b", "c"} {
		r.Register(&probe{phase: PhaseUpdate, tag: tag, log: &log})
	}
	// registering after a tick re-sorts without scrambling the stable order
	r.Tick(time.Millisecond)
	r.Register(&probe{phase: PhaseUpdate, tag: "d", log: &log})
	log = log[:0]
	r.Tick(time.Millisecond)

	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if log[i] != w {
			t.Fatalf("within-phase order %v, want %v", log, want)
		}
	}
}

func TestTickPhaseRunsOnlyThatPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&probe{phase: PhaseUpdate, tag: "update", log: &log})
	r.Register(&probe{phase: PhaseCleanup, tag: "cleanup", log: &log})

	r.TickPhase(PhaseCleanup, time.Millisecond)
	if len(log) != 1 || log[0] != "cleanup" {
		t.Fatalf("phase tick ran %v, want just cleanup", log)
	}
}
