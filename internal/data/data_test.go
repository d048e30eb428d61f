package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVehicleTableCoversEveryKind(t *testing.T) {
	tbl := DefaultVehicleTable()
	for _, kind := range []string{"car", "helicopter", "jet", "yacht"} {
		specs := tbl.ByKind(kind)
		if len(specs) == 0 {
			t.Fatalf("no default spec for kind %q", kind)
		}
		for _, s := range specs {
			if err := s.Validate(); err != nil {
				t.Fatalf("default spec %s invalid: %v", s.Name, err)
			}
		}
	}
}

func TestVehiclePickIsDeterministic(t *testing.T) {
	tbl := DefaultVehicleTable()
	for seed := uint32(0); seed < 64; seed++ {
		a := tbl.Pick("car", seed)
		b := tbl.Pick("car", seed)
		if a == nil || a != b {
			t.Fatalf("pick(car, %d) not deterministic: %v vs %v", seed, a, b)
		}
	}
	if tbl.Pick("submarine", 0) != nil {
		t.Fatal("unknown kind should pick nothing")
	}
}

func TestLoadVehicleTableFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.yaml")
	body := `
vehicles:
  - name: taxi
    kind: car
    max_speed: 35
    acceleration: 10
    linear_damping: 0.6
    angular_damping: 0.3
    steer_rate: 1.1
    grip: 3.5
    brake_pow: 18
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadVehicleTable(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s, ok := tbl.Get("taxi")
	if !ok {
		t.Fatal("taxi missing from table")
	}
	if s.MaxSpeed != 35 || s.Kind != "car" {
		t.Fatalf("taxi fields wrong: %+v", s)
	}
}

func TestLoadVehicleTableRejectsBadSpecs(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty file", "vehicles: []\n"},
		{"missing name", "vehicles:\n  - kind: car\n    linear_damping: 0.5\n    angular_damping: 0.5\n"},
		{"zero damping", "vehicles:\n  - name: brick\n    kind: car\n    linear_damping: 0\n    angular_damping: 0.5\n"},
		{"negative speed", "vehicles:\n  - name: rocket\n    kind: car\n    max_speed: -1\n    linear_damping: 0.5\n    angular_damping: 0.5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vehicles.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadVehicleTable(path); err == nil {
				t.Fatal("bad spec file accepted")
			}
		})
	}
}

func TestDefaultCatalogsPicks(t *testing.T) {
	c := DefaultCatalogs()

	for seed := uint32(0); seed < 128; seed++ {
		if a, b := c.PickBuilding(seed), c.PickBuilding(seed); a != b {
			t.Fatalf("PickBuilding(%d) not deterministic", seed)
		}
		if a, b := c.PickTree(seed), c.PickTree(seed); a != b {
			t.Fatalf("PickTree(%d) not deterministic", seed)
		}
		if a, b := c.PickNPC(seed), c.PickNPC(seed); a != b {
			t.Fatalf("PickNPC(%d) not deterministic", seed)
		}
	}

	// weighted draw must reach every entry eventually
	seen := map[string]bool{}
	for seed := uint32(0); seed < 256; seed++ {
		seen[c.PickBuilding(seed).Name] = true
	}
	for _, b := range c.Buildings {
		if !seen[b.Name] {
			t.Fatalf("building %q never picked over 256 seeds", b.Name)
		}
	}
}

func TestLoadCatalogsRequiresAllSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.yaml")
	body := `
buildings:
  - name: shed
    radius: 4
    height: 4
    weight: 1
trees: []
npcs:
  - name: walker
    walk_speed: 1.4
    weight: 1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalogs(path); err == nil {
		t.Fatal("catalog with an empty section accepted")
	}
}

func TestLoadCatalogsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.yaml")
	body := `
buildings:
  - name: bungalow
    radius: 8
    height: 5
    weight: 2
trees:
  - name: birch
    radius: 2
    height: 14
    weight: 1
npcs:
  - name: tourist
    walk_speed: 1.1
    weight: 1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalogs(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.PickBuilding(0).Name != "bungalow" {
		t.Fatalf("unexpected building pick %q", c.PickBuilding(0).Name)
	}
	if c.PickNPC(5).WalkSpeed != 1.1 {
		t.Fatalf("npc walk speed = %v", c.PickNPC(5).WalkSpeed)
	}
}
