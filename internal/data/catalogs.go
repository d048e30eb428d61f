package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BuildingArchetype describes one placeable building variant.
type BuildingArchetype struct {
	Name     string  `yaml:"name"`
	Landmark bool    `yaml:"landmark"`
	Radius   float32 `yaml:"radius"`
	Height   float32 `yaml:"height"`
	Weight   int     `yaml:"weight"` // relative pick weight
}

// TreeArchetype describes one vegetation variant.
type TreeArchetype struct {
	Name   string  `yaml:"name"`
	Radius float32 `yaml:"radius"`
	Height float32 `yaml:"height"`
	Weight int     `yaml:"weight"`
}

// NPCArchetype describes a pedestrian variant.
type NPCArchetype struct {
	Name      string  `yaml:"name"`
	WalkSpeed float32 `yaml:"walk_speed"`
	Weight    int     `yaml:"weight"`
}

type catalogFile struct {
	Buildings []BuildingArchetype `yaml:"buildings"`
	Trees     []TreeArchetype     `yaml:"trees"`
	NPCs      []NPCArchetype      `yaml:"npcs"`
}

// Catalogs bundles the content archetype tables the layer generators draw
// from.
type Catalogs struct {
	Buildings []BuildingArchetype
	Trees     []TreeArchetype
	NPCs      []NPCArchetype

	buildingWeight int
	treeWeight     int
	npcWeight      int
}

// LoadCatalogs reads the content catalog file.
func LoadCatalogs(path string) (*Catalogs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogs %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalogs %s: %w", path, err)
	}
	c := &Catalogs{Buildings: f.Buildings, Trees: f.Trees, NPCs: f.NPCs}
	if len(c.Buildings) == 0 || len(c.Trees) == 0 || len(c.NPCs) == 0 {
		return nil, fmt.Errorf("catalogs %s: every section must have at least one entry", path)
	}
	c.sumWeights()
	return c, nil
}

// DefaultCatalogs is the built-in fallback.
func DefaultCatalogs() *Catalogs {
	c := &Catalogs{
		Buildings: []BuildingArchetype{
			{Name: "apartment", Radius: 14, Height: 30, Weight: 5},
			{Name: "office", Radius: 18, Height: 60, Weight: 3},
			{Name: "shop", Radius: 9, Height: 8, Weight: 6},
			{Name: "tower", Landmark: true, Radius: 25, Height: 180, Weight: 1},
		},
		Trees: []TreeArchetype{
			{Name: "oak", Radius: 3, Height: 12, Weight: 5},
			{Name: "pine", Radius: 2, Height: 18, Weight: 4},
			{Name: "palm", Radius: 2, Height: 10, Weight: 2},
		},
		NPCs: []NPCArchetype{
			{Name: "walker", WalkSpeed: 1.4, Weight: 6},
			{Name: "jogger", WalkSpeed: 3.2, Weight: 2},
		},
	}
	c.sumWeights()
	return c
}

func (c *Catalogs) sumWeights() {
	c.buildingWeight, c.treeWeight, c.npcWeight = 0, 0, 0
	for _, b := range c.Buildings {
		c.buildingWeight += max(b.Weight, 1)
	}
	for _, t := range c.Trees {
		c.treeWeight += max(t.Weight, 1)
	}
	for _, n := range c.NPCs {
		c.npcWeight += max(n.Weight, 1)
	}
}

// PickBuilding selects a building archetype by seeded weighted draw.
func (c *Catalogs) PickBuilding(seed uint32) *BuildingArchetype {
	n := int(seed) % c.buildingWeight
	for i := range c.Buildings {
		n -= max(c.Buildings[i].Weight, 1)
		if n < 0 {
			return &c.Buildings[i]
		}
	}
	return &c.Buildings[len(c.Buildings)-1]
}

// PickTree selects a tree archetype by seeded weighted draw.
func (c *Catalogs) PickTree(seed uint32) *TreeArchetype {
	n := int(seed) % c.treeWeight
	for i := range c.Trees {
		n -= max(c.Trees[i].Weight, 1)
		if n < 0 {
			return &c.Trees[i]
		}
	}
	return &c.Trees[len(c.Trees)-1]
}

// PickNPC selects an NPC archetype by seeded weighted draw.
func (c *Catalogs) PickNPC(seed uint32) *NPCArchetype {
	n := int(seed) % c.npcWeight
	for i := range c.NPCs {
		n -= max(c.NPCs[i].Weight, 1)
		if n < 0 {
			return &c.NPCs[i]
		}
	}
	return &c.NPCs[len(c.NPCs)-1]
}
