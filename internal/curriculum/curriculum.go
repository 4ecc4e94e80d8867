package curriculum

import (
	"fmt"
	"slices"
)

// Concept is a single skill node in the curriculum graph.
type Concept struct {
	ID         string
	LevelIndex int
	Title      string
}

// Level is an ordered group of concepts gated by an unlock threshold
// on the previous level's mastered fraction.
type Level struct {
	Index int
	Title string

	// ConceptIDs lists the level's concepts in teaching order.
	// Learning-step selection honors this order, not sorted order.
	ConceptIDs []string

	// UnlockThreshold is the fraction of the previous level's concepts
	// that must be mastered before this level opens. Default 1.0.
	UnlockThreshold float64
}

// Graph is a static DAG of concepts grouped into ordered levels.
// Immutable after construction.
type Graph struct {
	id       string
	topic    string
	concepts []Concept
	levels   []Level
	byID     map[string]*Concept
}

// NewGraph constructs a Graph with precomputed indices.
// Levels are stored sorted by index.
func NewGraph(id, topic string, concepts []Concept, levels []Level) *Graph {
	g := &Graph{
		id:       id,
		topic:    topic,
		concepts: concepts,
		levels:   slices.Clone(levels),
		byID:     make(map[string]*Concept, len(concepts)),
	}
	slices.SortFunc(g.levels, func(a, b Level) int { return a.Index - b.Index })
	for i := range g.concepts {
		g.byID[g.concepts[i].ID] = &g.concepts[i]
	}
	return g
}

// ID returns the graph identifier.
func (g *Graph) ID() string { return g.id }

// Topic returns the topic key this graph covers.
func (g *Graph) Topic() string { return g.topic }

// Concepts returns all concepts in the graph.
func (g *Graph) Concepts() []Concept {
	return slices.Clone(g.concepts)
}

// Levels returns all levels in index order.
func (g *Graph) Levels() []Level {
	return slices.Clone(g.levels)
}

// Concept returns a concept by ID, or an error if not found.
func (g *Graph) Concept(id string) (Concept, error) {
	c, ok := g.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return *c, nil
}

// Contains reports whether the concept ID is part of the graph's ontology.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Level returns the level with the given index, or false if absent.
func (g *Graph) Level(index int) (Level, bool) {
	for _, l := range g.levels {
		if l.Index == index {
			return l, true
		}
	}
	return Level{}, false
}

// ConceptsForLevel returns the concepts of a level in declared order.
func (g *Graph) ConceptsForLevel(index int) []Concept {
	l, ok := g.Level(index)
	if !ok {
		return nil
	}
	out := make([]Concept, 0, len(l.ConceptIDs))
	for _, id := range l.ConceptIDs {
		if c, ok := g.byID[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// OrderedConceptIDs returns all concept IDs in level order, preserving
// each level's declared concept order.
func (g *Graph) OrderedConceptIDs() []string {
	var out []string
	for _, l := range g.levels {
		out = append(out, l.ConceptIDs...)
	}
	return out
}

// IsConceptUnlocked reports whether the concept's level is in the
// unlocked set.
func (g *Graph) IsConceptUnlocked(id string, unlockedLevels map[int]bool) bool {
	c, ok := g.byID[id]
	if !ok {
		return false
	}
	return unlockedLevels[c.LevelIndex]
}
