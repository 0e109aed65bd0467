// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Graph is the in-memory entity/relationship graph extracted from one
// export document. Class tables keep document order.
type Graph struct {
	Requirements []*Requirement
	Actions      []*Action
	Assets       []*Asset

	Relationships *RelationshipIndex
	Labels        LabelSet

	byID map[string]Entity
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Relationships: &RelationshipIndex{},
		Labels:        LabelSet{},
		byID:          make(map[string]Entity),
	}
}

// Add places e in its class table and in the unified lookup. It reports
// false, leaving the graph unchanged, if the id is already present.
func (g *Graph) Add(e Entity) bool {
	id := e.Common().ID
	if _, ok := g.byID[id]; ok {
		return false
	}
	g.byID[id] = e
	switch v := e.(type) {
	case *Requirement:
		g.Requirements = append(g.Requirements, v)
	case *Action:
		g.Actions = append(g.Actions, v)
	case *Asset:
		g.Assets = append(g.Assets, v)
	}
	return true
}

// Lookup returns the entity with the given id, of any class.
func (g *Graph) Lookup(id string) (Entity, bool) {
	e, ok := g.byID[id]
	return e, ok
}

// Len returns the number of entities across all classes.
func (g *Graph) Len() int {
	return len(g.byID)
}

// OfClass returns the entities of class c in document order.
func (g *Graph) OfClass(c Class) []Entity {
	var out []Entity
	switch c {
	case ClassRequirement:
		out = make([]Entity, len(g.Requirements))
		for i, r := range g.Requirements {
			out[i] = r
		}
	case ClassAction:
		out = make([]Entity, len(g.Actions))
		for i, a := range g.Actions {
			out[i] = a
		}
	case ClassAsset:
		out = make([]Entity, len(g.Assets))
		for i, a := range g.Assets {
			out[i] = a
		}
	}
	return out
}
