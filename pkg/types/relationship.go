// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RelationKind is the semantic meaning of a relationship type this tool
// understands. Declared types outside the six tracked kinds resolve to
// RelationOther.
type RelationKind string

const (
	RelationSatisfies    RelationKind = "satisfies"
	RelationSatisfiedBy  RelationKind = "satisfied_by"
	RelationDecomposes   RelationKind = "decomposes"
	RelationDecomposedBy RelationKind = "decomposed_by"
	RelationSourcedBy    RelationKind = "sourced_by"
	RelationReceivesIO   RelationKind = "receives_io"
	RelationOther        RelationKind = "other"
)

// Relationship is a directed, typed edge between two entity identifiers.
// Either endpoint may name an entity that was not extracted.
type Relationship struct {
	Source string       `json:"source" yaml:"source"`
	Target string       `json:"target" yaml:"target"`
	TypeID string       `json:"type_id" yaml:"type_id"`
	Kind   RelationKind `json:"kind" yaml:"kind"`
}

// RelationshipIndex stores relationships by source identifier. Within one
// source, relationships keep document order. The zero value is ready to use.
type RelationshipIndex struct {
	bySource map[string][]Relationship
	sources  []string
	count    int
}

// Add appends r under its source identifier.
func (x *RelationshipIndex) Add(r Relationship) {
	if x.bySource == nil {
		x.bySource = make(map[string][]Relationship)
	}
	if _, ok := x.bySource[r.Source]; !ok {
		x.sources = append(x.sources, r.Source)
	}
	x.bySource[r.Source] = append(x.bySource[r.Source], r)
	x.count++
}

// From returns the outgoing relationships of source in insertion order.
// The returned slice must not be modified.
func (x *RelationshipIndex) From(source string) []Relationship {
	if x == nil {
		return nil
	}
	return x.bySource[source]
}

// Sources returns source identifiers in order of first appearance.
func (x *RelationshipIndex) Sources() []string {
	if x == nil {
		return nil
	}
	return x.sources
}

// Len returns the total number of relationships.
func (x *RelationshipIndex) Len() int {
	if x == nil {
		return 0
	}
	return x.count
}

// All returns every relationship grouped by source, sources in order of
// first appearance.
func (x *RelationshipIndex) All() []Relationship {
	out := make([]Relationship, 0, x.Len())
	for _, s := range x.Sources() {
		out = append(out, x.bySource[s]...)
	}
	return out
}
