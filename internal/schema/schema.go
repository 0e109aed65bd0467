// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema resolves the relationship types declared by an export and
// checks them against the relation types the exporter depends on. Any
// mismatch fails resolution.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/mbse-export/internal/document"
	"github.com/pdiddy/mbse-export/pkg/types"
)

const (
	relationElement = "schemaRelation"
	nameElement     = "name"
)

var (
	// ErrSchemaDrift reports that a required relation type is missing or
	// declared under a different name.
	ErrSchemaDrift = errors.New("relationship schema does not match expectations")

	// ErrDuplicateRelationType reports a relation type id declared twice.
	ErrDuplicateRelationType = errors.New("duplicate relationship type declaration")

	// ErrUnknownRelationType reports a relationship whose type id is not
	// declared by the export.
	ErrUnknownRelationType = errors.New("unknown relationship type")
)

// Registry maps declared relationship-type ids to their names and to the
// kinds this tool understands.
type Registry struct {
	names map[string]string
	kinds map[string]types.RelationKind
	order []string
}

// Resolve reads every relation type declaration in doc and validates the
// configured relation types against them.
func Resolve(doc *document.Document, relations types.RelationConfig) (*Registry, error) {
	reg := &Registry{
		names: make(map[string]string),
		kinds: make(map[string]types.RelationKind),
	}

	for _, node := range doc.ElementsByName(relationElement) {
		id, err := node.ID()
		if err != nil {
			return nil, err
		}
		if _, ok := reg.names[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRelationType, id)
		}
		name, _ := node.ChildText(nameElement)
		reg.names[id] = name
		reg.order = append(reg.order, id)
	}

	var problems []string
	for kind, want := range relations.Kinds() {
		got, ok := reg.names[want.ID]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s (%s) not declared", kind, want.ID))
		case got != want.Name:
			problems = append(problems, fmt.Sprintf("%s (%s) declared as %q, want %q", kind, want.ID, got, want.Name))
		default:
			reg.kinds[want.ID] = kind
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("%w: %s", ErrSchemaDrift, strings.Join(problems, "; "))
	}

	return reg, nil
}

// Has reports whether id is a declared relationship type.
func (r *Registry) Has(id string) bool {
	_, ok := r.names[id]
	return ok
}

// Name returns the declared name of id.
func (r *Registry) Name(id string) (string, bool) {
	n, ok := r.names[id]
	return n, ok
}

// Kind returns the tracked kind of a declared id, or RelationOther.
func (r *Registry) Kind(id string) types.RelationKind {
	if k, ok := r.kinds[id]; ok {
		return k
	}
	return types.RelationOther
}

// Len returns the number of declared relationship types.
func (r *Registry) Len() int {
	return len(r.names)
}

// IDs returns the declared ids in document order.
func (r *Registry) IDs() []string {
	return r.order
}
