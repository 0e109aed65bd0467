// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/mbse-export/internal/document"
	"github.com/pdiddy/mbse-export/internal/schema"
	"github.com/pdiddy/mbse-export/pkg/types"
)

const (
	relationshipElement = "relationship"
	sourceIDElement     = "sourceId"
	targetIDElement     = "targetId"
	relationIDElement   = "schemaRelationId"
)

// Relationships indexes every relationship node in doc by source id. Each
// type id must be declared in reg.
func Relationships(doc *document.Document, reg *schema.Registry) (*types.RelationshipIndex, error) {
	idx := &types.RelationshipIndex{}

	for i, node := range doc.ElementsByName(relationshipElement) {
		source := childID(node, sourceIDElement)
		target := childID(node, targetIDElement)
		typeID := childID(node, relationIDElement)

		if source == "" || target == "" {
			return nil, fmt.Errorf("relationship #%d: %s or %s is empty: %w",
				i+1, sourceIDElement, targetIDElement, document.ErrMissingIdentifier)
		}
		if !reg.Has(typeID) {
			return nil, fmt.Errorf("%w: %q on relationship %s -> %s",
				schema.ErrUnknownRelationType, typeID, source, target)
		}

		idx.Add(types.Relationship{
			Source: source,
			Target: target,
			TypeID: typeID,
			Kind:   reg.Kind(typeID),
		})
	}

	return idx, nil
}

func childID(n *document.Node, name string) string {
	v, _ := n.ChildText(name)
	return strings.TrimSpace(v)
}
