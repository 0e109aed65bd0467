// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/mbse-export/internal/document"
	"github.com/pdiddy/mbse-export/pkg/types"
)

// Element and attribute names of entity nodes.
const (
	entityElement      = "entity"
	schemaClassElement = "schemaClassId"
	nameElement        = "name"
	descriptionElement = "description"
	numberElement      = "number"
	labelIDElement     = "labelId"
	attributeElement   = "stringAttribute"
	propertyIDAttr     = "schemaPropertyId"
)

// Classify maps a schema-class id to an entity class. It reports false for
// ids the configuration does not track, including an empty asset id.
func Classify(classID string, classes types.ClassConfig) (types.Class, bool) {
	switch {
	case classID == "":
		return "", false
	case classID == classes.Requirement:
		return types.ClassRequirement, true
	case classID == classes.Action:
		return types.ClassAction, true
	case classID == classes.Asset:
		return types.ClassAsset, true
	}
	return "", false
}

// Entities classifies every entity node in doc and returns a graph holding
// the recognised ones, plus the number skipped. Unrecognised classes are
// logged and skipped.
func Entities(doc *document.Document, cfg types.SchemaConfig, logger *zap.Logger) (*types.Graph, int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := types.NewGraph()
	skipped := 0

	for _, node := range doc.ElementsByName(entityElement) {
		classID, _ := node.ChildText(schemaClassElement)
		classID = strings.TrimSpace(classID)

		class, ok := Classify(classID, cfg.Classes)
		if !ok {
			rawID, _ := node.Attr("id")
			logger.Warn("unrecognised entity skipped",
				zap.String("entity_id", rawID),
				zap.String("schema_class", classID),
			)
			skipped++
			continue
		}

		id, err := node.ID()
		if err != nil {
			return nil, skipped, err
		}

		e, err := buildEntity(node, id, class, cfg.Properties)
		if err != nil {
			return nil, skipped, err
		}
		if !g.Add(e) {
			return nil, skipped, fmt.Errorf("%w: entity id %q appears more than once", ErrContractViolation, id)
		}
	}

	return g, skipped, nil
}

// buildEntity populates the fields of one recognised entity node in a single
// pass over its children.
func buildEntity(node *document.Node, id string, class types.Class, props types.PropertyConfig) (types.Entity, error) {
	base := types.EntityBase{ID: id}
	var status, priority string

	for _, c := range node.Children {
		switch c.Name {
		case nameElement:
			base.Name = c.Text
		case descriptionElement:
			base.Description = c.Text
		case numberElement:
			base.Number = c.Text
		case labelIDElement:
			base.Labels = append(base.Labels, strings.TrimSpace(c.Text))
		case attributeElement:
			if class != types.ClassRequirement {
				return nil, fmt.Errorf("%w: %s %s carries a %s", ErrContractViolation, class, id, attributeElement)
			}
			prop, _ := c.Attr(propertyIDAttr)
			switch prop {
			case props.Status:
				v, err := attributeValue(c, id, prop)
				if err != nil {
					return nil, err
				}
				status = v
			case props.Priority:
				v, err := attributeValue(c, id, prop)
				if err != nil {
					return nil, err
				}
				priority = v
			}
		}
	}

	switch class {
	case types.ClassRequirement:
		return &types.Requirement{EntityBase: base, Status: status, Priority: priority}, nil
	case types.ClassAction:
		return &types.Action{EntityBase: base}, nil
	default:
		return &types.Asset{EntityBase: base}, nil
	}
}

// attributeValue returns the scalar held by an attribute node: the text of
// its first element child.
func attributeValue(attr *document.Node, entityID, prop string) (string, error) {
	v := attr.FirstElement()
	if v == nil {
		return "", fmt.Errorf("%w: attribute %s on %s has no value element", ErrContractViolation, prop, entityID)
	}
	return v.Text, nil
}
