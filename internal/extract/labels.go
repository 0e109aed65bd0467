// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/pdiddy/mbse-export/internal/document"
	"github.com/pdiddy/mbse-export/pkg/types"
)

const labelElement = "label"

// Labels reads every label node in doc. A description, when present, must
// be plain text.
func Labels(doc *document.Document) (types.LabelSet, error) {
	labels := types.LabelSet{}

	for _, node := range doc.ElementsByName(labelElement) {
		id, err := node.ID()
		if err != nil {
			return nil, err
		}
		if _, ok := labels[id]; ok {
			return nil, fmt.Errorf("%w: label id %q appears more than once", ErrContractViolation, id)
		}

		l := types.Label{ID: id}
		l.Name, _ = node.ChildText(nameElement)
		if desc := node.Child(descriptionElement); desc != nil {
			if len(desc.Children) > 0 {
				return nil, fmt.Errorf("%w: label %s description holds %d element(s), want text only",
					ErrContractViolation, id, len(desc.Children))
			}
			l.Description = desc.Text
		}
		labels[id] = l
	}

	return labels, nil
}
