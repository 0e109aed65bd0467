// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Class identifies which kind of engineering artifact an entity is.
type Class string

const (
	ClassRequirement Class = "requirement"
	ClassAction      Class = "action"
	ClassAsset       Class = "asset"
)

// Classes lists every entity class in report order.
var Classes = []Class{ClassRequirement, ClassAction, ClassAsset}

// EntityBase holds the fields shared by every entity class.
type EntityBase struct {
	// ID is the opaque identifier from the export. Unique within a document.
	ID string `json:"id" yaml:"id"`

	// Number is the human-facing identifier (e.g. "REQ-042"). Expected to be
	// unique per class but not guaranteed; see report.Duplicates.
	Number string `json:"number" yaml:"number"`

	Name string `json:"name" yaml:"name"`

	// Description is the raw markup from the export. Reports render it
	// through a markup.Renderer.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Labels holds label identifiers in document order.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Entity is one of *Requirement, *Action or *Asset. The set is closed: only
// types in this package implement it.
type Entity interface {
	Class() Class
	Common() EntityBase
	sealed()
}

// Requirement is an entity of the requirement class.
type Requirement struct {
	EntityBase `yaml:",inline"`

	Status   string `json:"status,omitempty" yaml:"status,omitempty"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Action is an entity of the action (function) class.
type Action struct {
	EntityBase `yaml:",inline"`
}

// Asset is an entity of the asset class.
type Asset struct {
	EntityBase `yaml:",inline"`
}

func (r *Requirement) Class() Class       { return ClassRequirement }
func (r *Requirement) Common() EntityBase { return r.EntityBase }
func (r *Requirement) sealed()            {}

func (a *Action) Class() Class       { return ClassAction }
func (a *Action) Common() EntityBase { return a.EntityBase }
func (a *Action) sealed()            {}

func (a *Asset) Class() Class       { return ClassAsset }
func (a *Asset) Common() EntityBase { return a.EntityBase }
func (a *Asset) sealed()            {}

// Label is a named classification tag. Only the name is used by reports.
type Label struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// LabelSet maps label identifiers to labels.
type LabelSet map[string]Label

// Name returns the label name for id and whether the id is known.
func (s LabelSet) Name(id string) (string, bool) {
	l, ok := s[id]
	return l.Name, ok
}
