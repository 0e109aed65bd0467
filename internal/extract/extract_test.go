// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mbse-export/internal/document"
	"github.com/pdiddy/mbse-export/internal/schema"
	"github.com/pdiddy/mbse-export/pkg/types"
)

const schemaXML = `
  <schema>
    <schemaRelation id="R4N"><name>satisfies</name></schemaRelation>
    <schemaRelation id="R4M"><name>satisfied by</name></schemaRelation>
    <schemaRelation id="R30"><name>decomposes</name></schemaRelation>
    <schemaRelation id="R2Z"><name>decomposed by</name></schemaRelation>
    <schemaRelation id="R4T"><name>sourced by</name></schemaRelation>
    <schemaRelation id="R44"><name>receives</name></schemaRelation>
    <schemaRelation id="R77"><name>traced from</name></schemaRelation>
  </schema>`

const exportXML = `<?xml version="1.0" encoding="UTF-8"?>
<innoslate>` + schemaXML + `
  <entities>
    <entity id="e1">
      <schemaClassId>C1Z</schemaClassId>
      <name>Archive observations</name>
      <description>&lt;p&gt;Keep all data&lt;/p&gt;</description>
      <number>REQ-1</number>
      <labelId>L1</labelId>
      <labelId>L2</labelId>
      <stringAttribute schemaPropertyId="P3q6z">
        <value>Approved</value>
      </stringAttribute>
      <stringAttribute schemaPropertyId="Pjfa">
        <value>High</value>
      </stringAttribute>
      <stringAttribute schemaPropertyId="Pother">
        <value>ignored</value>
      </stringAttribute>
    </entity>
    <entity id="e2">
      <schemaClassId>C1</schemaClassId>
      <name>Ingest</name>
      <number>F.1</number>
      <labelId>L2</labelId>
    </entity>
    <entity id="e3">
      <schemaClassId>C99</schemaClassId>
      <name>Some artifact</name>
    </entity>
    <entity id="e4">
      <schemaClassId>C8</schemaClassId>
      <name>Receiver</name>
      <number>A.1</number>
      <description></description>
    </entity>
    <entity id="e5">
      <schemaClassId>C1</schemaClassId>
      <name>Store</name>
      <number>F.2</number>
    </entity>
  </entities>
  <relationships>
    <relationship><sourceId>e1</sourceId><targetId>e5</targetId><schemaRelationId>R4M</schemaRelationId></relationship>
    <relationship><sourceId>e2</sourceId><targetId>e1</targetId><schemaRelationId>R4N</schemaRelationId></relationship>
    <relationship><sourceId>e1</sourceId><targetId>e2</targetId><schemaRelationId>R4M</schemaRelationId></relationship>
    <relationship><sourceId>e1</sourceId><targetId>e3</targetId><schemaRelationId>R77</schemaRelationId></relationship>
  </relationships>
  <labels>
    <label id="L1"><name>Science</name><description>Science data path</description></label>
    <label id="L2"><name>Phase 1</name><description></description></label>
    <label id="L3"><name>Unused</name></label>
  </labels>
</innoslate>`

func parse(t *testing.T, xml string) *document.Document {
	t.Helper()
	doc, err := document.Parse(strings.NewReader(xml))
	require.NoError(t, err)
	return doc
}

func schemaConfig() types.SchemaConfig {
	return types.DefaultExportConfig().Schema
}

func resolve(t *testing.T, doc *document.Document) *schema.Registry {
	t.Helper()
	reg, err := schema.Resolve(doc, schemaConfig().Relations)
	require.NoError(t, err)
	return reg
}

func TestExtract(t *testing.T) {
	doc := parse(t, exportXML)
	core, logs := observer.New(zapcore.WarnLevel)

	g, summary, err := Extract(doc, resolve(t, doc), schemaConfig(), zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, Summary{
		Requirements: 1, Actions: 2, Assets: 1, Skipped: 1,
		Relationships: 4, Labels: 3,
	}, summary)
	assert.Equal(t, 5, summary.Total())
	assert.Equal(t, 4, g.Len())

	require.Len(t, g.Requirements, 1)
	req := g.Requirements[0]
	assert.Equal(t, "e1", req.ID)
	assert.Equal(t, "REQ-1", req.Number)
	assert.Equal(t, "Archive observations", req.Name)
	assert.Equal(t, "<p>Keep all data</p>", req.Description)
	assert.Equal(t, "Approved", req.Status)
	assert.Equal(t, "High", req.Priority)
	assert.Equal(t, []string{"L1", "L2"}, req.Labels)

	require.Len(t, g.Actions, 2)
	assert.Equal(t, "F.1", g.Actions[0].Number)
	assert.Equal(t, "F.2", g.Actions[1].Number)
	assert.Equal(t, []string{"L2"}, g.Actions[0].Labels)
	assert.Empty(t, g.Actions[1].Labels)

	require.Len(t, g.Assets, 1)
	assert.Equal(t, "", g.Assets[0].Description)

	_, ok := g.Lookup("e3")
	assert.False(t, ok, "unrecognised entity must not be in the lookup")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "unrecognised entity skipped", entry.Message)
	assert.Equal(t, "C99", entry.ContextMap()["schema_class"])
	assert.Equal(t, "e3", entry.ContextMap()["entity_id"])

	name, ok := g.Labels.Name("L1")
	assert.True(t, ok)
	assert.Equal(t, "Science", name)
	assert.Equal(t, "Science data path", g.Labels["L1"].Description)
}

func TestEntities_OwnLabelSlices(t *testing.T) {
	doc := parse(t, exportXML)
	g, _, err := Entities(doc, schemaConfig(), nil)
	require.NoError(t, err)

	g.Actions[0].Labels[0] = "changed"
	assert.Equal(t, []string{"L1", "L2"}, g.Requirements[0].Labels)
	assert.Nil(t, g.Actions[1].Labels)
}

func TestClassify(t *testing.T) {
	classes := schemaConfig().Classes
	noAssets := classes
	noAssets.Asset = ""

	tests := []struct {
		classID string
		classes types.ClassConfig
		want    types.Class
		wantOK  bool
	}{
		{"C1Z", classes, types.ClassRequirement, true},
		{"C1", classes, types.ClassAction, true},
		{"C8", classes, types.ClassAsset, true},
		{"C8", noAssets, "", false},
		{"C2", classes, "", false},
		{"", classes, "", false},
		{"", noAssets, "", false},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.classID, tt.classes)
		assert.Equal(t, tt.want, got, tt.classID)
		assert.Equal(t, tt.wantOK, ok, tt.classID)
	}
}

func TestEntities_ContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		wantErr error
	}{
		{
			name: "attribute on action",
			xml: `<x><entity id="a1"><schemaClassId>C1</schemaClassId>
				<stringAttribute schemaPropertyId="P3q6z"><value>Draft</value></stringAttribute></entity></x>`,
			wantErr: ErrContractViolation,
		},
		{
			name: "attribute without value element",
			xml: `<x><entity id="r1"><schemaClassId>C1Z</schemaClassId>
				<stringAttribute schemaPropertyId="Pjfa">High</stringAttribute></entity></x>`,
			wantErr: ErrContractViolation,
		},
		{
			name: "duplicate entity id",
			xml: `<x><entity id="r1"><schemaClassId>C1Z</schemaClassId></entity>
				<entity id="r1"><schemaClassId>C1</schemaClassId></entity></x>`,
			wantErr: ErrContractViolation,
		},
		{
			name:    "recognised entity without id",
			xml:     `<x><entity><schemaClassId>C1Z</schemaClassId></entity></x>`,
			wantErr: document.ErrMissingIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Entities(parse(t, tt.xml), schemaConfig(), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestEntities_UnknownAttributeOnRequirementIgnored(t *testing.T) {
	xml := `<x><entity id="r1"><schemaClassId>C1Z</schemaClassId>
		<stringAttribute schemaPropertyId="Pxyz"/></entity></x>`
	g, _, err := Entities(parse(t, xml), schemaConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", g.Requirements[0].Status)
}

func TestRelationships(t *testing.T) {
	doc := parse(t, exportXML)
	idx, err := Relationships(doc, resolve(t, doc))
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, []string{"e1", "e2"}, idx.Sources())

	fromE1 := idx.From("e1")
	require.Len(t, fromE1, 3)
	assert.Equal(t, types.Relationship{Source: "e1", Target: "e5", TypeID: "R4M", Kind: types.RelationSatisfiedBy}, fromE1[0])
	assert.Equal(t, "e2", fromE1[1].Target)
	assert.Equal(t, types.RelationOther, fromE1[2].Kind)

	assert.Equal(t, types.RelationSatisfies, idx.From("e2")[0].Kind)
	assert.Empty(t, idx.From("e4"))

	// Every relationship appears exactly once, grouped by source.
	all := idx.All()
	require.Len(t, all, 4)
	assert.Equal(t, "e2", all[3].Source)
}

func TestRelationships_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rel     string
		wantErr error
	}{
		{
			name:    "undeclared type",
			rel:     `<relationship><sourceId>a</sourceId><targetId>b</targetId><schemaRelationId>R00</schemaRelationId></relationship>`,
			wantErr: schema.ErrUnknownRelationType,
		},
		{
			name:    "missing type",
			rel:     `<relationship><sourceId>a</sourceId><targetId>b</targetId></relationship>`,
			wantErr: schema.ErrUnknownRelationType,
		},
		{
			name:    "missing target",
			rel:     `<relationship><sourceId>a</sourceId><schemaRelationId>R4M</schemaRelationId></relationship>`,
			wantErr: document.ErrMissingIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, "<innoslate>"+schemaXML+tt.rel+"</innoslate>")
			_, err := Relationships(doc, resolve(t, doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestLabels_Errors(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		wantErr error
	}{
		{
			name:    "description with markup elements",
			xml:     `<x><label id="L1"><name>a</name><description><b>bold</b></description></label></x>`,
			wantErr: ErrContractViolation,
		},
		{
			name:    "duplicate label id",
			xml:     `<x><label id="L1"><name>a</name></label><label id="L1"><name>b</name></label></x>`,
			wantErr: ErrContractViolation,
		},
		{
			name:    "missing id",
			xml:     `<x><label><name>a</name></label></x>`,
			wantErr: document.ErrMissingIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Labels(parse(t, tt.xml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExportYAMLAndJSON(t *testing.T) {
	doc := parse(t, exportXML)
	g, _, err := Extract(doc, resolve(t, doc), schemaConfig(), nil)
	require.NoError(t, err)

	var yb bytes.Buffer
	require.NoError(t, ExportYAML(&yb, g))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &fromYAML))
	reqs := fromYAML["requirements"].([]any)
	require.Len(t, reqs, 1)
	assert.Equal(t, "REQ-1", reqs[0].(map[string]any)["number"])

	var jb bytes.Buffer
	require.NoError(t, ExportJSON(&jb, g))
	var fromJSON GraphExport
	require.NoError(t, json.Unmarshal(jb.Bytes(), &fromJSON))
	assert.Len(t, fromJSON.Actions, 2)
	assert.Len(t, fromJSON.Relationships, 4)
	require.Len(t, fromJSON.Labels, 3)
	assert.Equal(t, "L1", fromJSON.Labels[0].ID)
	assert.Equal(t, "L3", fromJSON.Labels[2].ID)
}
