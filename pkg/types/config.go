package types

// ClassConfig maps schema-class identifiers from the export to entity
// classes. An empty Asset id disables asset extraction.
type ClassConfig struct {
	Requirement string `json:"requirement" yaml:"requirement" mapstructure:"requirement" validate:"required"`
	Action      string `json:"action" yaml:"action" mapstructure:"action" validate:"required"`
	Asset       string `json:"asset" yaml:"asset" mapstructure:"asset"`
}

// PropertyConfig holds the schema-property identifiers of requirement
// attributes.
type PropertyConfig struct {
	Status   string `json:"status" yaml:"status" mapstructure:"status" validate:"required"`
	Priority string `json:"priority" yaml:"priority" mapstructure:"priority" validate:"required"`
}

// RelationType pairs a relationship-type identifier with the name the export
// is expected to declare for it.
type RelationType struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Name string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
}

// RelationConfig lists the relationship types this tool depends on. The
// schema resolver checks every one against the export's declarations.
type RelationConfig struct {
	Satisfies    RelationType `json:"satisfies" yaml:"satisfies" mapstructure:"satisfies"`
	SatisfiedBy  RelationType `json:"satisfied_by" yaml:"satisfied_by" mapstructure:"satisfied_by"`
	Decomposes   RelationType `json:"decomposes" yaml:"decomposes" mapstructure:"decomposes"`
	DecomposedBy RelationType `json:"decomposed_by" yaml:"decomposed_by" mapstructure:"decomposed_by"`
	SourcedBy    RelationType `json:"sourced_by" yaml:"sourced_by" mapstructure:"sourced_by"`
	ReceivesIO   RelationType `json:"receives_io" yaml:"receives_io" mapstructure:"receives_io"`
}

// Kinds returns the configured relation types keyed by kind.
func (c RelationConfig) Kinds() map[RelationKind]RelationType {
	return map[RelationKind]RelationType{
		RelationSatisfies:    c.Satisfies,
		RelationSatisfiedBy:  c.SatisfiedBy,
		RelationDecomposes:   c.Decomposes,
		RelationDecomposedBy: c.DecomposedBy,
		RelationSourcedBy:    c.SourcedBy,
		RelationReceivesIO:   c.ReceivesIO,
	}
}

// SchemaConfig groups every identifier the extractor relies on.
type SchemaConfig struct {
	Classes    ClassConfig    `json:"classes" yaml:"classes" mapstructure:"classes"`
	Properties PropertyConfig `json:"properties" yaml:"properties" mapstructure:"properties"`
	Relations  RelationConfig `json:"relations" yaml:"relations" mapstructure:"relations"`
}

// ReportKind names one output table family.
type ReportKind string

const (
	ReportRequirements ReportKind = "requirements"
	ReportActions      ReportKind = "actions"
	ReportAssets       ReportKind = "assets"
	ReportMatrix       ReportKind = "matrix"
	ReportDuplicates   ReportKind = "duplicates"
)

// DescriptionFormat selects how description markup is rendered.
type DescriptionFormat string

const (
	DescriptionText     DescriptionFormat = "text"
	DescriptionMarkdown DescriptionFormat = "markdown"
)

// FileNames holds the output file name of each table.
type FileNames struct {
	Requirements          string `json:"requirements" yaml:"requirements" mapstructure:"requirements" validate:"required"`
	Actions               string `json:"actions" yaml:"actions" mapstructure:"actions" validate:"required"`
	Assets                string `json:"assets" yaml:"assets" mapstructure:"assets" validate:"required"`
	Matrix                string `json:"matrix" yaml:"matrix" mapstructure:"matrix" validate:"required"`
	DuplicateRequirements string `json:"duplicate_requirements" yaml:"duplicate_requirements" mapstructure:"duplicate_requirements" validate:"required"`
	DuplicateActions      string `json:"duplicate_actions" yaml:"duplicate_actions" mapstructure:"duplicate_actions" validate:"required"`
	DuplicateAssets       string `json:"duplicate_assets" yaml:"duplicate_assets" mapstructure:"duplicate_assets" validate:"required"`
}

// ReportConfig controls which tables are produced and how they are written.
type ReportConfig struct {
	// Reports is the enabled report set.
	Reports []ReportKind `json:"reports" yaml:"reports" mapstructure:"reports" validate:"required,min=1,dive,oneof=requirements actions assets matrix duplicates"`

	// OutputDir is the directory the tables are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir" validate:"required"`

	Files FileNames `json:"files" yaml:"files" mapstructure:"files"`

	// SepDirective prepends a "sep=," row for spreadsheet compatibility.
	SepDirective bool `json:"sep_directive" yaml:"sep_directive" mapstructure:"sep_directive"`

	// Marker and Placeholder fill the traceability matrix cells.
	Marker      string `json:"marker" yaml:"marker" mapstructure:"marker" validate:"required"`
	Placeholder string `json:"placeholder" yaml:"placeholder" mapstructure:"placeholder" validate:"required,nefield=Marker"`

	DescriptionFormat DescriptionFormat `json:"description_format" yaml:"description_format" mapstructure:"description_format" validate:"oneof=text markdown"`

	// SameClassReferences keeps cross-references whose target has the same
	// class as the row. Off by default: columns list other classes only.
	SameClassReferences bool `json:"same_class_references" yaml:"same_class_references" mapstructure:"same_class_references"`
}

// Enabled reports whether kind is in the report set.
func (c ReportConfig) Enabled(kind ReportKind) bool {
	for _, k := range c.Reports {
		if k == kind {
			return true
		}
	}
	return false
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Format is "console" (human readable) or "json".
	Format  string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=console json"`
	Verbose bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// ExportConfig is the complete tool configuration.
type ExportConfig struct {
	Schema SchemaConfig `json:"schema" yaml:"schema" mapstructure:"schema"`
	Report ReportConfig `json:"report" yaml:"report" mapstructure:"report"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultExportConfig returns the identifiers and file names used by the
// upstream tool's current export schema.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Schema: SchemaConfig{
			Classes: ClassConfig{
				Requirement: "C1Z",
				Action:      "C1",
				Asset:       "C8",
			},
			Properties: PropertyConfig{
				Status:   "P3q6z",
				Priority: "Pjfa",
			},
			Relations: RelationConfig{
				Satisfies:    RelationType{ID: "R4N", Name: "satisfies"},
				SatisfiedBy:  RelationType{ID: "R4M", Name: "satisfied by"},
				Decomposes:   RelationType{ID: "R30", Name: "decomposes"},
				DecomposedBy: RelationType{ID: "R2Z", Name: "decomposed by"},
				SourcedBy:    RelationType{ID: "R4T", Name: "sourced by"},
				ReceivesIO:   RelationType{ID: "R44", Name: "receives"},
			},
		},
		Report: ReportConfig{
			Reports: []ReportKind{
				ReportRequirements, ReportActions, ReportAssets, ReportMatrix, ReportDuplicates,
			},
			OutputDir: ".",
			Files: FileNames{
				Requirements:          "Requirements.csv",
				Actions:               "Actions.csv",
				Assets:                "Assets.csv",
				Matrix:                "Requirements_Functions_matrix.csv",
				DuplicateRequirements: "_duplicate_requirements.csv",
				DuplicateActions:      "_duplicate_actions.csv",
				DuplicateAssets:       "_duplicate_assets.csv",
			},
			SepDirective:      true,
			Marker:            "X",
			Placeholder:       ".",
			DescriptionFormat: DescriptionText,
		},
		Log: LogConfig{
			Format: "console",
		},
	}
}
