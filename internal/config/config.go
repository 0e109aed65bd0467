// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and validates the exporter configuration.
// Values come from built-in defaults, an optional YAML file, MBSE_EXPORT_*
// environment variables and bound command-line flags, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mbse-export/pkg/types"
)

const (
	// Name is the config file base name searched in the working directory
	// and in ~/.config/mbse-export/.
	Name      = "mbse-export"
	envPrefix = "MBSE_EXPORT"
)

var validate = validator.New()

// NewViper returns a viper instance set up to find the config file. When
// cfgFile is non-empty only that file is read.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every default key with v. AutomaticEnv only
// consults the environment for keys viper already knows about.
func setDefaults(v *viper.Viper) {
	data, err := yaml.Marshal(types.DefaultExportConfig())
	if err != nil {
		panic(fmt.Sprintf("marshaling default config: %v", err))
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		panic(fmt.Sprintf("unmarshaling default config: %v", err))
	}
	for k, val := range m {
		v.SetDefault(k, val)
	}
}

// Load reads the config file (if any) over the registered defaults and
// validates the result. A missing config file is not an error. It returns
// the path of the file used, or "" when none was found.
func Load(v *viper.Viper) (types.ExportConfig, string, error) {
	var cfg types.ExportConfig

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, "", fmt.Errorf("reading config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, used, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, used, err
	}
	return cfg, used, nil
}

// Validate checks field constraints and cross-field consistency.
func Validate(cfg types.ExportConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	if cfg.Report.Enabled(types.ReportAssets) && cfg.Schema.Classes.Asset == "" {
		return fmt.Errorf("invalid config: report %q requires schema.classes.asset", types.ReportAssets)
	}

	seen := make(map[string]types.RelationKind)
	for _, kind := range relationOrder {
		id := cfg.Schema.Relations.Kinds()[kind].ID
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("invalid config: relation id %q used for both %s and %s", id, prev, kind)
		}
		seen[id] = kind
	}
	return nil
}

var relationOrder = []types.RelationKind{
	types.RelationSatisfies,
	types.RelationSatisfiedBy,
	types.RelationDecomposes,
	types.RelationDecomposedBy,
	types.RelationSourcedBy,
	types.RelationReceivesIO,
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	// Namespace is "ExportConfig.Schema.Classes.Requirement"; drop the root.
	field := e.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ToLower(field)

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, strings.ToLower(e.Param()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
