package config

// This file loads the optional YAML config file. Values from the file act as
// defaults that CLI flags override.

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout. Pointer fields distinguish "unset"
// from an explicit zero value.
type fileConfig struct {
	Output     string `yaml:"output"`
	OutputMode string `yaml:"output_mode"`

	Grouping struct {
		Match  string   `yaml:"match"`  // tolerant | exact
		Anchor string   `yaml:"anchor"` // previous | first
		Margin *float64 `yaml:"margin"`
		Border *float64 `yaml:"border_correction"`
	} `yaml:"grouping"`

	Export struct {
		CopyMode   string  `yaml:"copy_mode"` // symlink | link | copy
		Sidecars   *bool   `yaml:"sidecars"`
		SidecarDir *string `yaml:"sidecar_dir"`
		SidecarExt *string `yaml:"sidecar_ext"`
	} `yaml:"export"`

	Report struct {
		ViewerURL string `yaml:"viewer_url"`
		Seed      int64  `yaml:"seed"`
	} `yaml:"report"`

	Logging struct {
		File    string `yaml:"file"`
		Color   string `yaml:"color"` // auto | always | never
		Verbose bool   `yaml:"verbose"`
	} `yaml:"logging"`
}

// LoadFile reads a YAML config file and overlays the values it sets onto cfg.
// ${VAR} and ${VAR:-default} references are expanded from the environment
// before parsing. Enum values are checked later by [Config.Validate].
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	data = expandEnvVars(data)

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	fc.apply(cfg)
	cfg.ConfigFile = path
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.Output, fc.Output)
	if fc.OutputMode != "" {
		cfg.OutputMode = OutputMode(strings.ToLower(fc.OutputMode))
	}

	g := &fc.Grouping
	if g.Match != "" {
		cfg.Match = MatchPolicy(strings.ToLower(g.Match))
	}
	if g.Anchor != "" {
		cfg.Anchor = AnchorPolicy(strings.ToLower(g.Anchor))
	}
	if g.Margin != nil {
		cfg.Margin = *g.Margin
	}
	if g.Border != nil {
		cfg.Border = *g.Border
	}

	e := &fc.Export
	if e.CopyMode != "" {
		cfg.CopyMode = CopyMode(strings.ToLower(e.CopyMode))
	}
	if e.Sidecars != nil {
		cfg.Sidecars = *e.Sidecars
	}
	if e.SidecarDir != nil {
		cfg.SidecarDir = *e.SidecarDir
	}
	if e.SidecarExt != nil {
		cfg.SidecarExt = *e.SidecarExt
	}

	setString(&cfg.ViewerURL, fc.Report.ViewerURL)
	if fc.Report.Seed != 0 {
		cfg.Seed = fc.Report.Seed
	}

	setString(&cfg.LogFile, fc.Logging.File)
	if fc.Logging.Color != "" {
		cfg.ColorMode = ColorMode(strings.ToLower(fc.Logging.Color))
	}
	if fc.Logging.Verbose {
		cfg.Verbose = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}
