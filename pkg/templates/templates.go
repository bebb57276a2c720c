// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// RegionsYAML contains the default regions.yaml template with country and
// state/province names recognized by the occurrence filter.
//
//go:embed regions.yaml
var RegionsYAML string
