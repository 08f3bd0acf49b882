// Package config loads run settings from YAML.
//
// Unknown keys are rejected, values are checked with validator tags, and
// command line flags override whatever the file set. OutputPath derives the
// per-table file names from the output base.
package config
