// Package config loads and validates picker-gateway configuration from YAML
// files, with ${VAR} environment expansion and duration string parsing.
package config
