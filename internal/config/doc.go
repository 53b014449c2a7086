// Package config defines the application configuration structure and
// loading logic. Configuration is sourced from environment variables
// (FLODESK_PROXY prefix) and an optional YAML config file, with
// environment variables taking precedence.
package config
