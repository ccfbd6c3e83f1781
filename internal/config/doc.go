// Package config loads and validates the printvault TOML configuration.
package config
