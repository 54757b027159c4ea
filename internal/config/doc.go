// Package config loads, validates, and normalizes storyreel configuration.
//
// Configuration lives in a TOML file (default ~/.config/storyreel/config.toml)
// and every field has a usable default, so a missing file is not an error.
// Paths are tilde-expanded and made absolute during load. CLI flags override
// loaded values after the fact.
package config
