// Package config loads and merges censor configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CENSOR_ENGINE, CENSOR_WRITE_MODE, CENSOR_PRESETS, etc.)
//  3. Config file ($XDG_CONFIG_HOME/censor/config.json, or $CENSOR_CONFIG)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write one, and [SetField]
// to update a single key.
package config
