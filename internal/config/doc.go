// Package config handles loading the uplogview configuration file.
// Configuration lives in ~/.config/uplogview/config.toml; every field is
// optional and a missing file yields pure defaults.
package config
