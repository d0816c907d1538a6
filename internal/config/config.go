package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything uplogview needs to talk to a uplog tools
// server and render its sessions. It is built once at startup and passed
// to whoever needs it; there is no shared mutable client state.
type Config struct {
	Endpoint      string
	Headers       map[string]string
	PageLength    int
	FollowSeconds int
	Theme         string
	DebugLog      string
}

const (
	defaultConfigPath    = "~/.config/uplogview/config.toml"
	defaultEndpoint      = "http://127.0.0.1:8000/"
	defaultPageLength    = 500
	defaultFollowSeconds = 2
	defaultTheme         = "Dracula"
)

// Load locates and parses the uplogview config, falling back to defaults
// when the file is missing. An absent file is not an error so the tool
// works out of the box against a local server.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint      string            `toml:"endpoint"`
		Headers       map[string]string `toml:"headers"`
		PageLength    int               `toml:"page_length"`
		FollowSeconds int               `toml:"follow_seconds"`
		Theme         string            `toml:"theme"`
		DebugLog      string            `toml:"debug_log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if endpoint := strings.TrimSpace(raw.Endpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if len(raw.Headers) > 0 {
		cfg.Headers = raw.Headers
	}
	if raw.PageLength > 0 {
		cfg.PageLength = raw.PageLength
	}
	if raw.FollowSeconds > 0 {
		cfg.FollowSeconds = raw.FollowSeconds
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if logPath := strings.TrimSpace(raw.DebugLog); logPath != "" {
		cfg.DebugLog = mustExpand(logPath)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		Endpoint:      defaultEndpoint,
		PageLength:    defaultPageLength,
		FollowSeconds: defaultFollowSeconds,
		Theme:         defaultTheme,
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
