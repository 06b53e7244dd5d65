package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alnah/go-mdpdf/internal/config"
)

// Environment variable names.
const (
	envConfigPath     = "MDPDF_CONFIG"
	envTimeout        = "MDPDF_TIMEOUT"
	envHighlightStyle = "MDPDF_HIGHLIGHT_STYLE"
	envContainer      = "MDPDF_CONTAINER" // read by doctor only
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MDPDF_CONFIG: config file name or path
	Timeout        string // MDPDF_TIMEOUT: conversion timeout, validated with the config
	HighlightStyle string // MDPDF_HIGHLIGHT_STYLE: chroma style, enables highlighting
}

// knownEnvVars lists valid MDPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath:     true,
	envTimeout:        true,
	envHighlightStyle: true,
	envContainer:      true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:     strings.TrimSpace(getenv(envConfigPath)),
		Timeout:        strings.TrimSpace(getenv(envTimeout)),
		HighlightStyle: strings.TrimSpace(getenv(envHighlightStyle)),
	}
}

// warnUnknownEnvVars prints a warning for each unrecognized MDPDF_* variable.
// Helps catch typos like MDPDF_TIMEOUTS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "MDPDF_") && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overlays environment values on the file config.
// Environment wins over the file; CLI flags are applied afterwards by mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	if env.HighlightStyle != "" {
		cfg.Code.Style = env.HighlightStyle
		cfg.Code.Highlight = true
	}
}
