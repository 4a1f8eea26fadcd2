// SPDX-License-Identifier: MIT

// Package config holds the settings of the esh command line tool.
//
// Values resolve in three layers, each overriding the previous one:
// Default(), an optional YAML file (Load), then ESH_* environment variables
// (ApplyEnv), which may themselves come from .env files (LoadEnv).
// Validate rejects inconsistent settings before any work starts.
package config
