// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and saves the enigma settings file.
//
// The file lives at ~/.enigma/config.toml (or $ENIGMA_HOME/config.toml).
// Missing files fall back to Default(); environment variables are applied on
// top of whatever was loaded:
//
//	ENIGMA_HOME        configuration and data directory
//	ENIGMA_SENDER      default sender name
//	ENIGMA_STORE       message log backend (csv, sqlite)
//	ENIGMA_STORE_PATH  message log file
//	ENIGMA_LOG_LEVEL   debug, info, warn, error, off
package config
