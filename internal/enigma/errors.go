// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enigma

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrBadRotorIndex  = errors.New("rotor index must be between 0 and 4")
	ErrBadPosition    = errors.New("position must be a single uppercase letter A-Z")
	ErrBadPlugToken   = errors.New("plugboard pair must be exactly two letters")
	ErrDuplicatePlug  = errors.New("letter already used by another plugboard pair")
	ErrSelfPlug       = errors.New("letter cannot be paired with itself")
	ErrNoRotors       = errors.New("at least one rotor is required")
	ErrBadRotorConfig = errors.New("rotor config must look like 0:A 1:B 2:C")
)

// ConfigError reports a machine setting that cannot be built.
// Err is one of the sentinel errors above, so callers can use errors.Is.
type ConfigError struct {
	Field string // "rotor", "position", "plugboard", "rotors"
	Value string // offending input, may be empty
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("enigma: invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("enigma: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(field, value string, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}

// IsConfigError reports whether err (or anything it wraps) is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
