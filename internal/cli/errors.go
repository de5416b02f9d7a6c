// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands.
//
// STANDARDIZED PATTERN:
//   - ALWAYS return errors (never just print and return nil)
//   - Let the caller decide how to display errors
//   - Use structured error types for better error handling

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/enigma-tui/internal/config"
	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/messaging"
	"github.com/jeranaias/enigma-tui/internal/storage"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a bad machine key or configuration file
	ExitConfigError = 3
	// ExitStorageError indicates the message log could not be read or written
	ExitStorageError = 4
	// ExitRateLimited indicates sends were throttled
	ExitRateLimited = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
	// ExitInterrupted indicates the command was cancelled (Ctrl+C)
	ExitInterrupted = 130
)

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "send", "config")
	Action  string // Action being performed (e.g., "init", "append")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "config file", "command")
	ID       string // Identifier that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConfigLoadError wraps a failure to read or validate the config file.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, Example: example}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// =============================================================================
// ERROR DISPLAY HELPERS
// =============================================================================

// DisplayError writes err to w, as JSON in JSON mode.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(w, err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON writes err as a JSON object with a machine-readable type.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":      err.Error(),
		"success":    false,
		"error_type": errorType(err),
		"exit_code":  GetExitCode(err),
	}

	var (
		ve  *ValidationError
		ce  *CommandError
		ke  *enigma.ConfigError
		mve *messaging.ValidationError
	)
	switch {
	case errors.As(err, &ve):
		output["field"] = ve.Field
		output["value"] = ve.Value
		output["reason"] = ve.Reason
		if ve.Example != "" {
			output["example"] = ve.Example
		}
	case errors.As(err, &mve):
		output["fields"] = mve.Fields
	case errors.As(err, &ke):
		output["field"] = ke.Field
		output["value"] = ke.Value
		output["reason"] = ke.Err.Error()
	case errors.As(err, &ce):
		output["command"] = ce.Command
		output["action"] = ce.Action
		output["reason"] = ce.Reason
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

func errorType(err error) string {
	switch GetExitCode(err) {
	case ExitUsageError:
		return "validation_error"
	case ExitConfigError:
		return "config_error"
	case ExitStorageError:
		return "storage_error"
	case ExitRateLimited:
		return "rate_limited"
	case ExitNotFoundError:
		return "not_found_error"
	case ExitInterrupted:
		return "interrupted"
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return "command_error"
	}
	return "generic_error"
}

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		validationErr *ValidationError
		formErr       *messaging.ValidationError
		notFoundErr   *NotFoundError
		keyErr        *enigma.ConfigError
		cfgErrs       config.ValidateErrors
		cfgErr        config.ValidationError
		loadErr       *ConfigLoadError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &validationErr), errors.As(err, &formErr):
		return ExitUsageError
	case errors.As(err, &keyErr), errors.As(err, &cfgErrs), errors.As(err, &cfgErr), errors.As(err, &loadErr):
		return ExitConfigError
	case errors.Is(err, messaging.ErrRateLimited):
		return ExitRateLimited
	case errors.As(err, &notFoundErr):
		return ExitNotFoundError
	case errors.Is(err, storage.ErrCorruptLog),
		errors.Is(err, storage.ErrUnknownBackend),
		errors.Is(err, storage.ErrInvalidEntry),
		errors.Is(err, storage.ErrClosed):
		return ExitStorageError
	}
	return ExitGeneralError
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
