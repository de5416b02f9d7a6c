// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the enigma TUI.

# Components

Field (field.go) - Labelled single-line text input with a focus ring and
an optional character counter.

StatusLine (status.go) - One-line outcome of the last action (sent, failed,
decoded) with an ASCII shape next to the color.

Both are plain structs driven by the parent model; neither implements
tea.Model on its own.
*/
package components
