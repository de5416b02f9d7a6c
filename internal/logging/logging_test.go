// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesFieldsAtLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", &buf)
	require.NoError(t, err)

	log.WithField("sender", "alice").Info("message sent")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "message sent")
	assert.Contains(t, out, "sender=alice")
	assert.NotContains(t, out, "hidden")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)

	lvl, err = ParseLevel("off")
	require.NoError(t, err)
	assert.Equal(t, logrus.PanicLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.NotPanics(t, func() { log.Error("dropped") })
}
