// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !unix && !windows

package storage

import "os"

// No advisory locking on this platform; the in-process mutex still applies.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
