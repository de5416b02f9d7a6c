// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
	"os"
)

// lockSuffix names the sidecar file that serializes writers across
// processes. Watch ignores it.
const lockSuffix = ".lock"

// fileLock is an exclusive advisory lock held on a sidecar file.
type fileLock struct {
	f *os.File
}

// acquireLock blocks until it holds the exclusive lock on path+".lock".
// The lock is advisory: only writers that also take it are excluded.
func acquireLock(path string) (*fileLock, error) {
	f, err := os.OpenFile(path+lockSuffix, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to lock message log: %w", err)
	}
	return &fileLock{f: f}, nil
}

// Release drops the lock and closes the sidecar.
func (l *fileLock) Release() error {
	return errors.Join(unlockFile(l.f), l.f.Close())
}
