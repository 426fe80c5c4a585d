//go:build !windows

// Package fatomic writes files atomically, so a half-written configuration
// can never be picked up by a later run.
package fatomic

import (
	"os"

	"github.com/google/renameio/v2"
)

func WriteFile(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
