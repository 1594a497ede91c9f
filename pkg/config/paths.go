// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetMentorDataDir returns the Mentor data directory.
//
// Priority:
// 1. MENTOR_DATA_DIR environment variable (if set and non-empty)
// 2. ~/.mentor (default)
//
// The returned path is always absolute. Tilde (~) in MENTOR_DATA_DIR is
// expanded to the user's home directory, and relative paths are converted
// to absolute paths.
//
// This function reads directly from os.Getenv(), not from viper, because it
// is called during bootstrap to locate the config file itself.
func GetMentorDataDir() string {
	if dataDir := os.Getenv("MENTOR_DATA_DIR"); dataDir != "" {
		return expandPath(dataDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir cannot be determined
		return ".mentor"
	}
	return filepath.Join(homeDir, ".mentor")
}

// GetMentorSubDir returns a subdirectory within the Mentor data directory.
// Example: GetMentorSubDir("db") returns ~/.mentor/db
func GetMentorSubDir(subdir string) string {
	return filepath.Join(GetMentorDataDir(), subdir)
}

// expandPath expands ~ and resolves to absolute path
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path // Return as-is if we can't get home dir
		}
		return filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path // Return as-is if we can't make it absolute
	}
	return absPath
}
