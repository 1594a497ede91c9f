// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMentorDataDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTOR_DATA_DIR", dir)
	assert.Equal(t, dir, GetMentorDataDir())
}

func TestGetMentorDataDirDefault(t *testing.T) {
	t.Setenv("MENTOR_DATA_DIR", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mentor"), GetMentorDataDir())
}

func TestGetMentorDataDirExpandsTilde(t *testing.T) {
	t.Setenv("MENTOR_DATA_DIR", "~/mentor-data")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "mentor-data"), GetMentorDataDir())
}

func TestGetMentorSubDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTOR_DATA_DIR", dir)
	assert.Equal(t, filepath.Join(dir, "db"), GetMentorSubDir("db"))
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTOR_DATA_DIR", dir)

	settings, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, dir, settings.DataDir)
	assert.Equal(t, "ollama", settings.EmbeddingProvider)
	assert.Equal(t, "http://localhost:11434", settings.OllamaURL)
	assert.Equal(t, filepath.Join(dir, "mentor.db"), settings.DatabasePath())
	assert.Equal(t, filepath.Join(dir, "vectors.db"), settings.VectorDatabasePath())
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTOR_DATA_DIR", dir)

	yaml := "model: claude-sonnet-4-5-20250929\nembedding_provider: gemini\ngemini_api_key: test-key\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	settings, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5-20250929", settings.Model)
	assert.Equal(t, "gemini", settings.EmbeddingProvider)
	assert.Equal(t, "test-key", settings.GeminiAPIKey)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MENTOR_DATA_DIR", dir)
	t.Setenv("MENTOR_MODEL", "claude-haiku-4-5")

	settings, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", settings.Model)
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "mentor")
	settings := &Settings{DataDir: dir}

	got, err := settings.EnsureDataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
