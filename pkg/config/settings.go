// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds user-tunable configuration loaded from the config file,
// environment variables, and flags (in increasing precedence).
type Settings struct {
	// DataDir is where the databases live. Defaults to the Mentor data dir.
	DataDir string `mapstructure:"data_dir"`

	// AnthropicAPIKey authenticates the LLM provider.
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	// Model overrides the provider's default model when non-empty.
	Model string `mapstructure:"model"`

	// EmbeddingProvider selects the embedding engine: "gemini" or "ollama".
	EmbeddingProvider string `mapstructure:"embedding_provider"`

	// GeminiAPIKey authenticates the Gemini embedding engine.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// EmbeddingModel overrides the engine's default embedding model.
	EmbeddingModel string `mapstructure:"embedding_model"`

	// OllamaURL points at a local Ollama server for embeddings.
	OllamaURL string `mapstructure:"ollama_url"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// Load reads settings from $MENTOR_DATA_DIR/config.yaml (if present) and the
// MENTOR_* environment, on top of the given viper instance so flag bindings
// survive. A missing config file is not an error.
func Load(v *viper.Viper) (*Settings, error) {
	dataDir := GetMentorDataDir()

	// Every key needs a registered default so AutomaticEnv values survive
	// Unmarshal.
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("model", "")
	v.SetDefault("embedding_provider", "ollama")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("embedding_model", "")
	v.SetDefault("ollama_url", "http://localhost:11434")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("MENTOR")
	v.AutomaticEnv()

	// ANTHROPIC_API_KEY and GEMINI_API_KEY are the conventional names; honor
	// them without the prefix.
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		v.SetDefault("anthropic_api_key", key)
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		v.SetDefault("gemini_api_key", key)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if settings.DataDir == "" {
		settings.DataDir = dataDir
	}
	settings.DataDir = expandPath(settings.DataDir)
	return &settings, nil
}

// EnsureDataDir creates the data directory if needed and returns it.
func (s *Settings) EnsureDataDir() (string, error) {
	if err := os.MkdirAll(s.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir %s: %w", s.DataDir, err)
	}
	return s.DataDir, nil
}

// DatabasePath returns the relational store path under the data dir.
func (s *Settings) DatabasePath() string {
	return filepath.Join(s.DataDir, "mentor.db")
}

// VectorDatabasePath returns the vector store path under the data dir.
func (s *Settings) VectorDatabasePath() string {
	return filepath.Join(s.DataDir, "vectors.db")
}
