// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teradata-labs/mentor/internal/log"
	"github.com/teradata-labs/mentor/pkg/config"
	"github.com/teradata-labs/mentor/pkg/embedding"
	"github.com/teradata-labs/mentor/pkg/llm/anthropic"
	"github.com/teradata-labs/mentor/pkg/orchestrator"
	"github.com/teradata-labs/mentor/pkg/storage"
	"github.com/teradata-labs/mentor/pkg/types"
)

var (
	vp       = viper.New()
	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Mentor - AI tutor that researches a subject and teaches it to you",
	Long: `Mentor designs a curriculum for a subject you want to learn, researches it
into a personal knowledge base, and delivers adaptive lessons grounded in
what it found.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(vp)
		if err != nil {
			return err
		}
		log.Init(settings.Verbose)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "data directory (default: $MENTOR_DATA_DIR or ~/.mentor)")
	rootCmd.PersistentFlags().String("anthropic-key", "", "Anthropic API key (or use ANTHROPIC_API_KEY)")
	rootCmd.PersistentFlags().String("model", "", "Anthropic model override")
	rootCmd.PersistentFlags().String("embedding", "", "embedding provider (gemini, ollama)")
	rootCmd.PersistentFlags().String("gemini-key", "", "Gemini API key for embeddings (or use GEMINI_API_KEY)")
	rootCmd.PersistentFlags().String("ollama-url", "", "Ollama server URL for embeddings")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	_ = vp.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = vp.BindPFlag("anthropic_api_key", rootCmd.PersistentFlags().Lookup("anthropic-key"))
	_ = vp.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = vp.BindPFlag("embedding_provider", rootCmd.PersistentFlags().Lookup("embedding"))
	_ = vp.BindPFlag("gemini_api_key", rootCmd.PersistentFlags().Lookup("gemini-key"))
	_ = vp.BindPFlag("ollama_url", rootCmd.PersistentFlags().Lookup("ollama-url"))
	_ = vp.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// app bundles everything a command needs, with a single Close.
type app struct {
	db      *storage.Database
	vectors *storage.VectorStore
	orch    *orchestrator.Orchestrator
}

func (a *app) Close() {
	if a.vectors != nil {
		_ = a.vectors.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// newApp opens the stores under the data dir and wires the orchestrator.
func newApp() (*app, error) {
	if settings.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required (set ANTHROPIC_API_KEY or --anthropic-key)")
	}

	if _, err := settings.EnsureDataDir(); err != nil {
		return nil, err
	}

	db, err := storage.New(storage.Config{Path: settings.DatabasePath()})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	engine, err := newEmbeddingEngine()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	vectors, err := storage.NewVectorStore(storage.VectorConfig{
		Path:   settings.VectorDatabasePath(),
		Engine: engine,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	provider := anthropic.NewClient(anthropic.Config{
		APIKey: settings.AnthropicAPIKey,
		Model:  settings.Model,
	})

	orch, err := orchestrator.New(orchestrator.Config{
		DB:       db,
		Vectors:  vectors,
		Provider: provider,
	})
	if err != nil {
		_ = vectors.Close()
		_ = db.Close()
		return nil, err
	}

	return &app{db: db, vectors: vectors, orch: orch}, nil
}

func newEmbeddingEngine() (embedding.Engine, error) {
	cfg := embedding.DefaultConfig()
	if settings.EmbeddingProvider != "" {
		cfg.Provider = settings.EmbeddingProvider
	}
	if settings.OllamaURL != "" {
		cfg.OllamaEndpoint = settings.OllamaURL
	}
	cfg.GeminiAPIKey = settings.GeminiAPIKey
	if settings.EmbeddingModel != "" {
		cfg.OllamaModel = settings.EmbeddingModel
		cfg.GeminiModel = settings.EmbeddingModel
	}
	return embedding.NewEngine(cfg)
}

// requireSubjectArgOrActive resolves an optional subject argument against the
// active subject.
func requireSubjectArgOrActive(cmd *cobra.Command, args []string, a *app) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	subjectID, err := a.orch.ActiveSubject(cmd.Context())
	if err != nil {
		return "", err
	}
	if subjectID == "" {
		return "", fmt.Errorf("no active subject; pass one or run 'mentor use <subject>'")
	}
	return subjectID, nil
}

func printGoal(goal *types.LearningGoal) {
	fmt.Printf("  %s\n", goal.SubjectID)
	if goal.PurposeStatement != "" {
		fmt.Printf("    purpose: %s\n", goal.PurposeStatement)
	}
	fmt.Printf("    depth: %s  status: %s\n", goal.TargetDepth, goal.Status)
}
