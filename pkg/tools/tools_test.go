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
package tools

import (
	"context"
	"hash/fnv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/storage"
)

// wordEngine is a deterministic embedding engine so semantic search is
// testable without a model server.
type wordEngine struct{}

func (e *wordEngine) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.Dimensions())
	for _, word := range strings.Fields(strings.ToLower(text)) {
		hasher := fnv.New32a()
		_, _ = hasher.Write([]byte(word))
		vec[hasher.Sum32()%uint32(len(vec))] += 1.0
	}
	return vec, nil
}

func (e *wordEngine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func (e *wordEngine) Dimensions() int { return 64 }

func (e *wordEngine) Name() string { return "test:word" }

func newTestExecutor(t *testing.T) *shuttle.Executor {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.New(storage.Config{Path: filepath.Join(dir, "mentor.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	vectors, err := storage.NewVectorStore(storage.VectorConfig{
		Path:   filepath.Join(dir, "vectors.db"),
		Engine: &wordEngine{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = vectors.Close() })

	return shuttle.NewExecutor(NewRegistry(db, vectors))
}

func TestRegistryHasCanonicalTools(t *testing.T) {
	executor := newTestExecutor(t)

	for _, name := range []string{
		"get_active_subject", "set_active_subject", "list_subjects",
		"get_learning_goal", "save_learning_goal", "get_knowledge_node",
		"get_knowledge_tree", "save_knowledge_node", "get_user_progress",
		"record_assessment", "store_knowledge", "vector_search",
		"get_knowledge_by_topic",
	} {
		result := executor.Execute(context.Background(), name, map[string]interface{}{})
		require.NotNil(t, result, name)
		if !result.Success {
			assert.NotEqual(t, "unknown_tool", result.Error.Code, name)
		}
	}
}

func TestActiveSubjectRoundTrip(t *testing.T) {
	executor := newTestExecutor(t)
	ctx := context.Background()

	result := executor.Execute(ctx, "get_active_subject", nil)
	require.True(t, result.Success)
	assert.Nil(t, result.Data)

	result = executor.Execute(ctx, "set_active_subject", map[string]interface{}{
		"subject_id": "kubernetes",
	})
	require.True(t, result.Success)

	result = executor.Execute(ctx, "get_active_subject", nil)
	require.True(t, result.Success)
	assert.Equal(t, "kubernetes", result.Data)
}

func TestSaveAndGetLearningGoal(t *testing.T) {
	executor := newTestExecutor(t)
	ctx := context.Background()

	result := executor.Execute(ctx, "save_learning_goal", map[string]interface{}{
		"subject_id":        "kubernetes",
		"purpose_statement": "operate a production cluster",
	})
	require.True(t, result.Success, "%v", result.Error)

	saved, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	// target_depth comes from the schema default
	assert.Equal(t, "practical", saved["target_depth"])

	result = executor.Execute(ctx, "get_learning_goal", map[string]interface{}{
		"subject_id": "kubernetes",
	})
	require.True(t, result.Success)
	goal, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "operate a production cluster", goal["purpose_statement"])

	result = executor.Execute(ctx, "get_learning_goal", map[string]interface{}{
		"subject_id": "unknown",
	})
	require.True(t, result.Success)
	assert.Nil(t, result.Data)
}

func TestListSubjectsViaTool(t *testing.T) {
	executor := newTestExecutor(t)
	ctx := context.Background()

	result := executor.Execute(ctx, "list_subjects", nil)
	require.True(t, result.Success)
	assert.Empty(t, result.Data)

	for _, subject := range []string{"kubernetes", "rust"} {
		result = executor.Execute(ctx, "save_learning_goal", map[string]interface{}{
			"subject_id":        subject,
			"purpose_statement": "learn " + subject,
		})
		require.True(t, result.Success)
	}

	result = executor.Execute(ctx, "list_subjects", nil)
	require.True(t, result.Success)
	subjects, ok := result.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, subjects, 2)
}

func TestSaveKnowledgeNodeDefaults(t *testing.T) {
	executor := newTestExecutor(t)
	ctx := context.Background()

	result := executor.Execute(ctx, "save_learning_goal", map[string]interface{}{
		"subject_id":        "kubernetes",
		"purpose_statement": "learn",
	})
	require.True(t, result.Success)

	result = executor.Execute(ctx, "save_knowledge_node", map[string]interface{}{
		"subject_id": "kubernetes",
		"title":      "Pods",
	})
	require.True(t, result.Success, "%v", result.Error)
	node, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), node["depth"])
	assert.Equal(t, false, node["is_goal_critical"])
	assert.Nil(t, node["parent_id"])
	podsID := node["id"].(float64)

	result = executor.Execute(ctx, "save_knowledge_node", map[string]interface{}{
		"subject_id": "kubernetes",
		"title":      "Containers",
		"parent_id":  podsID,
		"depth":      float64(1),
	})
	require.True(t, result.Success, "%v", result.Error)

	result = executor.Execute(ctx, "get_knowledge_tree", map[string]interface{}{
		"subject_id": "kubernetes",
	})
	require.True(t, result.Success)
	nodes, ok := result.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, nodes, 2)
	first := nodes[0].(map[string]interface{})
	assert.Equal(t, "Pods", first["title"])

	result = executor.Execute(ctx, "get_knowledge_node", map[string]interface{}{
		"node_id": podsID,
	})
	require.True(t, result.Success)
	fetched := result.Data.(map[string]interface{})
	assert.Equal(t, "Pods", fetched["title"])

	result = executor.Execute(ctx, "get_knowledge_node", map[string]interface{}{
		"node_id": float64(9999),
	})
	require.True(t, result.Success)
	assert.Nil(t, result.Data)
}

func TestStoreAndSearchKnowledge(t *testing.T) {
	executor := newTestExecutor(t)
	ctx := context.Background()

	facts := []map[string]interface{}{
		{
			"content":      "services expose stable network endpoints",
			"topic_path":   "Services",
			"source_url":   "https://kubernetes.io/docs/concepts/services-networking/",
			"source_score": 0.95,
			"confidence":   0.9,
		},
		{
			"content":      "pods group containers with shared storage",
			"topic_path":   "Pods",
			"source_url":   "https://kubernetes.io/docs/concepts/workloads/pods/",
			"source_score": 0.95,
			"confidence":   0.9,
		},
	}
	for _, fact := range facts {
		fact["subject_id"] = "kubernetes"
		result := executor.Execute(ctx, "store_knowledge", fact)
		require.True(t, result.Success, "%v", result.Error)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "stored", data["status"])
	}

	// top_k and min_confidence fall back to schema defaults
	result := executor.Execute(ctx, "vector_search", map[string]interface{}{
		"query":      "network endpoints",
		"subject_id": "kubernetes",
	})
	require.True(t, result.Success, "%v", result.Error)
	hits, ok := result.Data.([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, hits)
	top := hits[0].(map[string]interface{})
	chunk := top["chunk"].(map[string]interface{})
	assert.Equal(t, "Services", chunk["topic_path"])

	result = executor.Execute(ctx, "get_knowledge_by_topic", map[string]interface{}{
		"subject_id": "kubernetes",
		"topic_path": "Pods",
	})
	require.True(t, result.Success)
	chunks, ok := result.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, chunks, 1)
}

func TestProgressStubs(t *testing.T) {
	executor := newTestExecutor(t)
	ctx := context.Background()

	result := executor.Execute(ctx, "get_user_progress", map[string]interface{}{
		"node_id": float64(1),
	})
	require.True(t, result.Success)
	assert.Nil(t, result.Data)

	result = executor.Execute(ctx, "record_assessment", map[string]interface{}{
		"node_id":       float64(1),
		"question_hash": "q1",
		"response":      "a pod is the smallest deployable unit",
		"correct":       true,
	})
	require.True(t, result.Success, "%v", result.Error)
	record := result.Data.(map[string]interface{})
	assert.Equal(t, true, record["correct"])
	assert.NotEmpty(t, record["next_review"])
}

func TestInvalidInputIsStructuredError(t *testing.T) {
	executor := newTestExecutor(t)

	result := executor.Execute(context.Background(), "save_learning_goal", map[string]interface{}{
		"subject_id": float64(42),
	})
	require.False(t, result.Success)
	assert.Equal(t, "invalid_input", result.Error.Code)
}
