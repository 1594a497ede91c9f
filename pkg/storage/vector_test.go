// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package storage

import (
	"context"
	"hash/fnv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/mentor/pkg/types"
)

// hashEngine is a deterministic embedding engine for tests: each word hashes
// into a bucket, so texts sharing words land near each other in vector space.
type hashEngine struct{}

func (h *hashEngine) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.Dimensions())
	for _, word := range strings.Fields(strings.ToLower(text)) {
		hasher := fnv.New32a()
		_, _ = hasher.Write([]byte(word))
		vec[hasher.Sum32()%uint32(len(vec))] += 1.0
	}
	return vec, nil
}

func (h *hashEngine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := h.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func (h *hashEngine) Dimensions() int { return 64 }

func (h *hashEngine) Name() string { return "test:hash" }

func newTestVectorStore(t *testing.T) *VectorStore {
	t.Helper()
	store, err := NewVectorStore(VectorConfig{
		Path:   filepath.Join(t.TempDir(), "vectors.db"),
		Engine: &hashEngine{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func storeChunk(t *testing.T, store *VectorStore, subjectID, topicPath, content string) string {
	t.Helper()
	id, err := store.StoreKnowledge(context.Background(), &types.KnowledgeChunk{
		Content:    content,
		SubjectID:  subjectID,
		TopicPath:  topicPath,
		Confidence: 1.0,
	})
	require.NoError(t, err)
	return id
}

func TestStoreKnowledgeIdempotent(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	id1 := storeChunk(t, store, "kubernetes", "Pods", "Pods are the smallest deployable unit")
	id2 := storeChunk(t, store, "kubernetes", "Pods", "Pods are the smallest deployable unit")
	assert.Equal(t, id1, id2)

	chunks, err := store.GetByTopic(ctx, "kubernetes", "Pods")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)

	// Same content under a different topic is a distinct chunk.
	id3 := storeChunk(t, store, "kubernetes", "Workloads", "Pods are the smallest deployable unit")
	assert.NotEqual(t, id1, id3)
}

func TestChunkIDDeterministic(t *testing.T) {
	a := ChunkID("kubernetes", "Pods", "fact")
	b := ChunkID("kubernetes", "Pods", "fact")
	c := ChunkID("rust", "Pods", "fact")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestSearchRanksBySimilarity(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	storeChunk(t, store, "kubernetes", "Pods", "pods run one or more containers together")
	storeChunk(t, store, "kubernetes", "Services", "services expose stable network endpoints for pods")
	storeChunk(t, store, "kubernetes", "ConfigMaps", "configmaps hold configuration data as key value pairs")

	results, err := store.Search(ctx, "network endpoints", "kubernetes", 5, 0.0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Services", results[0].Chunk.TopicPath)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Similarity, results[i-1].Similarity)
	}
}

func TestSearchScopedToSubject(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	storeChunk(t, store, "kubernetes", "Services", "services expose network endpoints")
	storeChunk(t, store, "networking", "Sockets", "sockets are network endpoints")

	results, err := store.Search(ctx, "network endpoints", "kubernetes", 5, 0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "kubernetes", results[0].Chunk.SubjectID)
}

func TestSearchTopKAndConfidenceFilter(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	for _, content := range []string{
		"etcd stores cluster state",
		"etcd uses the raft protocol",
		"etcd snapshots compact the log",
	} {
		storeChunk(t, store, "kubernetes", "etcd", content)
	}
	_, err := store.StoreKnowledge(ctx, &types.KnowledgeChunk{
		Content:    "etcd might support time travel",
		SubjectID:  "kubernetes",
		TopicPath:  "etcd",
		Confidence: 0.2,
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "etcd", "kubernetes", 2, 0.0)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// With a confidence floor the low-confidence chunk drops out.
	results, err = store.Search(ctx, "etcd", "kubernetes", 10, 0.5)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Chunk.Confidence, 0.5)
	}
}

func TestStoreKnowledgePreservesZeroConfidence(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	_, err := store.StoreKnowledge(ctx, &types.KnowledgeChunk{
		Content:    "etcd is rumored to run on hamster wheels",
		SubjectID:  "kubernetes",
		TopicPath:  "etcd",
		Confidence: 0.0,
	})
	require.NoError(t, err)

	chunks, err := store.GetByTopic(ctx, "kubernetes", "etcd")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Zero(t, chunks[0].Confidence)

	// Still reachable with the filter disabled, gone with any floor.
	results, err := store.Search(ctx, "etcd", "kubernetes", 5, 0.0)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = store.Search(ctx, "etcd", "kubernetes", 5, 0.1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetByTopicExactMatch(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	storeChunk(t, store, "kubernetes", "Pods", "pods fact one")
	storeChunk(t, store, "kubernetes", "Pods", "pods fact two")
	storeChunk(t, store, "kubernetes", "Pods/Lifecycle", "lifecycle fact")

	chunks, err := store.GetByTopic(ctx, "kubernetes", "Pods")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)

	chunks, err = store.GetByTopic(ctx, "kubernetes", "Deployments")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestCountFactsByTopic(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	storeChunk(t, store, "kubernetes", "Pods", "pods fact one")
	storeChunk(t, store, "kubernetes", "Pods", "pods fact two")
	storeChunk(t, store, "kubernetes", "Services", "services fact")
	storeChunk(t, store, "rust", "Ownership", "ownership fact")

	counts, err := store.CountFactsByTopic(ctx, "kubernetes")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Pods": 2, "Services": 1}, counts)
}

func TestVectorDeleteSubject(t *testing.T) {
	store := newTestVectorStore(t)
	ctx := context.Background()

	storeChunk(t, store, "kubernetes", "Pods", "pods fact")
	storeChunk(t, store, "kubernetes", "Services", "services fact")
	storeChunk(t, store, "rust", "Ownership", "ownership fact")

	deleted, err := store.DeleteSubject(ctx, "kubernetes")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	results, err := store.Search(ctx, "pods", "kubernetes", 5, 0.0)
	require.NoError(t, err)
	assert.Empty(t, results)

	chunks, err := store.GetByTopic(ctx, "rust", "Ownership")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)

	deleted, err = store.DeleteSubject(ctx, "kubernetes")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestEmbeddingBlobRoundTrip(t *testing.T) {
	vec := []float32{1.5, -2.0, 0.0, 3.25}
	blob := encodeEmbedding(vec)
	assert.Len(t, blob, 16)
	assert.Equal(t, vec, decodeEmbedding(blob))
}
