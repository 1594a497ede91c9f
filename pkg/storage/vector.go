// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/teradata-labs/mentor/pkg/embedding"
	"github.com/teradata-labs/mentor/pkg/observability"
	"github.com/teradata-labs/mentor/pkg/types"
)

// DefaultTopK is the number of results Search returns when the caller does
// not ask for a specific count.
const DefaultTopK = 5

// VectorStore persists knowledge chunks with their embeddings and serves
// semantic search over them. Embeddings live in a SQLite table as raw
// little-endian float32 blobs; similarity is brute-force cosine in memory,
// which is plenty for per-subject corpora of a few thousand facts.
type VectorStore struct {
	db     *sql.DB
	engine embedding.Engine
	mu     sync.RWMutex
	tracer observability.Tracer
}

// VectorConfig configures the vector store.
type VectorConfig struct {
	Path   string               // Database file path (default: ":memory:")
	Engine embedding.Engine     // Embedding engine (required)
	Tracer observability.Tracer // Tracer for observability (default: NoOpTracer)
}

// NewVectorStore creates a SQLite-backed vector store.
func NewVectorStore(config VectorConfig) (*VectorStore, error) {
	if config.Engine == nil {
		return nil, fmt.Errorf("embedding engine is required")
	}
	if config.Path == "" {
		config.Path = ":memory:"
	}
	if config.Tracer == nil {
		config.Tracer = observability.NewNoOpTracer()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &VectorStore{
		db:     db,
		engine: config.Engine,
		tracer: config.Tracer,
	}

	schema := `
	CREATE TABLE IF NOT EXISTS knowledge_chunks (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		source_url TEXT,
		source_score REAL,
		topic_path TEXT NOT NULL,
		confidence REAL NOT NULL,
		contradictions TEXT DEFAULT '[]',
		last_validated TEXT,
		embedding BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chunks_subject ON knowledge_chunks(subject_id);
	CREATE INDEX IF NOT EXISTS idx_chunks_topic ON knowledge_chunks(subject_id, topic_path);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize vector schema: %w", err)
	}

	return store, nil
}

// ChunkID derives the content-addressed chunk id: the SHA-256 hex digest of
// "subject_id:topic_path:content". Storing the same fact twice therefore
// overwrites rather than duplicates.
func ChunkID(subjectID, topicPath, content string) string {
	sum := sha256.Sum256([]byte(subjectID + ":" + topicPath + ":" + content))
	return hex.EncodeToString(sum[:])
}

// StoreKnowledge embeds a chunk's content and upserts it. Confidence is
// stored as given, zero included; callers that want a default supply it
// themselves. Returns the chunk id.
func (v *VectorStore) StoreKnowledge(ctx context.Context, chunk *types.KnowledgeChunk) (string, error) {
	ctx, span := v.tracer.StartSpan(ctx, "vector.store_knowledge")
	defer v.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, chunk.SubjectID)
	span.SetAttribute(observability.AttrTopicPath, chunk.TopicPath)

	vec, err := v.engine.Embed(ctx, chunk.Content)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to embed chunk: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if chunk.LastValidated.IsZero() {
		chunk.LastValidated = time.Now()
	}
	contradictions, err := json.Marshal(stringList(chunk.Contradictions))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal contradictions: %w", err)
	}

	id := ChunkID(chunk.SubjectID, chunk.TopicPath, chunk.Content)
	_, err = v.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO knowledge_chunks
			(id, content, subject_id, source_url, source_score, topic_path,
			 confidence, contradictions, last_validated, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, chunk.Content, chunk.SubjectID, chunk.SourceURL, chunk.SourceScore,
		chunk.TopicPath, chunk.Confidence, string(contradictions),
		chunk.LastValidated.Format(time.RFC3339Nano), encodeEmbedding(vec))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to store chunk: %w", err)
	}

	span.SetAttribute("chunk_id", id)
	return id, nil
}

// Search embeds the query and returns the topK most similar chunks for the
// subject, ordered by descending cosine similarity. A positive minConfidence
// filters out chunks below that confidence; zero disables the filter.
func (v *VectorStore) Search(ctx context.Context, query, subjectID string, topK int, minConfidence float64) ([]*types.SearchResult, error) {
	ctx, span := v.tracer.StartSpan(ctx, "vector.search")
	defer v.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVec, err := v.engine.Embed(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	sqlQuery := `
		SELECT content, subject_id, source_url, source_score, topic_path,
		       confidence, contradictions, last_validated, embedding
		FROM knowledge_chunks WHERE subject_id = ?
	`
	args := []interface{}{subjectID}
	if minConfidence > 0.0 {
		sqlQuery += " AND confidence >= ?"
		args = append(args, minConfidence)
	}

	rows, err := v.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*types.SearchResult
	for rows.Next() {
		chunk, vec, err := scanChunk(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		similarity, err := embedding.CosineSimilarity(queryVec, vec)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to score chunk: %w", err)
		}
		results = append(results, &types.SearchResult{
			Chunk:      *chunk,
			Similarity: similarity,
		})
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topK {
		results = results[:topK]
	}

	span.SetAttribute("count", len(results))
	return results, nil
}

// GetByTopic returns all chunks filed under an exact topic path for a
// subject. No embedding call is made.
func (v *VectorStore) GetByTopic(ctx context.Context, subjectID, topicPath string) ([]*types.KnowledgeChunk, error) {
	ctx, span := v.tracer.StartSpan(ctx, "vector.get_by_topic")
	defer v.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)
	span.SetAttribute(observability.AttrTopicPath, topicPath)

	v.mu.RLock()
	defer v.mu.RUnlock()

	rows, err := v.db.QueryContext(ctx, `
		SELECT content, subject_id, source_url, source_score, topic_path,
		       confidence, contradictions, last_validated, embedding
		FROM knowledge_chunks WHERE subject_id = ? AND topic_path = ?
	`, subjectID, topicPath)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query chunks by topic: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []*types.KnowledgeChunk
	for rows.Next() {
		chunk, _, err := scanChunk(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("count", len(chunks))
	return chunks, nil
}

// CountFactsByTopic returns the number of stored chunks per topic path for
// a subject.
func (v *VectorStore) CountFactsByTopic(ctx context.Context, subjectID string) (map[string]int, error) {
	ctx, span := v.tracer.StartSpan(ctx, "vector.count_facts_by_topic")
	defer v.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	v.mu.RLock()
	defer v.mu.RUnlock()

	rows, err := v.db.QueryContext(ctx, `
		SELECT topic_path, COUNT(*) FROM knowledge_chunks
		WHERE subject_id = ? GROUP BY topic_path
	`, subjectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count facts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var topic string
		var count int
		if err := rows.Scan(&topic, &count); err != nil {
			span.RecordError(err)
			return nil, err
		}
		counts[topic] = count
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return counts, nil
}

// DeleteSubject removes all chunks for a subject. Returns the number of
// chunks deleted.
func (v *VectorStore) DeleteSubject(ctx context.Context, subjectID string) (int64, error) {
	ctx, span := v.tracer.StartSpan(ctx, "vector.delete_subject")
	defer v.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	v.mu.Lock()
	defer v.mu.Unlock()

	result, err := v.db.ExecContext(ctx,
		"DELETE FROM knowledge_chunks WHERE subject_id = ?", subjectID)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to delete subject chunks: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttribute("deleted", deleted)
	return deleted, nil
}

// Engine returns the embedding engine backing this store.
func (v *VectorStore) Engine() embedding.Engine {
	return v.engine
}

// Close closes the underlying database.
func (v *VectorStore) Close() error {
	return v.db.Close()
}

func scanChunk(rows *sql.Rows) (*types.KnowledgeChunk, []float32, error) {
	var chunk types.KnowledgeChunk
	var sourceURL sql.NullString
	var sourceScore sql.NullFloat64
	var contradictions, lastValidated string
	var blob []byte

	err := rows.Scan(&chunk.Content, &chunk.SubjectID, &sourceURL, &sourceScore,
		&chunk.TopicPath, &chunk.Confidence, &contradictions, &lastValidated, &blob)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan chunk: %w", err)
	}

	chunk.SourceURL = sourceURL.String
	chunk.SourceScore = sourceScore.Float64
	if err := json.Unmarshal([]byte(contradictions), &chunk.Contradictions); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal contradictions: %w", err)
	}
	chunk.LastValidated, err = time.Parse(time.RFC3339Nano, lastValidated)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse last_validated: %w", err)
	}
	return &chunk, decodeEmbedding(blob), nil
}

// encodeEmbedding converts a float32 vector to little-endian bytes.
func encodeEmbedding(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeEmbedding(blob []byte) []float32 {
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec
}
