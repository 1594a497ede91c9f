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

	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/storage"
	"github.com/teradata-labs/mentor/pkg/types"
)

// StoreKnowledgeTool stores a validated fact in the vector store.
type StoreKnowledgeTool struct {
	vectors *storage.VectorStore
}

// NewStoreKnowledgeTool creates a new StoreKnowledgeTool.
func NewStoreKnowledgeTool(vectors *storage.VectorStore) *StoreKnowledgeTool {
	return &StoreKnowledgeTool{vectors: vectors}
}

// Name returns the tool name.
func (t *StoreKnowledgeTool) Name() string {
	return "store_knowledge"
}

// Description returns the tool description for the LLM.
func (t *StoreKnowledgeTool) Description() string {
	return `Stores a validated knowledge fact for semantic search.

Input:
- content: The text content of the knowledge fact.
- subject_id: The subject this knowledge belongs to.
- source_url: URL of the source where this knowledge came from.
- source_score: Dependability score of the source (0.0 to 1.0).
- topic_path: The knowledge tree node title this fact belongs under.
  Must match a node title exactly for progress reporting to find it.
- confidence: Confidence level in this knowledge (0.0 to 1.0).
- contradictions: Any known contradicting information.

Storing the same content under the same subject and topic twice replaces
the existing fact rather than duplicating it.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *StoreKnowledgeTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"content":      shuttle.NewStringSchema("The text content of the knowledge fact"),
			"subject_id":   shuttle.NewStringSchema("The subject this knowledge belongs to"),
			"source_url":   shuttle.NewStringSchema("URL of the source"),
			"source_score": shuttle.NewNumberSchema("Dependability score of the source (0.0 to 1.0)"),
			"topic_path":   shuttle.NewStringSchema("The knowledge tree node title this fact belongs under"),
			"confidence":   shuttle.NewNumberSchema("Confidence level in this knowledge (0.0 to 1.0)"),
			"contradictions": shuttle.NewArraySchema("Known contradicting information",
				shuttle.NewStringSchema("A contradiction")),
		},
		Required: []string{"content", "subject_id", "source_url", "source_score", "topic_path", "confidence"},
	}
}

// Execute embeds and stores the chunk.
func (t *StoreKnowledgeTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	content, errResult := stringParam(input, "content")
	if errResult != nil {
		return errResult, nil
	}
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	topicPath, errResult := stringParam(input, "topic_path")
	if errResult != nil {
		return errResult, nil
	}
	sourceScore, errResult := floatParam(input, "source_score")
	if errResult != nil {
		return errResult, nil
	}
	confidence, errResult := floatParam(input, "confidence")
	if errResult != nil {
		return errResult, nil
	}
	contradictions, errResult := stringSliceParam(input, "contradictions")
	if errResult != nil {
		return errResult, nil
	}

	chunk := &types.KnowledgeChunk{
		Content:        content,
		SubjectID:      subjectID,
		SourceURL:      optionalString(input, "source_url"),
		SourceScore:    sourceScore,
		TopicPath:      topicPath,
		Confidence:     confidence,
		Contradictions: contradictions,
	}
	if _, err := t.vectors.StoreKnowledge(ctx, chunk); err != nil {
		return storeError(err), nil
	}

	return &shuttle.Result{
		Success: true,
		Data: map[string]interface{}{
			"status":     "stored",
			"subject_id": subjectID,
			"topic_path": topicPath,
		},
	}, nil
}

var _ shuttle.Tool = (*StoreKnowledgeTool)(nil)

// VectorSearchTool searches stored knowledge by semantic similarity.
type VectorSearchTool struct {
	vectors *storage.VectorStore
}

// NewVectorSearchTool creates a new VectorSearchTool.
func NewVectorSearchTool(vectors *storage.VectorStore) *VectorSearchTool {
	return &VectorSearchTool{vectors: vectors}
}

// Name returns the tool name.
func (t *VectorSearchTool) Name() string {
	return "vector_search"
}

// Description returns the tool description for the LLM.
func (t *VectorSearchTool) Description() string {
	return `Searches stored knowledge facts by semantic similarity.

Input:
- query: The search query text.
- subject_id: Only facts for this subject are searched.
- top_k: Maximum number of results to return (default 5).
- min_confidence: Minimum confidence for results (default 0.0 — no filter).

Returns matching facts ordered by descending similarity.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *VectorSearchTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"query":          shuttle.NewStringSchema("The search query text"),
			"subject_id":     shuttle.NewStringSchema("Only facts for this subject are searched"),
			"top_k":          shuttle.NewIntegerSchema("Maximum number of results").WithDefault(5),
			"min_confidence": shuttle.NewNumberSchema("Minimum confidence for results").WithDefault(0.0),
		},
		Required: []string{"query", "subject_id"},
	}
}

// Execute runs the semantic search.
func (t *VectorSearchTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	query, errResult := stringParam(input, "query")
	if errResult != nil {
		return errResult, nil
	}
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	topK, errResult := int64Param(input, "top_k")
	if errResult != nil {
		return errResult, nil
	}
	minConfidence, errResult := floatParam(input, "min_confidence")
	if errResult != nil {
		return errResult, nil
	}

	results, err := t.vectors.Search(ctx, query, subjectID, int(topK), minConfidence)
	if err != nil {
		return storeError(err), nil
	}
	dumped := make([]interface{}, 0, len(results))
	for _, result := range results {
		m, err := toMap(result)
		if err != nil {
			return storeError(err), nil
		}
		dumped = append(dumped, m)
	}
	return &shuttle.Result{Success: true, Data: dumped}, nil
}

var _ shuttle.Tool = (*VectorSearchTool)(nil)

// GetKnowledgeByTopicTool fetches all facts filed under one topic path.
type GetKnowledgeByTopicTool struct {
	vectors *storage.VectorStore
}

// NewGetKnowledgeByTopicTool creates a new GetKnowledgeByTopicTool.
func NewGetKnowledgeByTopicTool(vectors *storage.VectorStore) *GetKnowledgeByTopicTool {
	return &GetKnowledgeByTopicTool{vectors: vectors}
}

// Name returns the tool name.
func (t *GetKnowledgeByTopicTool) Name() string {
	return "get_knowledge_by_topic"
}

// Description returns the tool description for the LLM.
func (t *GetKnowledgeByTopicTool) Description() string {
	return `Gets all knowledge facts filed under an exact topic path.

Input:
- subject_id: The subject identifier.
- topic_path: The exact topic path (a knowledge tree node title).

Unlike vector_search this is an exact lookup, useful when generating a
lesson for one specific topic.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *GetKnowledgeByTopicTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"subject_id": shuttle.NewStringSchema("The subject identifier"),
			"topic_path": shuttle.NewStringSchema("The exact topic path"),
		},
		Required: []string{"subject_id", "topic_path"},
	}
}

// Execute fetches the chunks for the topic.
func (t *GetKnowledgeByTopicTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	topicPath, errResult := stringParam(input, "topic_path")
	if errResult != nil {
		return errResult, nil
	}

	chunks, err := t.vectors.GetByTopic(ctx, subjectID, topicPath)
	if err != nil {
		return storeError(err), nil
	}
	dumped := make([]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		m, err := toMap(chunk)
		if err != nil {
			return storeError(err), nil
		}
		dumped = append(dumped, m)
	}
	return &shuttle.Result{Success: true, Data: dumped}, nil
}

var _ shuttle.Tool = (*GetKnowledgeByTopicTool)(nil)
