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
	"errors"

	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/storage"
	"github.com/teradata-labs/mentor/pkg/types"
)

// GetKnowledgeNodeTool fetches a single knowledge node by id.
type GetKnowledgeNodeTool struct {
	db *storage.Database
}

// NewGetKnowledgeNodeTool creates a new GetKnowledgeNodeTool.
func NewGetKnowledgeNodeTool(db *storage.Database) *GetKnowledgeNodeTool {
	return &GetKnowledgeNodeTool{db: db}
}

// Name returns the tool name.
func (t *GetKnowledgeNodeTool) Name() string {
	return "get_knowledge_node"
}

// Description returns the tool description for the LLM.
func (t *GetKnowledgeNodeTool) Description() string {
	return `Gets a specific knowledge node by its database id.

Input:
- node_id: The database id of the knowledge node.

Returns the node, or null when it does not exist.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *GetKnowledgeNodeTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"node_id": shuttle.NewIntegerSchema("The database id of the knowledge node"),
		},
		Required: []string{"node_id"},
	}
}

// Execute fetches the node. A missing node yields null, not an error.
func (t *GetKnowledgeNodeTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	nodeID, errResult := int64Param(input, "node_id")
	if errResult != nil {
		return errResult, nil
	}
	node, err := t.db.GetKnowledgeNode(ctx, nodeID)
	if errors.Is(err, storage.ErrNotFound) {
		return &shuttle.Result{Success: true, Data: nil}, nil
	}
	if err != nil {
		return storeError(err), nil
	}
	m, err := toMap(node)
	if err != nil {
		return storeError(err), nil
	}
	return &shuttle.Result{Success: true, Data: m}, nil
}

var _ shuttle.Tool = (*GetKnowledgeNodeTool)(nil)

// GetKnowledgeTreeTool fetches all knowledge nodes for a subject.
type GetKnowledgeTreeTool struct {
	db *storage.Database
}

// NewGetKnowledgeTreeTool creates a new GetKnowledgeTreeTool.
func NewGetKnowledgeTreeTool(db *storage.Database) *GetKnowledgeTreeTool {
	return &GetKnowledgeTreeTool{db: db}
}

// Name returns the tool name.
func (t *GetKnowledgeTreeTool) Name() string {
	return "get_knowledge_tree"
}

// Description returns the tool description for the LLM.
func (t *GetKnowledgeTreeTool) Description() string {
	return `Gets all knowledge nodes for a subject as a tree structure.

Input:
- subject_id: The subject identifier.

Returns all nodes ordered by depth, then id: roots first, each level in
creation order. Use parent_id to reconstruct the hierarchy.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *GetKnowledgeTreeTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"subject_id": shuttle.NewStringSchema("The subject identifier"),
		},
		Required: []string{"subject_id"},
	}
}

// Execute fetches the tree.
func (t *GetKnowledgeTreeTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	nodes, err := t.db.GetKnowledgeTree(ctx, subjectID)
	if err != nil {
		return storeError(err), nil
	}
	dumped := make([]interface{}, 0, len(nodes))
	for _, node := range nodes {
		m, err := toMap(node)
		if err != nil {
			return storeError(err), nil
		}
		dumped = append(dumped, m)
	}
	return &shuttle.Result{Success: true, Data: dumped}, nil
}

var _ shuttle.Tool = (*GetKnowledgeTreeTool)(nil)

// SaveKnowledgeNodeTool creates or updates a knowledge node.
type SaveKnowledgeNodeTool struct {
	db *storage.Database
}

// NewSaveKnowledgeNodeTool creates a new SaveKnowledgeNodeTool.
func NewSaveKnowledgeNodeTool(db *storage.Database) *SaveKnowledgeNodeTool {
	return &SaveKnowledgeNodeTool{db: db}
}

// Name returns the tool name.
func (t *SaveKnowledgeNodeTool) Name() string {
	return "save_knowledge_node"
}

// Description returns the tool description for the LLM.
func (t *SaveKnowledgeNodeTool) Description() string {
	return `Saves a new knowledge node in the subject's topic tree.

Input:
- subject_id: The subject this node belongs to.
- title: The title of this knowledge node. Facts stored for this topic
  must use exactly this title as their topic_path.
- description: Optional detailed description.
- parent_id: Database id of the parent node (omit for root nodes).
- depth: Depth in the tree, 0 for roots, parent depth + 1 otherwise.
- is_goal_critical: Whether this node is critical for the learning goal.
- prerequisites: Node ids that must be learned before this one.
- shared_with_subjects: Other subjects that share this node.

Returns the saved node including its assigned id.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *SaveKnowledgeNodeTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"subject_id":       shuttle.NewStringSchema("The subject this node belongs to"),
			"title":            shuttle.NewStringSchema("The title of this knowledge node"),
			"description":      shuttle.NewStringSchema("Optional detailed description"),
			"parent_id":        shuttle.NewIntegerSchema("Database id of the parent node (omit for roots)"),
			"depth":            shuttle.NewIntegerSchema("Depth in the tree (0 for roots)").WithDefault(0),
			"is_goal_critical": shuttle.NewBooleanSchema("Whether critical for the learning goal").WithDefault(false),
			"prerequisites": shuttle.NewArraySchema("Node ids that must be learned first",
				shuttle.NewIntegerSchema("A prerequisite node id")),
			"shared_with_subjects": shuttle.NewArraySchema("Other subjects sharing this node",
				shuttle.NewStringSchema("A subject identifier")),
		},
		Required: []string{"subject_id", "title"},
	}
}

// Execute saves the node.
func (t *SaveKnowledgeNodeTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	title, errResult := stringParam(input, "title")
	if errResult != nil {
		return errResult, nil
	}
	parentID, errResult := optionalInt64(input, "parent_id")
	if errResult != nil {
		return errResult, nil
	}
	depth, errResult := int64Param(input, "depth")
	if errResult != nil {
		return errResult, nil
	}
	goalCritical, errResult := boolParam(input, "is_goal_critical")
	if errResult != nil {
		return errResult, nil
	}
	prerequisites, errResult := int64SliceParam(input, "prerequisites")
	if errResult != nil {
		return errResult, nil
	}
	shared, errResult := stringSliceParam(input, "shared_with_subjects")
	if errResult != nil {
		return errResult, nil
	}

	node := &types.KnowledgeNode{
		SubjectID:          subjectID,
		Title:              title,
		Description:        optionalString(input, "description"),
		ParentID:           parentID,
		Depth:              int(depth),
		IsGoalCritical:     goalCritical,
		Prerequisites:      prerequisites,
		SharedWithSubjects: shared,
	}
	if _, err := t.db.SaveKnowledgeNode(ctx, node); err != nil {
		return storeError(err), nil
	}

	m, err := toMap(node)
	if err != nil {
		return storeError(err), nil
	}
	return &shuttle.Result{Success: true, Data: m}, nil
}

var _ shuttle.Tool = (*SaveKnowledgeNodeTool)(nil)
