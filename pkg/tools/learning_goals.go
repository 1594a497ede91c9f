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

// GetLearningGoalTool fetches the learning goal for a subject.
type GetLearningGoalTool struct {
	db *storage.Database
}

// NewGetLearningGoalTool creates a new GetLearningGoalTool.
func NewGetLearningGoalTool(db *storage.Database) *GetLearningGoalTool {
	return &GetLearningGoalTool{db: db}
}

// Name returns the tool name.
func (t *GetLearningGoalTool) Name() string {
	return "get_learning_goal"
}

// Description returns the tool description for the LLM.
func (t *GetLearningGoalTool) Description() string {
	return `Gets the learning goal for a specific subject.

Input:
- subject_id: The identifier of the subject to retrieve.

Returns the learning goal with purpose_statement, target_depth,
research_complete, and status, or null when the subject does not exist.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *GetLearningGoalTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"subject_id": shuttle.NewStringSchema("The identifier of the subject"),
		},
		Required: []string{"subject_id"},
	}
}

// Execute fetches the goal. A missing subject yields null, not an error.
func (t *GetLearningGoalTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	goal, err := t.db.GetLearningGoal(ctx, subjectID)
	if errors.Is(err, storage.ErrNotFound) {
		return &shuttle.Result{Success: true, Data: nil}, nil
	}
	if err != nil {
		return storeError(err), nil
	}
	m, err := toMap(goal)
	if err != nil {
		return storeError(err), nil
	}
	return &shuttle.Result{Success: true, Data: m}, nil
}

var _ shuttle.Tool = (*GetLearningGoalTool)(nil)

// SaveLearningGoalTool creates or updates the learning goal for a subject.
type SaveLearningGoalTool struct {
	db *storage.Database
}

// NewSaveLearningGoalTool creates a new SaveLearningGoalTool.
func NewSaveLearningGoalTool(db *storage.Database) *SaveLearningGoalTool {
	return &SaveLearningGoalTool{db: db}
}

// Name returns the tool name.
func (t *SaveLearningGoalTool) Name() string {
	return "save_learning_goal"
}

// Description returns the tool description for the LLM.
func (t *SaveLearningGoalTool) Description() string {
	return `Saves or updates the learning goal for a subject.

Input:
- subject_id: The unique identifier for this subject.
- purpose_statement: Why the user wants to learn this subject.
- target_depth: Desired depth of learning (default "practical").

Saving an existing subject updates its goal in place rather than creating
a duplicate. Returns the saved learning goal with its id.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *SaveLearningGoalTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"subject_id":        shuttle.NewStringSchema("The unique identifier for this subject"),
			"purpose_statement": shuttle.NewStringSchema("Why the user wants to learn this subject"),
			"target_depth": shuttle.NewStringSchema("Desired depth of learning").
				WithEnum("overview", "practical", "expert").WithDefault("practical"),
		},
		Required: []string{"subject_id", "purpose_statement"},
	}
}

// Execute upserts the goal.
func (t *SaveLearningGoalTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	purpose, errResult := stringParam(input, "purpose_statement")
	if errResult != nil {
		return errResult, nil
	}

	goal := &types.LearningGoal{
		SubjectID:        subjectID,
		PurposeStatement: purpose,
		TargetDepth:      optionalString(input, "target_depth"),
	}
	if _, err := t.db.SaveLearningGoal(ctx, goal); err != nil {
		return storeError(err), nil
	}

	m, err := toMap(goal)
	if err != nil {
		return storeError(err), nil
	}
	return &shuttle.Result{Success: true, Data: m}, nil
}

var _ shuttle.Tool = (*SaveLearningGoalTool)(nil)
