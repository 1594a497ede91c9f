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
	"time"

	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/storage"
	"github.com/teradata-labs/mentor/pkg/types"
)

// GetUserProgressTool reports the user's mastery of a knowledge node.
//
// Mastery tracking is not wired up yet, so this always reports no recorded
// progress. The tool stays registered so agent prompts can reference it and
// conversations keep a stable tool surface.
type GetUserProgressTool struct {
	db *storage.Database
}

// NewGetUserProgressTool creates a new GetUserProgressTool.
func NewGetUserProgressTool(db *storage.Database) *GetUserProgressTool {
	return &GetUserProgressTool{db: db}
}

// Name returns the tool name.
func (t *GetUserProgressTool) Name() string {
	return "get_user_progress"
}

// Description returns the tool description for the LLM.
func (t *GetUserProgressTool) Description() string {
	return `Gets the user's recorded progress on a specific knowledge node.

Input:
- node_id: The database id of the knowledge node.

Returns the progress record, or null when none has been recorded.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *GetUserProgressTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"node_id": shuttle.NewIntegerSchema("The database id of the knowledge node"),
		},
		Required: []string{"node_id"},
	}
}

// Execute always reports no progress.
func (t *GetUserProgressTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	if _, errResult := int64Param(input, "node_id"); errResult != nil {
		return errResult, nil
	}
	return &shuttle.Result{Success: true, Data: nil}, nil
}

var _ shuttle.Tool = (*GetUserProgressTool)(nil)

// RecordAssessmentTool records a user's answer to an assessment question.
//
// The response record is computed and echoed back but mastery is not yet
// persisted; spaced-repetition scheduling will build on this.
type RecordAssessmentTool struct {
	db *storage.Database
}

// NewRecordAssessmentTool creates a new RecordAssessmentTool.
func NewRecordAssessmentTool(db *storage.Database) *RecordAssessmentTool {
	return &RecordAssessmentTool{db: db}
}

// Name returns the tool name.
func (t *RecordAssessmentTool) Name() string {
	return "record_assessment"
}

// Description returns the tool description for the LLM.
func (t *RecordAssessmentTool) Description() string {
	return `Records the user's response to an assessment question.

Input:
- node_id: The id of the knowledge node being assessed.
- question_hash: A hash identifying the specific question asked.
- response: The user's response text.
- correct: Whether the response was correct.
- lesson_id: Optional id of the lesson this question came from.

Returns the assessment record including the computed next review time.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *RecordAssessmentTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"node_id":       shuttle.NewIntegerSchema("The id of the knowledge node being assessed"),
			"question_hash": shuttle.NewStringSchema("A hash identifying the specific question"),
			"response":      shuttle.NewStringSchema("The user's response text"),
			"correct":       shuttle.NewBooleanSchema("Whether the response was correct"),
			"lesson_id":     shuttle.NewIntegerSchema("Optional id of the lesson"),
		},
		Required: []string{"node_id", "question_hash", "response", "correct"},
	}
}

// Execute computes the assessment record.
func (t *RecordAssessmentTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	nodeID, errResult := int64Param(input, "node_id")
	if errResult != nil {
		return errResult, nil
	}
	questionHash, errResult := stringParam(input, "question_hash")
	if errResult != nil {
		return errResult, nil
	}
	response, errResult := stringParam(input, "response")
	if errResult != nil {
		return errResult, nil
	}
	correct, errResult := boolParam(input, "correct")
	if errResult != nil {
		return errResult, nil
	}
	lessonID, errResult := optionalInt64(input, "lesson_id")
	if errResult != nil {
		return errResult, nil
	}

	now := time.Now()
	assessment := &types.AssessmentResponse{
		NodeID:       nodeID,
		LessonID:     lessonID,
		QuestionHash: questionHash,
		Response:     response,
		Correct:      correct,
		Timestamp:    now,
		NextReview:   now.Add(24 * time.Hour),
	}

	m, err := toMap(assessment)
	if err != nil {
		return storeError(err), nil
	}
	return &shuttle.Result{Success: true, Data: m}, nil
}

var _ shuttle.Tool = (*RecordAssessmentTool)(nil)
