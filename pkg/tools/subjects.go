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
)

// GetActiveSubjectTool reads the active-subject setting.
type GetActiveSubjectTool struct {
	db *storage.Database
}

// NewGetActiveSubjectTool creates a new GetActiveSubjectTool.
func NewGetActiveSubjectTool(db *storage.Database) *GetActiveSubjectTool {
	return &GetActiveSubjectTool{db: db}
}

// Name returns the tool name.
func (t *GetActiveSubjectTool) Name() string {
	return "get_active_subject"
}

// Description returns the tool description for the LLM.
func (t *GetActiveSubjectTool) Description() string {
	return `Gets the currently active learning subject.

Returns the subject_id of the active subject, or null when no subject is active.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *GetActiveSubjectTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type:       "object",
		Properties: map[string]*shuttle.JSONSchema{},
	}
}

// Execute reads the setting. A missing setting is null, not an error.
func (t *GetActiveSubjectTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	subjectID, err := t.db.GetSetting(ctx, storage.SettingActiveSubject)
	if errors.Is(err, storage.ErrNotFound) {
		return &shuttle.Result{Success: true, Data: nil}, nil
	}
	if err != nil {
		return storeError(err), nil
	}
	return &shuttle.Result{Success: true, Data: subjectID}, nil
}

var _ shuttle.Tool = (*GetActiveSubjectTool)(nil)

// SetActiveSubjectTool writes the active-subject setting.
type SetActiveSubjectTool struct {
	db *storage.Database
}

// NewSetActiveSubjectTool creates a new SetActiveSubjectTool.
func NewSetActiveSubjectTool(db *storage.Database) *SetActiveSubjectTool {
	return &SetActiveSubjectTool{db: db}
}

// Name returns the tool name.
func (t *SetActiveSubjectTool) Name() string {
	return "set_active_subject"
}

// Description returns the tool description for the LLM.
func (t *SetActiveSubjectTool) Description() string {
	return `Sets the active learning subject.

Input:
- subject_id: The identifier of the subject to make active.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *SetActiveSubjectTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"subject_id": shuttle.NewStringSchema("The identifier of the subject to make active"),
		},
		Required: []string{"subject_id"},
	}
}

// Execute stores the setting.
func (t *SetActiveSubjectTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	subjectID, errResult := stringParam(input, "subject_id")
	if errResult != nil {
		return errResult, nil
	}
	if err := t.db.SetSetting(ctx, storage.SettingActiveSubject, subjectID); err != nil {
		return storeError(err), nil
	}
	return &shuttle.Result{
		Success: true,
		Data: map[string]interface{}{
			"status":         "success",
			"active_subject": subjectID,
		},
	}, nil
}

var _ shuttle.Tool = (*SetActiveSubjectTool)(nil)

// ListSubjectsTool lists all subjects with learning goals.
type ListSubjectsTool struct {
	db *storage.Database
}

// NewListSubjectsTool creates a new ListSubjectsTool.
func NewListSubjectsTool(db *storage.Database) *ListSubjectsTool {
	return &ListSubjectsTool{db: db}
}

// Name returns the tool name.
func (t *ListSubjectsTool) Name() string {
	return "list_subjects"
}

// Description returns the tool description for the LLM.
func (t *ListSubjectsTool) Description() string {
	return `Lists all subjects that have learning goals, newest first.

Returns an array of learning goals with subject_id, purpose_statement,
target_depth, research_complete, and status.`
}

// InputSchema returns the JSON schema for the tool input.
func (t *ListSubjectsTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type:       "object",
		Properties: map[string]*shuttle.JSONSchema{},
	}
}

// Execute lists the learning goals.
func (t *ListSubjectsTool) Execute(ctx context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	goals, err := t.db.ListSubjects(ctx)
	if err != nil {
		return storeError(err), nil
	}
	dumped := make([]interface{}, 0, len(goals))
	for _, goal := range goals {
		m, err := toMap(goal)
		if err != nil {
			return storeError(err), nil
		}
		dumped = append(dumped, m)
	}
	return &shuttle.Result{Success: true, Data: dumped}, nil
}

var _ shuttle.Tool = (*ListSubjectsTool)(nil)
