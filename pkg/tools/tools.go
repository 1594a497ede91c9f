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

// Package tools provides the canonical tool set the persona agents use to
// read and write the knowledge stores. Each tool wraps one store operation
// behind a JSON schema; the store handles are injected at construction and
// never appear in the schema the model sees.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/storage"
)

// NewRegistry builds a registry with the full canonical tool set bound to
// the given stores.
func NewRegistry(db *storage.Database, vectors *storage.VectorStore) *shuttle.Registry {
	registry := shuttle.NewRegistry()
	for _, tool := range All(db, vectors) {
		registry.Register(tool)
	}
	return registry
}

// All returns every canonical tool bound to the given stores.
func All(db *storage.Database, vectors *storage.VectorStore) []shuttle.Tool {
	return []shuttle.Tool{
		NewGetActiveSubjectTool(db),
		NewSetActiveSubjectTool(db),
		NewListSubjectsTool(db),
		NewGetLearningGoalTool(db),
		NewSaveLearningGoalTool(db),
		NewGetKnowledgeNodeTool(db),
		NewGetKnowledgeTreeTool(db),
		NewSaveKnowledgeNodeTool(db),
		NewGetUserProgressTool(db),
		NewRecordAssessmentTool(db),
		NewStoreKnowledgeTool(vectors),
		NewVectorSearchTool(vectors),
		NewGetKnowledgeByTopicTool(vectors),
	}
}

// toMap converts a typed value into the generic JSON shape returned to the
// model, so tool output follows the struct's JSON tags.
func toMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func invalidInput(format string, args ...interface{}) *shuttle.Result {
	return &shuttle.Result{
		Success: false,
		Error: &shuttle.Error{
			Code:    "invalid_input",
			Message: fmt.Sprintf(format, args...),
		},
	}
}

func storeError(err error) *shuttle.Result {
	return &shuttle.Result{
		Success: false,
		Error: &shuttle.Error{
			Code:    "store_error",
			Message: err.Error(),
		},
	}
}

// stringParam extracts a required non-empty string parameter.
func stringParam(input map[string]interface{}, key string) (string, *shuttle.Result) {
	value, ok := input[key].(string)
	if !ok || value == "" {
		return "", invalidInput("%s must be a non-empty string, got %T", key, input[key])
	}
	return value, nil
}

// optionalString extracts a string parameter, returning "" when absent.
func optionalString(input map[string]interface{}, key string) string {
	value, _ := input[key].(string)
	return value
}

// int64Param extracts a required integer parameter. JSON numbers arrive as
// float64.
func int64Param(input map[string]interface{}, key string) (int64, *shuttle.Result) {
	switch v := input[key].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, invalidInput("%s must be an integer, got %T", key, input[key])
	}
}

// optionalInt64 extracts an optional integer parameter as a pointer, nil
// when absent.
func optionalInt64(input map[string]interface{}, key string) (*int64, *shuttle.Result) {
	if _, present := input[key]; !present {
		return nil, nil
	}
	if input[key] == nil {
		return nil, nil
	}
	value, errResult := int64Param(input, key)
	if errResult != nil {
		return nil, errResult
	}
	return &value, nil
}

// floatParam extracts a required number parameter.
func floatParam(input map[string]interface{}, key string) (float64, *shuttle.Result) {
	switch v := input[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, invalidInput("%s must be a number, got %T", key, input[key])
	}
}

// boolParam extracts a required boolean parameter.
func boolParam(input map[string]interface{}, key string) (bool, *shuttle.Result) {
	value, ok := input[key].(bool)
	if !ok {
		return false, invalidInput("%s must be a boolean, got %T", key, input[key])
	}
	return value, nil
}

// int64SliceParam extracts an optional array-of-integer parameter.
func int64SliceParam(input map[string]interface{}, key string) ([]int64, *shuttle.Result) {
	raw, present := input[key]
	if !present || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, invalidInput("%s must be an array of integers, got %T", key, raw)
	}
	values := make([]int64, 0, len(items))
	for _, item := range items {
		num, ok := item.(float64)
		if !ok {
			return nil, invalidInput("%s must contain only integers, got %T", key, item)
		}
		values = append(values, int64(num))
	}
	return values, nil
}

// stringSliceParam extracts an optional array-of-string parameter.
func stringSliceParam(input map[string]interface{}, key string) ([]string, *shuttle.Result) {
	raw, present := input[key]
	if !present || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, invalidInput("%s must be an array of strings, got %T", key, raw)
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, invalidInput("%s must contain only strings, got %T", key, item)
		}
		values = append(values, s)
	}
	return values, nil
}
