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
package shuttle

import (
	"context"
	"fmt"
	"time"
)

// Executor dispatches tool calls by name. Dispatch never surfaces a Go error
// to the conversation loop: unknown tools, tool failures, and tool panics all
// become structured error results that are fed back to the model, which can
// then correct itself on the next turn.
type Executor struct {
	registry *Registry
}

// NewExecutor creates a new tool executor over the given registry.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Registry returns the executor's tool registry.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Execute runs a tool by name with the given parameters. The returned Result
// is always non-nil and safe to serialize for the model.
func (e *Executor) Execute(ctx context.Context, toolName string, params map[string]interface{}) *Result {
	tool, ok := e.registry.Get(toolName)
	if !ok {
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "unknown_tool",
				Message: fmt.Sprintf("Unknown tool: %s", toolName),
			},
		}
	}

	if params == nil {
		params = make(map[string]interface{})
	}
	applyDefaults(tool.InputSchema(), params)

	start := time.Now()
	result := e.safeExecute(ctx, tool, params)
	result.ExecutionTimeMs = time.Since(start).Milliseconds()
	return result
}

// safeExecute invokes the tool, converting panics and Go errors into error
// results.
func (e *Executor) safeExecute(ctx context.Context, tool Tool, params map[string]interface{}) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = &Result{
				Success: false,
				Error: &Error{
					Code:    "tool_panic",
					Message: fmt.Sprintf("%v", r),
				},
			}
		}
	}()

	result, err := tool.Execute(ctx, params)
	if err != nil {
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "execution_error",
				Message: err.Error(),
			},
		}
	}
	if result == nil {
		return &Result{
			Success: false,
			Error: &Error{
				Code:    "execution_error",
				Message: fmt.Sprintf("tool %s returned no result", tool.Name()),
			},
		}
	}
	return result
}

// applyDefaults fills schema defaults into params for absent optional keys.
// Models frequently omit optional parameters like top_k.
func applyDefaults(schema *JSONSchema, params map[string]interface{}) {
	if schema == nil || schema.Properties == nil {
		return
	}
	for name, prop := range schema.Properties {
		if prop.Default == nil {
			continue
		}
		if _, present := params[name]; !present {
			params[name] = prop.Default
		}
	}
}
