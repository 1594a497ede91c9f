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
package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/types"
)

// scriptedProvider returns canned responses in order and records every call.
type scriptedProvider struct {
	responses []*types.LLMResponse
	calls     [][]types.Message
}

func (p *scriptedProvider) Chat(_ context.Context, messages []types.Message, _ []shuttle.Tool) (*types.LLMResponse, error) {
	snapshot := make([]types.Message, len(messages))
	copy(snapshot, messages)
	p.calls = append(p.calls, snapshot)

	if len(p.calls) > len(p.responses) {
		return &types.LLMResponse{Content: "out of script", StopReason: "end_turn"}, nil
	}
	return p.responses[len(p.calls)-1], nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Model() string { return "scripted-model" }

// echoTool records its inputs and returns them.
type echoTool struct {
	invocations []map[string]interface{}
}

func (t *echoTool) Name() string { return "echo" }

func (t *echoTool) Description() string { return "Echoes its input" }

func (t *echoTool) InputSchema() *shuttle.JSONSchema {
	return &shuttle.JSONSchema{
		Type: "object",
		Properties: map[string]*shuttle.JSONSchema{
			"text": shuttle.NewStringSchema("Text to echo"),
		},
		Required: []string{"text"},
	}
}

func (t *echoTool) Execute(_ context.Context, input map[string]interface{}) (*shuttle.Result, error) {
	t.invocations = append(t.invocations, input)
	return &shuttle.Result{Success: true, Data: input}, nil
}

func newTestAgent(provider types.LLMProvider, tool shuttle.Tool, maxTurns int) *Agent {
	registry := shuttle.NewRegistry()
	var tools []shuttle.Tool
	if tool != nil {
		registry.Register(tool)
		tools = []shuttle.Tool{tool}
	}
	return New(Config{
		Name:         "test",
		SystemPrompt: "You are a test agent.",
		MaxTurns:     maxTurns,
	}, provider, shuttle.NewExecutor(registry), tools)
}

func TestRunPlainTextResponse(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*types.LLMResponse{
			{Content: "hello there", StopReason: "end_turn"},
		},
	}
	a := newTestAgent(provider, nil, 0)

	answer, err := a.Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello there", answer)
	assert.Len(t, provider.calls, 1)

	// System prompt travels with every call, then the user message.
	first := provider.calls[0]
	require.Len(t, first, 2)
	assert.Equal(t, types.RoleSystem, first[0].Role)
	assert.Equal(t, types.RoleUser, first[1].Role)
}

func TestRunExecutesToolsThenReturnsText(t *testing.T) {
	tool := &echoTool{}
	provider := &scriptedProvider{
		responses: []*types.LLMResponse{
			{
				ToolCalls: []types.ToolCall{
					{ID: "call_1", Name: "echo", Input: map[string]interface{}{"text": "ping"}},
				},
				StopReason: "tool_use",
			},
			{Content: "the echo said ping", StopReason: "end_turn"},
		},
	}
	a := newTestAgent(provider, tool, 0)

	answer, err := a.Run(context.Background(), "use the echo tool")
	require.NoError(t, err)
	assert.Equal(t, "the echo said ping", answer)

	// One tool call, one tool-result turn, two model calls.
	assert.Len(t, provider.calls, 2)
	require.Len(t, tool.invocations, 1)
	assert.Equal(t, "ping", tool.invocations[0]["text"])

	second := provider.calls[1]
	// system, user, assistant w/ tool call, tool result
	require.Len(t, second, 4)
	assert.Equal(t, types.RoleAssistant, second[2].Role)
	require.Len(t, second[2].ToolCalls, 1)
	assert.Equal(t, "call_1", second[2].ToolCalls[0].ID)
	assert.Equal(t, types.RoleTool, second[3].Role)
	assert.Equal(t, "call_1", second[3].ToolUseID)
	assert.JSONEq(t, `{"result": {"text": "ping"}}`, second[3].Content)
}

func TestRunToolOrderPreserved(t *testing.T) {
	tool := &echoTool{}
	provider := &scriptedProvider{
		responses: []*types.LLMResponse{
			{
				ToolCalls: []types.ToolCall{
					{ID: "call_1", Name: "echo", Input: map[string]interface{}{"text": "first"}},
					{ID: "call_2", Name: "echo", Input: map[string]interface{}{"text": "second"}},
				},
				StopReason: "tool_use",
			},
			{Content: "done", StopReason: "end_turn"},
		},
	}
	a := newTestAgent(provider, tool, 0)

	_, err := a.Run(context.Background(), "echo twice")
	require.NoError(t, err)

	require.Len(t, tool.invocations, 2)
	assert.Equal(t, "first", tool.invocations[0]["text"])
	assert.Equal(t, "second", tool.invocations[1]["text"])
}

func TestRunToolFailureFedBackToModel(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*types.LLMResponse{
			{
				ToolCalls: []types.ToolCall{
					{ID: "call_1", Name: "does_not_exist", Input: map[string]interface{}{}},
				},
				StopReason: "tool_use",
			},
			{Content: "that tool does not exist", StopReason: "end_turn"},
		},
	}
	a := newTestAgent(provider, &echoTool{}, 0)

	answer, err := a.Run(context.Background(), "try a bad tool")
	require.NoError(t, err)
	assert.Equal(t, "that tool does not exist", answer)

	second := provider.calls[1]
	last := second[len(second)-1]
	assert.Equal(t, types.RoleTool, last.Role)
	assert.JSONEq(t, `{"error": "Unknown tool: does_not_exist"}`, last.Content)
}

func TestRunMaxTurnsExceeded(t *testing.T) {
	// A model that always asks for another tool call never terminates.
	looping := &types.LLMResponse{
		ToolCalls: []types.ToolCall{
			{ID: "call_n", Name: "echo", Input: map[string]interface{}{"text": "again"}},
		},
		StopReason: "tool_use",
	}
	provider := &scriptedProvider{
		responses: []*types.LLMResponse{looping, looping, looping},
	}
	a := newTestAgent(provider, &echoTool{}, 3)

	_, err := a.Run(context.Background(), "loop forever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no final answer after 3 model calls")
	assert.Len(t, provider.calls, 3)
}

func TestContinueSharesHistory(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*types.LLMResponse{
			{Content: "first answer", StopReason: "end_turn"},
			{Content: "second answer", StopReason: "end_turn"},
		},
	}
	a := newTestAgent(provider, nil, 0)

	_, err := a.Run(context.Background(), "first question")
	require.NoError(t, err)
	answer, err := a.Continue(context.Background(), "second question")
	require.NoError(t, err)
	assert.Equal(t, "second answer", answer)

	// system + q1 + a1 + q2
	second := provider.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, "first question", second[1].Content)
	assert.Equal(t, "first answer", second[2].Content)

	a.ClearMessages()
	assert.Empty(t, a.Messages())
}

func TestPersonaConstruction(t *testing.T) {
	provider := &scriptedProvider{}
	registry := shuttle.NewRegistry()
	executor := shuttle.NewExecutor(registry)

	for name, build := range map[string]func() *Agent{
		"curriculum": func() *Agent { return NewCurriculum(provider, executor, nil, nil) },
		"research":   func() *Agent { return NewResearch(provider, executor, nil, nil) },
		"assessment": func() *Agent { return NewAssessment(provider, executor, nil, nil) },
		"lesson":     func() *Agent { return NewLesson(provider, executor, nil, nil) },
	} {
		a := build()
		assert.Equal(t, name, a.Name())
		assert.Equal(t, DefaultMaxTurns, a.config.MaxTurns)
		assert.NotEmpty(t, a.config.SystemPrompt)
	}
}
