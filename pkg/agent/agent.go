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

// Package agent implements persona agents and the tool-calling loop that
// lets a model invoke backend tools across multiple conversational turns.
package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/teradata-labs/mentor/internal/log"
	"github.com/teradata-labs/mentor/pkg/observability"
	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/types"
	"go.uber.org/zap"
)

// DefaultMaxTurns caps the tool-calling loop. A turn is one model call; a
// model that keeps requesting tools past this many calls is almost certainly
// oscillating, so the loop fails instead of spinning.
const DefaultMaxTurns = 25

// Config configures an agent persona.
type Config struct {
	// Name identifies the persona, e.g. "research".
	Name string

	// SystemPrompt is the persona's standing instructions, sent with every
	// model call.
	SystemPrompt string

	// MaxTurns caps model calls per Run (default: DefaultMaxTurns).
	MaxTurns int

	// Tracer for observability (default: NoOpTracer).
	Tracer observability.Tracer
}

// Agent is a persona-scoped conversational session that can autonomously
// invoke backend tools mid-conversation. Message history accumulates across
// Run calls until ClearMessages.
type Agent struct {
	config   Config
	provider types.LLMProvider
	executor *shuttle.Executor
	tools    []shuttle.Tool

	mu       sync.Mutex
	messages []types.Message
}

// New creates an agent. The executor and tools may be nil for personas that
// converse without touching the stores.
func New(config Config, provider types.LLMProvider, executor *shuttle.Executor, tools []shuttle.Tool) *Agent {
	if config.MaxTurns <= 0 {
		config.MaxTurns = DefaultMaxTurns
	}
	if config.Tracer == nil {
		config.Tracer = observability.NewNoOpTracer()
	}
	return &Agent{
		config:   config,
		provider: provider,
		executor: executor,
		tools:    tools,
	}
}

// Name returns the persona name.
func (a *Agent) Name() string {
	return a.config.Name
}

// Run appends the user message and drives the tool-calling loop until the
// model produces a plain-text answer: call the model with the full history
// and tool schemas; when the response contains tool calls, append it
// verbatim (the model's later reasoning depends on seeing its own calls),
// execute each requested tool in order, feed the results back, and repeat.
func (a *Agent) Run(ctx context.Context, userMessage string) (string, error) {
	ctx, span := a.config.Tracer.StartSpan(ctx, "agent.run")
	defer a.config.Tracer.EndSpan(span)
	span.SetAttribute(observability.AttrAgentName, a.config.Name)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.messages = append(a.messages, types.Message{
		Role:      types.RoleUser,
		Content:   userMessage,
		Timestamp: time.Now(),
	})

	for turn := 0; turn < a.config.MaxTurns; turn++ {
		resp, err := a.provider.Chat(ctx, a.historyWithSystem(), a.tools)
		if err != nil {
			span.RecordError(err)
			return "", fmt.Errorf("model call failed: %w", err)
		}
		span.SetAttribute(observability.AttrLLMInputTokens, resp.Usage.InputTokens)
		span.SetAttribute(observability.AttrLLMOutputTokens, resp.Usage.OutputTokens)

		if len(resp.ToolCalls) == 0 {
			a.messages = append(a.messages, types.Message{
				Role:      types.RoleAssistant,
				Content:   resp.Content,
				Timestamp: time.Now(),
			})
			span.SetAttribute("turns", turn+1)
			return resp.Content, nil
		}

		a.messages = append(a.messages, types.Message{
			Role:      types.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
			Timestamp: time.Now(),
		})

		for _, call := range resp.ToolCalls {
			result := a.executeTool(ctx, call)
			a.messages = append(a.messages, types.Message{
				Role:       types.RoleTool,
				ToolUseID:  call.ID,
				Content:    result.LLMPayload(),
				ToolResult: result,
				Timestamp:  time.Now(),
			})
		}
	}

	err := fmt.Errorf("agent %s produced no final answer after %d model calls", a.config.Name, a.config.MaxTurns)
	span.RecordError(err)
	return "", err
}

// Continue sends a follow-up user message in the same conversation.
func (a *Agent) Continue(ctx context.Context, userMessage string) (string, error) {
	return a.Run(ctx, userMessage)
}

// ClearMessages resets the conversation history.
func (a *Agent) ClearMessages() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = nil
}

// Messages returns a copy of the conversation history.
func (a *Agent) Messages() []types.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]types.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

func (a *Agent) executeTool(ctx context.Context, call types.ToolCall) *shuttle.Result {
	ctx, span := a.config.Tracer.StartSpan(ctx, "agent.tool_execution")
	defer a.config.Tracer.EndSpan(span)
	span.SetAttribute(observability.AttrToolName, call.Name)

	if a.executor == nil {
		return &shuttle.Result{
			Success: false,
			Error: &shuttle.Error{
				Code:    "no_executor",
				Message: fmt.Sprintf("Agent %s has no tool executor configured", a.config.Name),
			},
		}
	}

	result := a.executor.Execute(ctx, call.Name, call.Input)
	if !result.Success && result.Error != nil {
		span.SetAttribute(observability.AttrErrorMessage, result.Error.Message)
		log.Debug("tool call failed",
			zap.String("agent", a.config.Name),
			zap.String("tool", call.Name),
			zap.String("code", result.Error.Code))
	}
	span.SetAttribute("success", result.Success)
	return result
}

// historyWithSystem prepends the persona's system prompt to the message
// history. Callers hold a.mu.
func (a *Agent) historyWithSystem() []types.Message {
	history := make([]types.Message, 0, len(a.messages)+1)
	history = append(history, types.Message{
		Role:    types.RoleSystem,
		Content: a.config.SystemPrompt,
	})
	history = append(history, a.messages...)
	return history
}
