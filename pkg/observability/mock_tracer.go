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
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockTracer captures completed spans in memory so tests can assert on the
// instrumentation a code path emitted. Thread-safe.
type MockTracer struct {
	mu    sync.RWMutex
	spans []*Span
}

var _ Tracer = (*MockTracer)(nil)

// NewMockTracer creates a span-capturing tracer for tests.
func NewMockTracer() *MockTracer {
	return &MockTracer{}
}

// StartSpan begins a span. It is not visible through Spans until EndSpan
// completes it.
func (m *MockTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span) {
	span := &Span{
		TraceID:    uuid.New().String(),
		SpanID:     uuid.New().String(),
		Name:       name,
		StartTime:  time.Now(),
		Attributes: make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(span)
	}
	if parent := SpanFromContext(ctx); parent != nil {
		span.TraceID = parent.TraceID
		span.ParentID = parent.SpanID
	}
	return ContextWithSpan(ctx, span), span
}

// EndSpan completes the span and adds it to the captured set.
func (m *MockTracer) EndSpan(span *Span) {
	if span == nil {
		return
	}
	span.EndTime = time.Now()
	span.Duration = span.EndTime.Sub(span.StartTime)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.spans = append(m.spans, span)
}

// RecordMetric is a no-op; only spans are captured.
func (m *MockTracer) RecordMetric(name string, value float64, labels map[string]string) {}

// RecordEvent is a no-op; only spans are captured.
func (m *MockTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

// Flush is a no-op.
func (m *MockTracer) Flush(ctx context.Context) error { return nil }

// Spans returns a copy of all completed spans in completion order.
func (m *MockTracer) Spans() []*Span {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spans := make([]*Span, len(m.spans))
	copy(spans, m.spans)
	return spans
}

// SpanByName returns the first completed span with the given name, or nil.
func (m *MockTracer) SpanByName(name string) *Span {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, span := range m.spans {
		if span.Name == name {
			return span
		}
	}
	return nil
}

// SpansByName returns every completed span with the given name.
func (m *MockTracer) SpansByName(name string) []*Span {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Span
	for _, span := range m.spans {
		if span.Name == name {
			result = append(result, span)
		}
	}
	return result
}
