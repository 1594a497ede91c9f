// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package types

import "time"

// ============================================================================
// Learning Domain Models
// ============================================================================

// SubjectStatus describes the lifecycle of a learning subject.
type SubjectStatus string

const (
	SubjectInitializing SubjectStatus = "initializing"
	SubjectResearching  SubjectStatus = "researching"
	SubjectReady        SubjectStatus = "ready"
	SubjectPaused       SubjectStatus = "paused"
)

// LearningGoal is what the user wants to learn and how deep they want to go.
// One row per subject; re-initializing a subject updates the row in place.
type LearningGoal struct {
	ID               int64         `json:"id"`
	SubjectID        string        `json:"subject_id"` // slug, e.g. "kubernetes"
	PurposeStatement string        `json:"purpose_statement"`
	TargetDepth      string        `json:"target_depth"` // overview, practical, expert
	CreatedDate      time.Time     `json:"created_date"`
	ResearchComplete bool          `json:"research_complete"`
	Status           SubjectStatus `json:"status"`
}

// KnowledgeNode is a topic in a subject's curriculum tree. Depth orders the
// tree from roots (0) outward. The node title doubles as the cross-reference
// key into the vector store's topic_path — a convention, not a constraint.
type KnowledgeNode struct {
	ID                 int64    `json:"id"`
	SubjectID          string   `json:"subject_id"`
	ParentID           *int64   `json:"parent_id"` // nil for roots
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Depth              int      `json:"depth"`
	IsGoalCritical     bool     `json:"is_goal_critical"`
	Prerequisites      []int64  `json:"prerequisites"`
	SharedWithSubjects []string `json:"shared_with_subjects"`
}

// KnowledgeChunk is a validated fact stored in the vector store. Its id is
// content-addressed: hex(SHA-256("subject:topic:content")), which makes
// repeated stores of identical facts idempotent.
type KnowledgeChunk struct {
	Content        string    `json:"content"`
	SubjectID      string    `json:"subject_id"`
	SourceURL      string    `json:"source_url"`
	SourceScore    float64   `json:"source_score"`
	TopicPath      string    `json:"topic_path"` // expected to match a KnowledgeNode title
	Confidence     float64   `json:"confidence"`
	Contradictions []string  `json:"contradictions"`
	LastValidated  time.Time `json:"last_validated"`
}

// SearchResult pairs a knowledge chunk with its similarity to a query.
type SearchResult struct {
	Chunk      KnowledgeChunk `json:"chunk"`
	Similarity float64        `json:"similarity"`
}

// Lesson is one delivered teaching session for a subject.
type Lesson struct {
	ID              int64     `json:"id"`
	SubjectID       string    `json:"subject_id"`
	Date            time.Time `json:"date"`
	NodeIDsCovered  []int64   `json:"node_ids_covered"`
	DurationMinutes int       `json:"duration_minutes"`
}

// AssessmentResponse records one answer in an assessment conversation.
type AssessmentResponse struct {
	ID           int64     `json:"id"`
	LessonID     *int64    `json:"lesson_id"`
	NodeID       int64     `json:"node_id"`
	QuestionHash string    `json:"question_hash"`
	Response     string    `json:"response"`
	Correct      bool      `json:"correct"`
	Timestamp    time.Time `json:"timestamp"`
	NextReview   time.Time `json:"next_review"`
}

// Source tracks where researched knowledge came from.
type Source struct {
	ID                     int64     `json:"id"`
	URL                    string    `json:"url"`
	SourceType             string    `json:"source_type"`
	BaseDependabilityScore float64   `json:"base_dependability_score"`
	ValidationCount        int       `json:"validation_count"`
	LastChecked            time.Time `json:"last_checked"`
	Notes                  string    `json:"notes,omitempty"`
}

// UserProgress summarizes mastery per node for spaced repetition.
type UserProgress struct {
	NodeID         int64     `json:"node_id"`
	MasteryLevel   float64   `json:"mastery_level"`
	LastAssessed   time.Time `json:"last_assessed"`
	NextReviewDate time.Time `json:"next_review_date"`
	EaseFactor     float64   `json:"ease_factor"`
}

// ============================================================================
// Workflow
// ============================================================================

// WorkflowState is the orchestrator's position in the learning pipeline.
type WorkflowState string

const (
	StateIdle             WorkflowState = "idle"
	StateInitializing     WorkflowState = "initializing"
	StateResearching      WorkflowState = "researching"
	StateAssessing        WorkflowState = "assessing"
	StateGeneratingLesson WorkflowState = "generating_lesson"
	StateDeliveringLesson WorkflowState = "delivering_lesson"
	StateExercising       WorkflowState = "exercising"
)

// ResearchProgress reports fact coverage across a subject's curriculum tree.
// Fact counts are joined to nodes by title at query time.
type ResearchProgress struct {
	SubjectID  string         `json:"subject_id"`
	Nodes      []NodeProgress `json:"nodes"`
	TotalFacts int            `json:"total_facts"`
}

// NodeProgress is one tree node's research coverage.
type NodeProgress struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Depth     int    `json:"depth"`
	FactCount int    `json:"fact_count"`
}
