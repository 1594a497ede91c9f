// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package storage provides the two persistence layers of the learning
// platform: a relational SQLite store for subjects, curriculum trees, and
// settings, and a vector store for semantic knowledge search. The two stores
// are linked only by convention — knowledge chunks reference curriculum nodes
// by title, never by foreign key.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/teradata-labs/mentor/internal/sqlitedriver"
	"github.com/teradata-labs/mentor/pkg/observability"
	"github.com/teradata-labs/mentor/pkg/types"
)

// ErrNotFound is returned by lookups when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// SettingActiveSubject is the settings key holding the active subject id.
const SettingActiveSubject = "active_subject"

// Database provides persistent SQLite storage for learning goals, knowledge
// nodes, lessons, assessment responses, and settings.
type Database struct {
	db     *sql.DB
	mu     sync.RWMutex
	tracer observability.Tracer
}

// Config configures the relational store.
type Config struct {
	Path   string               // Database file path (default: ":memory:")
	Tracer observability.Tracer // Tracer for observability (default: NoOpTracer)
}

// New creates a new SQLite-backed store.
func New(config Config) (*Database, error) {
	if config.Path == "" {
		config.Path = ":memory:"
	}
	if config.Tracer == nil {
		config.Tracer = observability.NewNoOpTracer()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &Database{
		db:     db,
		tracer: config.Tracer,
	}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (d *Database) initSchema() error {
	ctx := context.Background()
	ctx, span := d.tracer.StartSpan(ctx, "storage.init_schema")
	defer d.tracer.EndSpan(span)

	schema := `
	CREATE TABLE IF NOT EXISTS learning_goals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id TEXT UNIQUE NOT NULL,
		purpose_statement TEXT NOT NULL,
		target_depth TEXT DEFAULT 'practical',
		created_date TEXT NOT NULL,
		research_complete INTEGER DEFAULT 0,
		status TEXT DEFAULT 'initializing'
	);

	CREATE INDEX IF NOT EXISTS idx_learning_goals_subject ON learning_goals(subject_id);

	CREATE TABLE IF NOT EXISTS knowledge_nodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id TEXT NOT NULL,
		parent_id INTEGER,
		title TEXT NOT NULL,
		description TEXT,
		depth INTEGER DEFAULT 0,
		is_goal_critical INTEGER DEFAULT 0,
		prerequisites TEXT DEFAULT '[]',
		shared_with_subjects TEXT DEFAULT '[]'
	);
	-- knowledge_nodes carries no foreign keys: agents build trees
	-- incrementally and may reference a parent or subject before the
	-- referenced row exists. DeleteSubject removes nodes explicitly.

	CREATE INDEX IF NOT EXISTS idx_knowledge_nodes_subject ON knowledge_nodes(subject_id);
	CREATE INDEX IF NOT EXISTS idx_knowledge_nodes_parent ON knowledge_nodes(parent_id);

	CREATE TABLE IF NOT EXISTS user_progress (
		node_id INTEGER PRIMARY KEY,
		mastery_level REAL DEFAULT 0.0,
		last_assessed TEXT,
		next_review_date TEXT,
		ease_factor REAL DEFAULT 2.5,
		FOREIGN KEY (node_id) REFERENCES knowledge_nodes(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT UNIQUE NOT NULL,
		source_type TEXT NOT NULL,
		base_dependability_score REAL NOT NULL,
		validation_count INTEGER DEFAULT 0,
		last_checked TEXT,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sources_url ON sources(url);

	CREATE TABLE IF NOT EXISTS lessons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id TEXT NOT NULL,
		date TEXT NOT NULL,
		node_ids_covered TEXT DEFAULT '[]',
		duration_minutes INTEGER,
		FOREIGN KEY (subject_id) REFERENCES learning_goals(subject_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_lessons_subject ON lessons(subject_id);
	CREATE INDEX IF NOT EXISTS idx_lessons_date ON lessons(date);

	CREATE TABLE IF NOT EXISTS responses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lesson_id INTEGER,
		node_id INTEGER NOT NULL,
		question_hash TEXT NOT NULL,
		response TEXT NOT NULL,
		correct INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		next_review TEXT NOT NULL,
		FOREIGN KEY (lesson_id) REFERENCES lessons(id) ON DELETE CASCADE,
		FOREIGN KEY (node_id) REFERENCES knowledge_nodes(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_responses_node ON responses(node_id);
	CREATE INDEX IF NOT EXISTS idx_responses_next_review ON responses(next_review);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttribute("success", true)
	return nil
}

// SaveLearningGoal saves a learning goal, updating in place when a goal for
// the same subject already exists. Returns the row id.
func (d *Database) SaveLearningGoal(ctx context.Context, goal *types.LearningGoal) (int64, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.save_learning_goal")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, goal.SubjectID)

	d.mu.Lock()
	defer d.mu.Unlock()

	if goal.CreatedDate.IsZero() {
		goal.CreatedDate = time.Now()
	}
	if goal.TargetDepth == "" {
		goal.TargetDepth = "practical"
	}
	if goal.Status == "" {
		goal.Status = types.SubjectInitializing
	}

	query := `
		INSERT INTO learning_goals
			(subject_id, purpose_statement, target_depth, created_date,
			 research_complete, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(subject_id) DO UPDATE SET
			purpose_statement = excluded.purpose_statement,
			target_depth = excluded.target_depth,
			research_complete = excluded.research_complete,
			status = excluded.status
	`

	_, err := d.db.ExecContext(ctx, query,
		goal.SubjectID, goal.PurposeStatement, goal.TargetDepth,
		goal.CreatedDate.Format(time.RFC3339Nano),
		boolToInt(goal.ResearchComplete), string(goal.Status),
	)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to save learning goal: %w", err)
	}

	// The upsert keeps the original row id on conflict, so read it back
	// rather than trusting LastInsertId.
	var id int64
	err = d.db.QueryRowContext(ctx,
		"SELECT id FROM learning_goals WHERE subject_id = ?", goal.SubjectID,
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to read back goal id: %w", err)
	}

	goal.ID = id
	span.SetAttribute("goal_id", id)
	return id, nil
}

// GetLearningGoal retrieves a learning goal by subject id.
// Returns ErrNotFound when the subject does not exist.
func (d *Database) GetLearningGoal(ctx context.Context, subjectID string) (*types.LearningGoal, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.get_learning_goal")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	d.mu.RLock()
	defer d.mu.RUnlock()

	row := d.db.QueryRowContext(ctx, `
		SELECT id, subject_id, purpose_statement, target_depth, created_date,
		       research_complete, status
		FROM learning_goals WHERE subject_id = ?
	`, subjectID)

	goal, err := scanLearningGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttribute("error", "not_found")
		return nil, fmt.Errorf("learning goal %s: %w", subjectID, ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query learning goal: %w", err)
	}
	return goal, nil
}

// ListSubjects returns all learning goals, newest first.
func (d *Database) ListSubjects(ctx context.Context) ([]*types.LearningGoal, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.list_subjects")
	defer d.tracer.EndSpan(span)

	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, subject_id, purpose_statement, target_depth, created_date,
		       research_complete, status
		FROM learning_goals ORDER BY created_date DESC
	`)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []*types.LearningGoal
	for rows.Next() {
		goal, err := scanLearningGoal(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan learning goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("count", len(goals))
	return goals, nil
}

// DeleteSubject deletes a subject and all associated relational data in a
// single transaction: responses, lessons, progress, knowledge nodes, the
// learning goal, and the active-subject setting when it names this subject.
// Returns false with no mutation when the subject does not exist.
func (d *Database) DeleteSubject(ctx context.Context, subjectID string) (bool, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.delete_subject")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM learning_goals WHERE subject_id = ?", subjectID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttribute("deleted", false)
		return false, nil
	}
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check subject: %w", err)
	}

	// Child tables first, respecting foreign keys
	statements := []struct {
		query string
		args  []interface{}
	}{
		{`DELETE FROM responses WHERE node_id IN (
			SELECT id FROM knowledge_nodes WHERE subject_id = ?)`, []interface{}{subjectID}},
		{`DELETE FROM responses WHERE lesson_id IN (
			SELECT id FROM lessons WHERE subject_id = ?)`, []interface{}{subjectID}},
		{`DELETE FROM user_progress WHERE node_id IN (
			SELECT id FROM knowledge_nodes WHERE subject_id = ?)`, []interface{}{subjectID}},
		{`DELETE FROM lessons WHERE subject_id = ?`, []interface{}{subjectID}},
		{`DELETE FROM knowledge_nodes WHERE subject_id = ?`, []interface{}{subjectID}},
		{`DELETE FROM learning_goals WHERE subject_id = ?`, []interface{}{subjectID}},
		{`DELETE FROM settings WHERE key = ? AND value = ?`, []interface{}{SettingActiveSubject, subjectID}},
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			span.RecordError(err)
			return false, fmt.Errorf("failed to delete subject data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}

	span.SetAttribute("deleted", true)
	return true, nil
}

// SaveKnowledgeNode saves a knowledge node: insert when the id is zero,
// update in place otherwise. Returns the node id.
func (d *Database) SaveKnowledgeNode(ctx context.Context, node *types.KnowledgeNode) (int64, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.save_knowledge_node")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, node.SubjectID)

	d.mu.Lock()
	defer d.mu.Unlock()

	prereqs, err := json.Marshal(nodeIDList(node.Prerequisites))
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to marshal prerequisites: %w", err)
	}
	shared, err := json.Marshal(stringList(node.SharedWithSubjects))
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to marshal shared subjects: %w", err)
	}

	if node.ID != 0 {
		_, err = d.db.ExecContext(ctx, `
			UPDATE knowledge_nodes SET
				subject_id = ?, parent_id = ?, title = ?, description = ?,
				depth = ?, is_goal_critical = ?, prerequisites = ?,
				shared_with_subjects = ?
			WHERE id = ?
		`, node.SubjectID, node.ParentID, node.Title, node.Description,
			node.Depth, boolToInt(node.IsGoalCritical), string(prereqs),
			string(shared), node.ID)
		if err != nil {
			span.RecordError(err)
			return 0, fmt.Errorf("failed to update knowledge node: %w", err)
		}
		span.SetAttribute(observability.AttrNodeID, node.ID)
		return node.ID, nil
	}

	result, err := d.db.ExecContext(ctx, `
		INSERT INTO knowledge_nodes
			(subject_id, parent_id, title, description, depth,
			 is_goal_critical, prerequisites, shared_with_subjects)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, node.SubjectID, node.ParentID, node.Title, node.Description,
		node.Depth, boolToInt(node.IsGoalCritical), string(prereqs), string(shared))
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to insert knowledge node: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to read node id: %w", err)
	}

	node.ID = id
	span.SetAttribute(observability.AttrNodeID, id)
	return id, nil
}

// GetKnowledgeNode retrieves a knowledge node by id.
// Returns ErrNotFound when the node does not exist.
func (d *Database) GetKnowledgeNode(ctx context.Context, nodeID int64) (*types.KnowledgeNode, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.get_knowledge_node")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrNodeID, nodeID)

	d.mu.RLock()
	defer d.mu.RUnlock()

	row := d.db.QueryRowContext(ctx, `
		SELECT id, subject_id, parent_id, title, description, depth,
		       is_goal_critical, prerequisites, shared_with_subjects
		FROM knowledge_nodes WHERE id = ?
	`, nodeID)

	node, err := scanKnowledgeNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttribute("error", "not_found")
		return nil, fmt.Errorf("knowledge node %d: %w", nodeID, ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query knowledge node: %w", err)
	}
	return node, nil
}

// GetKnowledgeTree returns all knowledge nodes for a subject ordered by
// (depth, id). The ordering is load-bearing: consumers reconstruct
// parent/child relationships by scanning backward for the nearest prior node
// one level up.
func (d *Database) GetKnowledgeTree(ctx context.Context, subjectID string) ([]*types.KnowledgeNode, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.get_knowledge_tree")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, subject_id, parent_id, title, description, depth,
		       is_goal_critical, prerequisites, shared_with_subjects
		FROM knowledge_nodes WHERE subject_id = ? ORDER BY depth, id
	`, subjectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query knowledge tree: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var nodes []*types.KnowledgeNode
	for rows.Next() {
		node, err := scanKnowledgeNode(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan knowledge node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("count", len(nodes))
	return nodes, nil
}

// SaveLesson records a delivered lesson. Returns the lesson id.
func (d *Database) SaveLesson(ctx context.Context, lesson *types.Lesson) (int64, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.save_lesson")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, lesson.SubjectID)

	d.mu.Lock()
	defer d.mu.Unlock()

	if lesson.Date.IsZero() {
		lesson.Date = time.Now()
	}
	covered, err := json.Marshal(nodeIDList(lesson.NodeIDsCovered))
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to marshal covered nodes: %w", err)
	}

	result, err := d.db.ExecContext(ctx, `
		INSERT INTO lessons (subject_id, date, node_ids_covered, duration_minutes)
		VALUES (?, ?, ?, ?)
	`, lesson.SubjectID, lesson.Date.Format(time.RFC3339Nano), string(covered), lesson.DurationMinutes)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to save lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	lesson.ID = id
	return id, nil
}

// SaveResponse records one assessment answer. Returns the response id.
func (d *Database) SaveResponse(ctx context.Context, resp *types.AssessmentResponse) (int64, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.save_response")
	defer d.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrNodeID, resp.NodeID)

	d.mu.Lock()
	defer d.mu.Unlock()

	if resp.Timestamp.IsZero() {
		resp.Timestamp = time.Now()
	}
	if resp.NextReview.IsZero() {
		resp.NextReview = resp.Timestamp.Add(24 * time.Hour)
	}

	result, err := d.db.ExecContext(ctx, `
		INSERT INTO responses
			(lesson_id, node_id, question_hash, response, correct, timestamp, next_review)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, resp.LessonID, resp.NodeID, resp.QuestionHash, resp.Response,
		boolToInt(resp.Correct),
		resp.Timestamp.Format(time.RFC3339Nano),
		resp.NextReview.Format(time.RFC3339Nano))
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to save response: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	resp.ID = id
	return id, nil
}

// GetSetting retrieves a setting value by key.
// Returns ErrNotFound when the key does not exist.
func (d *Database) GetSetting(ctx context.Context, key string) (string, error) {
	ctx, span := d.tracer.StartSpan(ctx, "storage.get_setting")
	defer d.tracer.EndSpan(span)
	span.SetAttribute("key", key)

	d.mu.RLock()
	defer d.mu.RUnlock()

	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to query setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value, replacing any existing value.
func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	ctx, span := d.tracer.StartSpan(ctx, "storage.set_setting")
	defer d.tracer.EndSpan(span)
	span.SetAttribute("key", key)

	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// DeleteSetting removes a setting by key. Missing keys are not an error.
func (d *Database) DeleteSetting(ctx context.Context, key string) error {
	ctx, span := d.tracer.StartSpan(ctx, "storage.delete_setting")
	defer d.tracer.EndSpan(span)
	span.SetAttribute("key", key)

	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (d *Database) Close() error {
	return d.db.Close()
}

// scanner lets the scan helpers work with both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLearningGoal(row scanner) (*types.LearningGoal, error) {
	var goal types.LearningGoal
	var createdDate, status string
	var researchComplete int

	err := row.Scan(&goal.ID, &goal.SubjectID, &goal.PurposeStatement,
		&goal.TargetDepth, &createdDate, &researchComplete, &status)
	if err != nil {
		return nil, err
	}

	goal.CreatedDate, err = time.Parse(time.RFC3339Nano, createdDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_date: %w", err)
	}
	goal.ResearchComplete = researchComplete != 0
	goal.Status = types.SubjectStatus(status)
	return &goal, nil
}

func scanKnowledgeNode(row scanner) (*types.KnowledgeNode, error) {
	var node types.KnowledgeNode
	var parentID sql.NullInt64
	var description sql.NullString
	var goalCritical int
	var prereqs, shared string

	err := row.Scan(&node.ID, &node.SubjectID, &parentID, &node.Title,
		&description, &node.Depth, &goalCritical, &prereqs, &shared)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		node.ParentID = &parentID.Int64
	}
	node.Description = description.String
	node.IsGoalCritical = goalCritical != 0
	if err := json.Unmarshal([]byte(prereqs), &node.Prerequisites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prerequisites: %w", err)
	}
	if err := json.Unmarshal([]byte(shared), &node.SharedWithSubjects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shared subjects: %w", err)
	}
	return &node, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nodeIDList normalizes nil slices so JSON columns store '[]', not 'null'.
func nodeIDList(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func stringList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
