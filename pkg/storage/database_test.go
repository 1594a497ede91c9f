// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/mentor/pkg/observability"
	"github.com/teradata-labs/mentor/pkg/types"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "mentor.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStoreEmitsSpans(t *testing.T) {
	tracer := observability.NewMockTracer()
	db, err := New(Config{
		Path:   filepath.Join(t.TempDir(), "mentor.db"),
		Tracer: tracer,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	require.NotNil(t, tracer.SpanByName("storage.init_schema"))

	_, err = db.SaveLearningGoal(ctx, &types.LearningGoal{
		SubjectID:        "kubernetes",
		PurposeStatement: "learn",
	})
	require.NoError(t, err)

	span := tracer.SpanByName("storage.save_learning_goal")
	require.NotNil(t, span)
	assert.Equal(t, "kubernetes", span.Attributes[observability.AttrSubjectID])
	assert.False(t, span.EndTime.IsZero())

	_, err = db.GetLearningGoal(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	span = tracer.SpanByName("storage.get_learning_goal")
	require.NotNil(t, span)
	assert.Equal(t, "not_found", span.Attributes["error"])
}

func TestSaveLearningGoalUpsert(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	goal := &types.LearningGoal{
		SubjectID:        "kubernetes",
		PurposeStatement: "run production workloads",
	}
	id1, err := db.SaveLearningGoal(ctx, goal)
	require.NoError(t, err)
	assert.Greater(t, id1, int64(0))

	// Saving the same subject again updates in place and keeps the id.
	goal2 := &types.LearningGoal{
		SubjectID:        "kubernetes",
		PurposeStatement: "debug production workloads",
		TargetDepth:      "expert",
		ResearchComplete: true,
		Status:           types.SubjectReady,
	}
	id2, err := db.SaveLearningGoal(ctx, goal2)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	stored, err := db.GetLearningGoal(ctx, "kubernetes")
	require.NoError(t, err)
	assert.Equal(t, "debug production workloads", stored.PurposeStatement)
	assert.Equal(t, "expert", stored.TargetDepth)
	assert.True(t, stored.ResearchComplete)
	assert.Equal(t, types.SubjectReady, stored.Status)

	subjects, err := db.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
}

func TestGetLearningGoalNotFound(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.GetLearningGoal(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveLearningGoalDefaults(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.SaveLearningGoal(ctx, &types.LearningGoal{
		SubjectID:        "rust",
		PurposeStatement: "write a CLI",
	})
	require.NoError(t, err)

	stored, err := db.GetLearningGoal(ctx, "rust")
	require.NoError(t, err)
	assert.Equal(t, "practical", stored.TargetDepth)
	assert.Equal(t, types.SubjectInitializing, stored.Status)
	assert.False(t, stored.CreatedDate.IsZero())
}

func TestKnowledgeNodeInsertAndUpdate(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.SaveLearningGoal(ctx, &types.LearningGoal{
		SubjectID:        "kubernetes",
		PurposeStatement: "learn",
	})
	require.NoError(t, err)

	node := &types.KnowledgeNode{
		SubjectID:      "kubernetes",
		Title:          "Pods",
		Description:    "Smallest deployable unit",
		Depth:          0,
		IsGoalCritical: true,
	}
	id, err := db.SaveKnowledgeNode(ctx, node)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	node.Description = "Smallest deployable compute unit"
	node.Prerequisites = []int64{}
	id2, err := db.SaveKnowledgeNode(ctx, node)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	stored, err := db.GetKnowledgeNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Smallest deployable compute unit", stored.Description)
	assert.True(t, stored.IsGoalCritical)
	assert.Nil(t, stored.ParentID)
}

func TestSaveKnowledgeNodeAcceptsForwardReferences(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	// Agents may save a child before its parent, or nodes before the
	// learning goal row exists. The store takes them as-is.
	missingParent := int64(9999)
	node := &types.KnowledgeNode{
		SubjectID: "kubernetes",
		ParentID:  &missingParent,
		Title:     "Sidecar Containers",
		Depth:     2,
	}
	id, err := db.SaveKnowledgeNode(ctx, node)
	require.NoError(t, err)

	stored, err := db.GetKnowledgeNode(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored.ParentID)
	assert.Equal(t, missingParent, *stored.ParentID)
}

func TestGetKnowledgeTreeOrdering(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.SaveLearningGoal(ctx, &types.LearningGoal{
		SubjectID:        "kubernetes",
		PurposeStatement: "learn",
	})
	require.NoError(t, err)

	podsID, err := db.SaveKnowledgeNode(ctx, &types.KnowledgeNode{
		SubjectID: "kubernetes", Title: "Pods", Depth: 0,
	})
	require.NoError(t, err)

	_, err = db.SaveKnowledgeNode(ctx, &types.KnowledgeNode{
		SubjectID: "kubernetes", Title: "Containers", Depth: 1, ParentID: &podsID,
	})
	require.NoError(t, err)

	servicesID, err := db.SaveKnowledgeNode(ctx, &types.KnowledgeNode{
		SubjectID: "kubernetes", Title: "Services", Depth: 0,
	})
	require.NoError(t, err)

	// Insertion order was Pods, Containers, Services; the tree must come
	// back ordered by depth first, then id.
	tree, err := db.GetKnowledgeTree(ctx, "kubernetes")
	require.NoError(t, err)
	require.Len(t, tree, 3)
	assert.Equal(t, "Pods", tree[0].Title)
	assert.Equal(t, "Services", tree[1].Title)
	assert.Equal(t, "Containers", tree[2].Title)
	assert.Equal(t, servicesID, tree[1].ID)
	require.NotNil(t, tree[2].ParentID)
	assert.Equal(t, podsID, *tree[2].ParentID)
}

func TestGetKnowledgeTreeEmptySubject(t *testing.T) {
	db := newTestDatabase(t)

	tree, err := db.GetKnowledgeTree(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestDeleteSubjectCascade(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	_, err := db.SaveLearningGoal(ctx, &types.LearningGoal{
		SubjectID:        "kubernetes",
		PurposeStatement: "learn",
	})
	require.NoError(t, err)

	nodeID, err := db.SaveKnowledgeNode(ctx, &types.KnowledgeNode{
		SubjectID: "kubernetes", Title: "Pods",
	})
	require.NoError(t, err)

	lessonID, err := db.SaveLesson(ctx, &types.Lesson{
		SubjectID:      "kubernetes",
		NodeIDsCovered: []int64{nodeID},
	})
	require.NoError(t, err)

	_, err = db.SaveResponse(ctx, &types.AssessmentResponse{
		LessonID:     &lessonID,
		NodeID:       nodeID,
		QuestionHash: "abc123",
		Response:     "a pod is the smallest unit",
		Correct:      true,
	})
	require.NoError(t, err)

	require.NoError(t, db.SetSetting(ctx, SettingActiveSubject, "kubernetes"))

	deleted, err := db.DeleteSubject(ctx, "kubernetes")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = db.GetLearningGoal(ctx, "kubernetes")
	assert.ErrorIs(t, err, ErrNotFound)

	tree, err := db.GetKnowledgeTree(ctx, "kubernetes")
	require.NoError(t, err)
	assert.Empty(t, tree)

	// The active-subject setting pointed at the deleted subject and must
	// be cleared with it.
	_, err = db.GetSetting(ctx, SettingActiveSubject)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSubjectPreservesOtherActiveSubject(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	for _, subject := range []string{"kubernetes", "rust"} {
		_, err := db.SaveLearningGoal(ctx, &types.LearningGoal{
			SubjectID:        subject,
			PurposeStatement: "learn",
		})
		require.NoError(t, err)
	}
	require.NoError(t, db.SetSetting(ctx, SettingActiveSubject, "rust"))

	deleted, err := db.DeleteSubject(ctx, "kubernetes")
	require.NoError(t, err)
	assert.True(t, deleted)

	active, err := db.GetSetting(ctx, SettingActiveSubject)
	require.NoError(t, err)
	assert.Equal(t, "rust", active)
}

func TestDeleteSubjectMissing(t *testing.T) {
	db := newTestDatabase(t)

	deleted, err := db.DeleteSubject(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSettingsRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, db.SetSetting(ctx, "active_subject", "kubernetes"))
	require.NoError(t, db.SetSetting(ctx, "active_subject", "rust"))

	value, err := db.GetSetting(ctx, "active_subject")
	require.NoError(t, err)
	assert.Equal(t, "rust", value)

	require.NoError(t, db.DeleteSetting(ctx, "active_subject"))
	_, err = db.GetSetting(ctx, "active_subject")
	assert.ErrorIs(t, err, ErrNotFound)
}
