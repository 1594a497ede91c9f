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

// Package orchestrator drives the learning workflow: a state machine over
// subject lifecycle, curriculum design, research, assessment, and lesson
// generation, delegating conversational work to persona agents that share
// one tool executor bound to the stores.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teradata-labs/mentor/internal/log"
	"github.com/teradata-labs/mentor/pkg/agent"
	"github.com/teradata-labs/mentor/pkg/observability"
	"github.com/teradata-labs/mentor/pkg/shuttle"
	"github.com/teradata-labs/mentor/pkg/storage"
	"github.com/teradata-labs/mentor/pkg/tools"
	"github.com/teradata-labs/mentor/pkg/types"
	"go.uber.org/zap"
)

var (
	// ErrNoActiveSubject is returned by subject-scoped operations when no
	// subject is active.
	ErrNoActiveSubject = errors.New("no active subject set")

	// ErrSubjectNotFound is returned when an operation names a subject that
	// does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
)

// Config configures an orchestrator.
type Config struct {
	DB       *storage.Database    // required
	Vectors  *storage.VectorStore // required
	Provider types.LLMProvider    // required
	Tracer   observability.Tracer // default: NoOpTracer
}

// Orchestrator owns one workflow state machine, the active-subject pointer,
// and lazily-constructed persona agents sharing one tool executor. It is
// meant for a single logical workflow at a time; it performs no internal
// locking across orchestrator calls.
type Orchestrator struct {
	db       *storage.Database
	vectors  *storage.VectorStore
	provider types.LLMProvider
	tracer   observability.Tracer

	executor *shuttle.Executor
	registry *shuttle.Registry
	toolSet  []shuttle.Tool

	state         types.WorkflowState
	activeSubject string

	curriculumAgent *agent.Agent
	researchAgent   *agent.Agent
	assessmentAgent *agent.Agent
	lessonAgent     *agent.Agent
}

// New creates an orchestrator with the full canonical tool set bound to the
// given stores.
func New(config Config) (*Orchestrator, error) {
	if config.DB == nil {
		return nil, fmt.Errorf("database is required")
	}
	if config.Vectors == nil {
		return nil, fmt.Errorf("vector store is required")
	}
	if config.Provider == nil {
		return nil, fmt.Errorf("LLM provider is required")
	}
	if config.Tracer == nil {
		config.Tracer = observability.NewNoOpTracer()
	}

	registry := tools.NewRegistry(config.DB, config.Vectors)
	return &Orchestrator{
		db:       config.DB,
		vectors:  config.Vectors,
		provider: config.Provider,
		tracer:   config.Tracer,
		registry: registry,
		executor: shuttle.NewExecutor(registry),
		toolSet:  registry.ListTools(),
		state:    types.StateIdle,
	}, nil
}

// State returns the current workflow state.
func (o *Orchestrator) State() types.WorkflowState {
	return o.state
}

// Curriculum returns the curriculum agent, constructing it on first access.
func (o *Orchestrator) Curriculum() *agent.Agent {
	if o.curriculumAgent == nil {
		o.curriculumAgent = agent.NewCurriculum(o.provider, o.executor, o.toolSet, o.tracer)
	}
	return o.curriculumAgent
}

// Research returns the research agent, constructing it on first access.
func (o *Orchestrator) Research() *agent.Agent {
	if o.researchAgent == nil {
		o.researchAgent = agent.NewResearch(o.provider, o.executor, o.toolSet, o.tracer)
	}
	return o.researchAgent
}

// Assessment returns the assessment agent, constructing it on first access.
func (o *Orchestrator) Assessment() *agent.Agent {
	if o.assessmentAgent == nil {
		o.assessmentAgent = agent.NewAssessment(o.provider, o.executor, o.toolSet, o.tracer)
	}
	return o.assessmentAgent
}

// Lesson returns the lesson agent, constructing it on first access.
func (o *Orchestrator) Lesson() *agent.Agent {
	if o.lessonAgent == nil {
		o.lessonAgent = agent.NewLesson(o.provider, o.executor, o.toolSet, o.tracer)
	}
	return o.lessonAgent
}

// ActiveSubject returns the active subject id, consulting the persisted
// setting when the in-memory pointer is empty. Returns "" when no subject
// is active.
func (o *Orchestrator) ActiveSubject(ctx context.Context) (string, error) {
	if o.activeSubject != "" {
		return o.activeSubject, nil
	}
	active, err := o.db.GetSetting(ctx, storage.SettingActiveSubject)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	o.activeSubject = active
	return active, nil
}

// SetActiveSubject makes a subject active, verifying it exists first.
func (o *Orchestrator) SetActiveSubject(ctx context.Context, subjectID string) error {
	_, err := o.db.GetLearningGoal(ctx, subjectID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrSubjectNotFound, subjectID)
	}
	if err != nil {
		return err
	}
	o.activeSubject = subjectID
	return o.db.SetSetting(ctx, storage.SettingActiveSubject, subjectID)
}

// ListSubjects returns all subjects, newest first.
func (o *Orchestrator) ListSubjects(ctx context.Context) ([]*types.LearningGoal, error) {
	return o.db.ListSubjects(ctx)
}

// InitializeSubject creates a learning goal for a new (or re-initialized)
// subject and makes it active. The subject name is slugified into the
// subject id.
func (o *Orchestrator) InitializeSubject(ctx context.Context, subject, purposeStatement string) (*types.LearningGoal, error) {
	ctx, span := o.tracer.StartSpan(ctx, "orchestrator.initialize_subject")
	defer o.tracer.EndSpan(span)

	o.state = types.StateInitializing
	defer func() { o.state = types.StateIdle }()

	subjectID := Slugify(subject)
	if subjectID == "" {
		return nil, fmt.Errorf("subject name %q produces an empty identifier", subject)
	}
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	goal := &types.LearningGoal{
		SubjectID:        subjectID,
		PurposeStatement: purposeStatement,
	}
	if _, err := o.db.SaveLearningGoal(ctx, goal); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := o.SetActiveSubject(ctx, subjectID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	log.Info("initialized subject", zap.String("subject", subjectID))
	return goal, nil
}

// StartCurriculumDesign opens a curriculum-design conversation for the
// active subject.
func (o *Orchestrator) StartCurriculumDesign(ctx context.Context) (string, error) {
	subjectID, goal, err := o.requireActiveGoal(ctx)
	if err != nil {
		return "", err
	}

	o.state = types.StateInitializing
	prompt := fmt.Sprintf(`I want to learn about %s.

My purpose: %s

Please design a coverage map for my learning journey. Start by understanding my goal,
then map the domain, and propose a curriculum structure.`, subjectID, goal.PurposeStatement)
	return o.Curriculum().Run(ctx, prompt)
}

// ContinueCurriculumDesign continues the design conversation with user
// feedback. State does not advance automatically; advancement is
// caller-driven.
func (o *Orchestrator) ContinueCurriculumDesign(ctx context.Context, userResponse string) (string, error) {
	return o.Curriculum().Continue(ctx, userResponse)
}

// StartResearch opens a research session for the active subject. With a
// nonempty knowledge tree the first node's title is researched using the
// goal's purpose as context; with an empty tree a topic name is derived
// from the subject id itself.
func (o *Orchestrator) StartResearch(ctx context.Context) (string, error) {
	subjectID, goal, err := o.requireActiveGoal(ctx)
	if err != nil {
		return "", err
	}

	o.state = types.StateResearching

	nodes, err := o.db.GetKnowledgeTree(ctx, subjectID)
	if err != nil {
		return "", err
	}

	topic := TitleFromSlug(subjectID)
	purposeContext := ""
	if len(nodes) > 0 {
		topic = nodes[0].Title
		purposeContext = goal.PurposeStatement
	}
	return o.Research().Run(ctx, researchPrompt(subjectID, topic, purposeContext))
}

// ContinueResearch researches a caller-supplied topic in the same session.
func (o *Orchestrator) ContinueResearch(ctx context.Context, topic string) (string, error) {
	subjectID, err := o.requireActiveSubject(ctx)
	if err != nil {
		return "", err
	}
	o.state = types.StateResearching
	return o.Research().Continue(ctx, researchPrompt(subjectID, topic, ""))
}

// StartLesson begins a lesson by opening the pre-lesson assessment. Up to
// the first five knowledge-tree nodes provide the assessment context.
func (o *Orchestrator) StartLesson(ctx context.Context) (string, error) {
	subjectID, err := o.requireActiveSubject(ctx)
	if err != nil {
		return "", err
	}

	o.state = types.StateAssessing

	topics, err := o.leadTopics(ctx, subjectID)
	if err != nil {
		return "", err
	}

	var topicsSection string
	if len(topics) > 0 {
		topicsSection = "\nUpcoming Topics to Assess Readiness For:\n- " + strings.Join(topics, "\n- ") + "\n"
	}
	prompt := fmt.Sprintf(`Begin a pre-lesson assessment for the subject "%s".
%s
Please start by greeting the learner and beginning the assessment with your first question.
Remember to assess one concept at a time and wait for responses.`, subjectID, topicsSection)

	// Each lesson starts a fresh assessment conversation.
	o.Assessment().ClearMessages()
	return o.Assessment().Run(ctx, prompt)
}

// ContinueAssessment evaluates a learner response and continues the
// assessment conversation.
func (o *Orchestrator) ContinueAssessment(ctx context.Context, userResponse string) (string, error) {
	return o.Assessment().Continue(ctx, userResponse)
}

// GenerateLesson asks the assessment agent for a summary, then has the
// lesson agent generate content for up to the first five tree topics
// (falling back to "Introduction" when the tree is empty). The delivered
// lesson is recorded against the covered nodes.
func (o *Orchestrator) GenerateLesson(ctx context.Context) (string, error) {
	subjectID, err := o.requireActiveSubject(ctx)
	if err != nil {
		return "", err
	}

	o.state = types.StateGeneratingLesson

	summary, err := o.Assessment().Continue(ctx, `Please provide a comprehensive assessment summary using the format
specified in your guidelines. Include:
- Overall knowledge level
- Strengths identified
- Areas needing focus
- Recommended lesson adjustments`)
	if err != nil {
		return "", err
	}

	nodes, err := o.db.GetKnowledgeTree(ctx, subjectID)
	if err != nil {
		return "", err
	}
	var topics []string
	var covered []int64
	for _, node := range nodes {
		if len(topics) == 5 {
			break
		}
		topics = append(topics, node.Title)
		covered = append(covered, node.ID)
	}
	if len(topics) == 0 {
		topics = []string{"Introduction"}
	}

	prompt := fmt.Sprintf(`Generate a comprehensive lesson for the subject "%s".

Topics to Cover:
- %s

Current Assessment Summary:
%s

Please generate an engaging lesson grounded in the stored knowledge for
these topics, plus review items for spaced repetition.`,
		subjectID, strings.Join(topics, "\n- "), summary)

	o.state = types.StateDeliveringLesson
	content, err := o.Lesson().Run(ctx, prompt)
	if err != nil {
		return "", err
	}

	if _, err := o.db.SaveLesson(ctx, &types.Lesson{
		SubjectID:      subjectID,
		NodeIDsCovered: covered,
	}); err != nil {
		// The lesson was generated; failing to record it should not lose it.
		log.Warn("failed to record lesson", zap.String("subject", subjectID), zap.Error(err))
	}
	return content, nil
}

// DeleteSubject removes a subject from both stores. Vector content goes
// first: if the relational cascade failed after the vector delete, the
// vector data would be unrecoverable, so the order is vector, pointer,
// relational. Returns whether the subject existed relationally.
func (o *Orchestrator) DeleteSubject(ctx context.Context, subjectID string) (bool, error) {
	ctx, span := o.tracer.StartSpan(ctx, "orchestrator.delete_subject")
	defer o.tracer.EndSpan(span)
	span.SetAttribute(observability.AttrSubjectID, subjectID)

	chunksDeleted, err := o.vectors.DeleteSubject(ctx, subjectID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to delete vector content: %w", err)
	}

	if o.activeSubject == subjectID {
		o.activeSubject = ""
	}

	deleted, err := o.db.DeleteSubject(ctx, subjectID)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	o.state = types.StateIdle
	log.Info("deleted subject",
		zap.String("subject", subjectID),
		zap.Bool("existed", deleted),
		zap.Int64("chunks_deleted", chunksDeleted))
	return deleted, nil
}

// GetResearchProgress reports fact coverage across a subject's curriculum
// tree: the full tree zipped with per-topic fact counts by node title, plus
// the subject's total fact count. An empty subjectID means the active
// subject. This is a read-only cross-store join performed at query time.
func (o *Orchestrator) GetResearchProgress(ctx context.Context, subjectID string) (*types.ResearchProgress, error) {
	if subjectID == "" {
		var err error
		subjectID, err = o.requireActiveSubject(ctx)
		if err != nil {
			return nil, err
		}
	}

	nodes, err := o.db.GetKnowledgeTree(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	counts, err := o.vectors.CountFactsByTopic(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	progress := &types.ResearchProgress{
		SubjectID: subjectID,
		Nodes:     make([]types.NodeProgress, 0, len(nodes)),
	}
	for _, node := range nodes {
		progress.Nodes = append(progress.Nodes, types.NodeProgress{
			ID:        node.ID,
			Title:     node.Title,
			Depth:     node.Depth,
			FactCount: counts[node.Title],
		})
	}
	for _, count := range counts {
		progress.TotalFacts += count
	}
	return progress, nil
}

// requireActiveSubject returns the active subject id or ErrNoActiveSubject.
func (o *Orchestrator) requireActiveSubject(ctx context.Context) (string, error) {
	subjectID, err := o.ActiveSubject(ctx)
	if err != nil {
		return "", err
	}
	if subjectID == "" {
		return "", ErrNoActiveSubject
	}
	return subjectID, nil
}

// requireActiveGoal returns the active subject and its learning goal,
// failing with a distinguishable error when either is missing.
func (o *Orchestrator) requireActiveGoal(ctx context.Context) (string, *types.LearningGoal, error) {
	subjectID, err := o.requireActiveSubject(ctx)
	if err != nil {
		return "", nil, err
	}
	goal, err := o.db.GetLearningGoal(ctx, subjectID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, subjectID)
	}
	if err != nil {
		return "", nil, err
	}
	return subjectID, goal, nil
}

// leadTopics returns up to the first five node titles of a subject's tree
// in (depth, id) order.
func (o *Orchestrator) leadTopics(ctx context.Context, subjectID string) ([]string, error) {
	nodes, err := o.db.GetKnowledgeTree(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, node := range nodes {
		if len(topics) == 5 {
			break
		}
		topics = append(topics, node.Title)
	}
	return topics, nil
}

func researchPrompt(subjectID, topic, purposeContext string) string {
	contextSection := ""
	if purposeContext != "" {
		contextSection = "Context: " + purposeContext + "\n"
	}
	return fmt.Sprintf(`Research the following topic for the subject "%s":

Topic: %s

%sPlease:
1. Build the knowledge tree structure for this topic first
2. Identify authoritative sources
3. Extract and validate key facts
4. Store validated knowledge using the tools
5. Report what you found and stored`, subjectID, topic, contextSection)
}

// Slugify derives a subject id from a human subject name: lowercase, with
// runs of non-alphanumerics collapsed to single hyphens.
func Slugify(subject string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(subject) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// TitleFromSlug turns a subject id back into a readable topic name:
// "distributed-systems" becomes "Distributed Systems".
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
