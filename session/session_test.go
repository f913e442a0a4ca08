package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirekit/slotflow/classify"
	"github.com/hirekit/slotflow/extract"
	"github.com/hirekit/slotflow/schema"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	fields, err := schema.Fields(schema.FormJobPosting)
	require.NoError(t, err)
	return New("test-session", schema.FormJobPosting, fields, DefaultMaxHistory)
}

func TestNeedsMoreDetailDoesNotAdvance(t *testing.T) {
	sess := newTestSession(t)
	in, err := sess.TurnInput()
	require.NoError(t, err)

	outcome, err := sess.CommitExtraction(in.Version, "개발", &extract.Result{
		Value:           "개발",
		NeedsMoreDetail: true,
		FollowUpMessage: "조금 더 구체적으로요?",
	})
	require.NoError(t, err)

	assert.False(t, outcome.Advanced)
	assert.Equal(t, 0, sess.Cursor())
	assert.Empty(t, sess.Collected())
	assert.Equal(t, []string{"개발"}, sess.Buffer("department"))
}

func TestResolvedFieldAdvancesAndClearsBuffer(t *testing.T) {
	sess := newTestSession(t)

	in, err := sess.TurnInput()
	require.NoError(t, err)
	_, err = sess.CommitExtraction(in.Version, "개발", &extract.Result{
		Value: "개발", NeedsMoreDetail: true, FollowUpMessage: "?",
	})
	require.NoError(t, err)

	in, err = sess.TurnInput()
	require.NoError(t, err)
	assert.Equal(t, []string{"개발"}, in.Buffer)

	outcome, err := sess.CommitExtraction(in.Version, "프론트엔드", &extract.Result{Value: "프론트엔드"})
	require.NoError(t, err)

	assert.True(t, outcome.Advanced)
	assert.False(t, outcome.Done)
	assert.Equal(t, 1, sess.Cursor())
	assert.Equal(t, "프론트엔드", sess.Collected()["department"])
	assert.Empty(t, sess.Buffer("department"))
}

func TestCursorMonotonicAcrossFullRun(t *testing.T) {
	sess := newTestSession(t)
	prev := sess.Cursor()
	for !sess.Done() {
		in, err := sess.TurnInput()
		require.NoError(t, err)
		_, err = sess.CommitExtraction(in.Version, "값", &extract.Result{Value: "값"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sess.Cursor(), prev)
		prev = sess.Cursor()
	}
	assert.Equal(t, len(sess.Fields()), sess.Cursor())
}

func TestCollectedKeysFollowSchemaOrder(t *testing.T) {
	sess := newTestSession(t)
	answers := []string{"백엔드", "2명", "API 개발", "유연근무", "서울", "협의", "상시", "hr@acme.kr"}
	for _, answer := range answers {
		in, err := sess.TurnInput()
		require.NoError(t, err)
		_, err = sess.CommitExtraction(in.Version, answer, &extract.Result{Value: answer})
		require.NoError(t, err)
	}

	rec := sess.Record()
	keys := make([]string, 0, len(rec))
	for _, f := range rec {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, schema.Keys(sess.Fields()), keys)
}

func TestSetFieldOverrideIsIdempotent(t *testing.T) {
	sess := newTestSession(t)
	in, err := sess.TurnInput()
	require.NoError(t, err)
	_, err = sess.CommitExtraction(in.Version, "백엔드", &extract.Result{Value: "백엔드"})
	require.NoError(t, err)

	cursorBefore := sess.Cursor()
	require.NoError(t, sess.SetField("salary", "연봉 6천"))
	require.NoError(t, sess.SetField("salary", "연봉 6천"))
	require.NoError(t, sess.SetField("department", "프론트엔드"))

	assert.Equal(t, cursorBefore, sess.Cursor())
	collected := sess.Collected()
	assert.Equal(t, "연봉 6천", collected["salary"])
	assert.Equal(t, "프론트엔드", collected["department"])
}

func TestSetFieldRejectsUnknownKey(t *testing.T) {
	sess := newTestSession(t)
	err := sess.SetField("nonexistent", "값")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.Empty(t, sess.Collected())
}

func TestResetClearsEverything(t *testing.T) {
	sess := newTestSession(t)
	in, err := sess.TurnInput()
	require.NoError(t, err)
	_, err = sess.CommitExtraction(in.Version, "개발", &extract.Result{
		Value: "개발", NeedsMoreDetail: true, FollowUpMessage: "?",
	})
	require.NoError(t, err)
	sess.ApplyAction(classify.ActionDescribeJob)

	sess.Reset()

	assert.Equal(t, 0, sess.Cursor())
	assert.Empty(t, sess.Collected())
	assert.Empty(t, sess.Buffer("department"))
	assert.Equal(t, StateInitial, sess.State())
	assert.Empty(t, sess.History())
}

func TestStaleTurnDiscardedAfterReset(t *testing.T) {
	sess := newTestSession(t)
	in, err := sess.TurnInput()
	require.NoError(t, err)

	// A reset lands while the extraction call is in flight.
	sess.Reset()

	_, err = sess.CommitExtraction(in.Version, "백엔드", &extract.Result{Value: "백엔드"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStaleTurn))
	assert.Empty(t, sess.Collected())
	assert.Equal(t, 0, sess.Cursor())
}

func TestClosedSessionRefusesWork(t *testing.T) {
	sess := newTestSession(t)
	sess.Close()

	_, err := sess.TurnInput()
	assert.True(t, errors.Is(err, ErrClosed))
	assert.True(t, errors.Is(sess.SetField("salary", "x"), ErrClosed))
}

func TestHistoryRecordsTurns(t *testing.T) {
	sess := newTestSession(t)
	in, err := sess.TurnInput()
	require.NoError(t, err)
	_, err = sess.CommitExtraction(in.Version, "개발", &extract.Result{
		Value: "개발", NeedsMoreDetail: true, FollowUpMessage: "어느 분야인가요?",
	})
	require.NoError(t, err)

	history := sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, Entry{Who: WhoUser, Text: "개발"}, history[0])
	assert.Equal(t, Entry{Who: WhoEngine, Text: "어느 분야인가요?"}, history[1])
}

func TestAgentTransitions(t *testing.T) {
	cases := []struct {
		state  AgentState
		action classify.Action
		want   AgentState
	}{
		{StateInitial, classify.ActionDescribeJob, StateKeywordExtraction},
		{StateKeywordExtraction, classify.ActionKeywordsDone, StateTemplateSelection},
		{StateTemplateSelection, classify.ActionSelectTemplate, StateContentGeneration},
		{StateContentGeneration, classify.ActionGenerateContent, StateReviewEdit},
		{StateReviewEdit, classify.ActionEditDone, StateFinalConfirmation},
		{StateFinalConfirmation, classify.ActionFinalConfirm, StateCompleted},
		// Unknown pairs are a no-op, never an error.
		{StateInitial, classify.ActionFinalConfirm, StateInitial},
		{StateReviewEdit, classify.ActionDescribeJob, StateReviewEdit},
		{StateInitial, classify.Action("garbage"), StateInitial},
		// restart returns to INITIAL from anywhere.
		{StateContentGeneration, classify.ActionRestart, StateInitial},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Next(tc.state, tc.action), "%s + %s", tc.state, tc.action)
	}
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil)

	sess, err := m.Start(ctx, schema.FormJobPosting)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID())

	got, err := m.Get(ctx, sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, m.End(ctx, sess.ID()))
	_, err = m.Get(ctx, sess.ID())
	assert.True(t, errors.Is(err, ErrUnknownSession))
}

func TestManagerUnknownSchema(t *testing.T) {
	_, err := NewManager(nil).Start(context.Background(), schema.FormType("bogus"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrUnknownSchema))
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil)
	a, err := m.Start(ctx, schema.FormJobPosting)
	require.NoError(t, err)
	b, err := m.Start(ctx, schema.FormJobPosting)
	require.NoError(t, err)

	in, err := a.TurnInput()
	require.NoError(t, err)
	_, err = a.CommitExtraction(in.Version, "백엔드", &extract.Result{Value: "백엔드"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Cursor())
	assert.Equal(t, 0, b.Cursor())
	assert.Empty(t, b.Collected())
}
