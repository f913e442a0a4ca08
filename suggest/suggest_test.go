package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirekit/slotflow/classify"
	"github.com/hirekit/slotflow/schema"
	"github.com/hirekit/slotflow/session"
)

func TestFieldSuggestionsWinOverState(t *testing.T) {
	fields, err := schema.Fields(schema.FormJobPosting)
	require.NoError(t, err)
	headcount, ok := schema.FieldByKey(fields, "headcount")
	require.True(t, ok)

	got := For(&headcount, session.StateFinalConfirmation)
	assert.Equal(t, []string{"1명", "2명", "3명", "5명", "10명"}, Labels(got))
	for _, s := range got {
		assert.Empty(t, s.Action)
	}
}

func TestStateSuggestionsWhenNoField(t *testing.T) {
	got := For(nil, session.StateReviewEdit)
	require.NotEmpty(t, got)
	labels := Labels(got)
	assert.Contains(t, labels, "수정하기")

	var actions []classify.Action
	for _, s := range got {
		actions = append(actions, s.Action)
	}
	assert.Contains(t, actions, classify.ActionRequestEdit)
}

func TestUnknownFieldAndStateNeverNil(t *testing.T) {
	unknown := schema.FieldSpec{Key: "somethingElse"}
	assert.NotNil(t, For(&unknown, session.StateInitial))
	assert.Empty(t, For(&unknown, session.StateInitial))

	assert.NotNil(t, For(nil, session.AgentState("BOGUS")))
	assert.Empty(t, For(nil, session.AgentState("BOGUS")))

	// COMPLETED has no buttons either, but stays non-nil.
	assert.NotNil(t, For(nil, session.StateCompleted))
}
