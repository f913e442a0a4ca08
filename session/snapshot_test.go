package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirekit/slotflow/extract"
	"github.com/hirekit/slotflow/schema"
)

func TestSnapshotRoundTrip(t *testing.T) {
	sess := newTestSession(t)

	in, err := sess.TurnInput()
	require.NoError(t, err)
	_, err = sess.CommitExtraction(in.Version, "백엔드", &extract.Result{Value: "백엔드"})
	require.NoError(t, err)

	in, err = sess.TurnInput()
	require.NoError(t, err)
	_, err = sess.CommitExtraction(in.Version, "아마도요", &extract.Result{
		Value: "아마도요", NeedsMoreDetail: true, FollowUpMessage: "몇 명인가요?",
	})
	require.NoError(t, err)

	data, err := sess.Snapshot()
	require.NoError(t, err)

	restored, err := Restore(data, DefaultMaxHistory)
	require.NoError(t, err)

	assert.Equal(t, sess.ID(), restored.ID())
	assert.Equal(t, 1, restored.Cursor())
	assert.Equal(t, "백엔드", restored.Collected()["department"])
	assert.Equal(t, []string{"아마도요"}, restored.Buffer("headcount"))
	assert.Equal(t, sess.History(), restored.History())
	// The schema re-resolves from the registry.
	assert.Equal(t, schema.Keys(sess.Fields()), schema.Keys(restored.Fields()))
}

func TestRestoreRejectsBadData(t *testing.T) {
	_, err := Restore([]byte(`{"version":"2.0","form_type":"job_posting"}`), DefaultMaxHistory)
	require.Error(t, err)

	_, err = Restore([]byte(`{"version":"1.0","form_type":"bogus"}`), DefaultMaxHistory)
	require.Error(t, err)

	_, err = Restore([]byte(`{"version":"1.0","form_type":"job_posting","cursor":99}`), DefaultMaxHistory)
	require.Error(t, err)
}

func TestAdoptRestoredSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil)

	sess := newTestSession(t)
	data, err := sess.Snapshot()
	require.NoError(t, err)

	restored, err := Restore(data, DefaultMaxHistory)
	require.NoError(t, err)
	require.NoError(t, m.Adopt(ctx, restored))

	got, err := m.Get(ctx, sess.ID())
	require.NoError(t, err)
	assert.Same(t, restored, got)
}
