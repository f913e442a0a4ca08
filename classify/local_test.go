package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRecognizer(t *testing.T) {
	r := NewLocalRecognizer()
	cases := []struct {
		utterance string
		want      Action
	}{
		{"채용 공고를 작성하고 싶어요", ActionDescribeJob},
		{"개발자를 뽑으려고 합니다", ActionDescribeJob},
		{"템플릿 보여주세요", ActionSelectTemplate},
		{"내용 생성해줘", ActionGenerateContent},
		{"급여 부분 수정해줘", ActionRequestEdit},
		{"수정 완료했어요", ActionEditDone},
		{"이대로 확정할게요", ActionFinalConfirm},
		{"처음부터 다시 할래요", ActionRestart},
		{"날씨가 좋네요", ActionNone},
		{"", ActionNone},
	}
	for _, tc := range cases {
		action, err := r.Recognize(context.Background(), &Request{Utterance: tc.utterance})
		require.NoError(t, err)
		assert.Equal(t, tc.want, action, "utterance %q", tc.utterance)
	}
}

type failingRecognizer struct{}

func (failingRecognizer) Recognize(ctx context.Context, req *Request) (Action, error) {
	return ActionNone, errors.New("model unreachable")
}

func TestFallbackRecognizer(t *testing.T) {
	chain := NewFallbackRecognizer(failingRecognizer{}, NewLocalRecognizer())
	action, err := chain.Recognize(context.Background(), &Request{Utterance: "채용하려고요"})
	require.NoError(t, err)
	assert.Equal(t, ActionDescribeJob, action)
}
