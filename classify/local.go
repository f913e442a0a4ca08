package classify

import (
	"context"
	"strings"
)

// LocalRecognizer is a keyword-table recognizer. It checks rules in
// order and takes the first hit, so more specific phrases go first.
type LocalRecognizer struct {
	Rules []KeywordRule
}

type KeywordRule struct {
	Keywords []string
	Action   Action
}

func NewLocalRecognizer() *LocalRecognizer {
	return &LocalRecognizer{
		Rules: []KeywordRule{
			{Keywords: []string{"다시", "처음부터", "restart", "start over"}, Action: ActionRestart},
			{Keywords: []string{"확정", "최종", "confirm", "등록할게"}, Action: ActionFinalConfirm},
			{Keywords: []string{"수정 완료", "수정 끝", "edit done"}, Action: ActionEditDone},
			{Keywords: []string{"수정", "바꿔", "고쳐", "edit"}, Action: ActionRequestEdit},
			{Keywords: []string{"생성", "작성해", "만들어", "generate"}, Action: ActionGenerateContent},
			{Keywords: []string{"템플릿", "template", "양식"}, Action: ActionSelectTemplate},
			{Keywords: []string{"키워드 완료", "키워드 끝", "keywords done"}, Action: ActionKeywordsDone},
			{Keywords: []string{"채용", "공고", "뽑으려", "hiring", "job"}, Action: ActionDescribeJob},
		},
	}
}

func (r *LocalRecognizer) Recognize(ctx context.Context, req *Request) (Action, error) {
	lowered := strings.ToLower(strings.TrimSpace(req.Utterance))
	if lowered == "" {
		return ActionNone, nil
	}
	for _, rule := range r.Rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Action, nil
			}
		}
	}
	return ActionNone, nil
}

// FallbackRecognizer tries recognizers in order, returning the first
// answer that did not error.
type FallbackRecognizer struct {
	recognizers []Recognizer
}

func NewFallbackRecognizer(recognizers ...Recognizer) *FallbackRecognizer {
	return &FallbackRecognizer{recognizers: recognizers}
}

func (r *FallbackRecognizer) Recognize(ctx context.Context, req *Request) (Action, error) {
	var lastErr error
	for _, recognizer := range r.recognizers {
		action, err := recognizer.Recognize(ctx, req)
		if err == nil {
			return action, nil
		}
		lastErr = err
	}
	return ActionNone, lastErr
}
