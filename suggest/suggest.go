// Package suggest produces the quick replies shown under the chat
// input: curated per-field answers while collecting, and per-stage
// action buttons in agent mode.
package suggest

import (
	"github.com/hirekit/slotflow/classify"
	"github.com/hirekit/slotflow/schema"
	"github.com/hirekit/slotflow/session"
)

// Suggestion is one quick-reply button. Action and Target are empty for
// plain answer chips; agent-mode buttons carry the action they trigger.
type Suggestion struct {
	Label  string          `json:"label"`
	Action classify.Action `json:"action,omitempty"`
	Target string          `json:"target,omitempty"`
}

// fieldReplies are the curated answer chips per field key.
var fieldReplies = map[string][]string{
	"department": {"프론트엔드", "백엔드", "풀스택", "모바일"},
	"headcount":  {"1명", "2명", "3명", "5명", "10명"},
	"workHours":  {"09:00-18:00", "10:00-19:00", "유연근무제"},
	"location":   {"서울", "판교", "재택근무"},
	"salary":     {"회사 내규에 따름", "면접 후 협의"},
	"deadline":   {"상시 채용", "채용 시 마감"},
}

// stateButtons are the next-action buttons per agent stage.
var stateButtons = map[session.AgentState][]Suggestion{
	session.StateInitial: {
		{Label: "채용 공고 작성하기", Action: classify.ActionDescribeJob},
	},
	session.StateKeywordExtraction: {
		{Label: "키워드 입력 완료", Action: classify.ActionKeywordsDone},
	},
	session.StateTemplateSelection: {
		{Label: "템플릿 선택", Action: classify.ActionSelectTemplate, Target: "template-picker"},
		{Label: "바로 생성하기", Action: classify.ActionGenerateContent},
	},
	session.StateContentGeneration: {
		{Label: "내용 생성", Action: classify.ActionGenerateContent},
	},
	session.StateReviewEdit: {
		{Label: "수정하기", Action: classify.ActionRequestEdit},
		{Label: "이대로 좋아요", Action: classify.ActionEditDone},
	},
	session.StateFinalConfirmation: {
		{Label: "최종 확정", Action: classify.ActionFinalConfirm, Target: "job-posting-form"},
		{Label: "처음부터 다시", Action: classify.ActionRestart},
	},
}

// For returns the quick replies for the given position in the flow.
// Field-level replies win over stage-level buttons; the result is never
// nil for a known field or stage, and at worst an empty slice.
func For(field *schema.FieldSpec, state session.AgentState) []Suggestion {
	if field != nil {
		if replies, ok := fieldReplies[field.Key]; ok {
			out := make([]Suggestion, 0, len(replies))
			for _, label := range replies {
				out = append(out, Suggestion{Label: label})
			}
			return out
		}
		return []Suggestion{}
	}
	if buttons, ok := stateButtons[state]; ok {
		out := make([]Suggestion, len(buttons))
		copy(out, buttons)
		return out
	}
	return []Suggestion{}
}

// Labels flattens suggestions to their display strings.
func Labels(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Label)
	}
	return out
}
