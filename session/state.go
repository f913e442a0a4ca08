package session

import "github.com/hirekit/slotflow/classify"

// AgentState is the coarse stage of the content-generation flow. It is
// independent of the per-field cursor used by plain slot filling; the
// two chat surfaces drive different granularities over one session.
type AgentState string

const (
	StateInitial           AgentState = "INITIAL"
	StateKeywordExtraction AgentState = "KEYWORD_EXTRACTION"
	StateTemplateSelection AgentState = "TEMPLATE_SELECTION"
	StateContentGeneration AgentState = "CONTENT_GENERATION"
	StateReviewEdit        AgentState = "REVIEW_EDIT"
	StateFinalConfirmation AgentState = "FINAL_CONFIRMATION"
	StateCompleted         AgentState = "COMPLETED"
)

// agentTransitions is the fixed (state, action) -> state table. Pairs
// not listed here are a no-op, never an error; the upstream classifier
// is allowed to be wrong.
var agentTransitions = map[AgentState]map[classify.Action]AgentState{
	StateInitial: {
		classify.ActionDescribeJob: StateKeywordExtraction,
	},
	StateKeywordExtraction: {
		classify.ActionKeywordsDone:   StateTemplateSelection,
		classify.ActionSelectTemplate: StateTemplateSelection,
	},
	StateTemplateSelection: {
		classify.ActionSelectTemplate:  StateContentGeneration,
		classify.ActionGenerateContent: StateContentGeneration,
	},
	StateContentGeneration: {
		classify.ActionGenerateContent: StateReviewEdit,
		classify.ActionRequestEdit:     StateReviewEdit,
	},
	StateReviewEdit: {
		classify.ActionEditDone:     StateFinalConfirmation,
		classify.ActionFinalConfirm: StateFinalConfirmation,
	},
	StateFinalConfirmation: {
		classify.ActionFinalConfirm: StateCompleted,
	},
}

// Next resolves one agent-mode transition. restart returns to INITIAL
// from anywhere; unknown pairs leave the state unchanged.
func Next(current AgentState, action classify.Action) AgentState {
	if action == classify.ActionRestart {
		return StateInitial
	}
	if targets, ok := agentTransitions[current]; ok {
		if next, ok := targets[action]; ok {
			return next
		}
	}
	return current
}
