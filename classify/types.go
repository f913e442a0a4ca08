package classify

import "context"

// Action is a coarse user intent driving the agent-mode state machine.
// Unknown actions are tolerated downstream, so recognizers may emit
// values outside this list without breaking anything.
type Action string

const (
	ActionDescribeJob     Action = "describe_job"
	ActionKeywordsDone    Action = "keywords_done"
	ActionSelectTemplate  Action = "select_template"
	ActionGenerateContent Action = "generate_content"
	ActionRequestEdit     Action = "request_edit"
	ActionEditDone        Action = "edit_done"
	ActionFinalConfirm    Action = "final_confirm"
	ActionRestart         Action = "restart"
	ActionNone            Action = "none"
)

// Request is the classification input: the utterance plus the coarse
// state the session is currently in.
type Request struct {
	Utterance  string
	AgentState string
}

// Recognizer maps an utterance to an Action. Implementations should
// return ActionNone rather than an error for unclassifiable input.
type Recognizer interface {
	Recognize(ctx context.Context, req *Request) (Action, error)
}
