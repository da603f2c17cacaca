package pipeline

// State is a step in the life of one document. States are reached in
// declaration order.
type State string

const (
	StateInit         State = "INIT"
	StatePromptsReady State = "PROMPTS_READY"
	StateWorkPlanned  State = "WORK_PLANNED"
	StateRendered     State = "RENDERED"
	StateAssembled    State = "ASSEMBLED"
	StateDone         State = "DONE"
)
