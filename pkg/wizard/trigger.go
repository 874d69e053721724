// SPDX-License-Identifier: Apache-2.0
package wizard

// Action is the behaviour currently bound to the action trigger
type Action int

const (
	ActionInactive Action = iota
	ActionShowConfirmation
	ActionFinalize
	ActionAdvanceStage
	ActionSubmitStages
)

func (a Action) String() string {
	switch a {
	case ActionShowConfirmation:
		return "show-confirmation"
	case ActionFinalize:
		return "finalize"
	case ActionAdvanceStage:
		return "advance-stage"
	case ActionSubmitStages:
		return "submit-stages"
	default:
		return "inactive"
	}
}

// Trigger labels
const (
	LabelNext = "NEXT"
	LabelDone = "DONE"
	LabelPost = "POST"
)

// Trigger describes the action control. It is always derived from a
// controller and holds exactly one bound action.
type Trigger struct {
	Visible bool
	Enabled bool
	Label   string
	Action  Action
}

// Ready reports whether firing the trigger would run its action
func (t Trigger) Ready() bool {
	return t.Visible && t.Enabled && t.Action != ActionInactive
}

var inactiveTrigger = Trigger{Action: ActionInactive}

// Outcome is the result of firing a trigger
type Outcome struct {
	Action  Action
	Summary string // set by terminal actions
}

// Terminal reports whether the outcome carries a final summary
func (o Outcome) Terminal() bool {
	return o.Action == ActionFinalize || o.Action == ActionSubmitStages
}
