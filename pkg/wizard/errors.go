// SPDX-License-Identifier: Apache-2.0
package wizard

import "errors"

var (
	// ErrOutOfPhase is returned for an operation the current phase does not allow
	ErrOutOfPhase = errors.New("operation not allowed in current phase")

	// ErrUnknownOption is returned when a pick is not part of the displayed group
	ErrUnknownOption = errors.New("option is not offered")

	// ErrNothingSelected is returned when an action needs at least one selection
	ErrNothingSelected = errors.New("nothing selected")

	// ErrSelectionInvalid is returned when a stage count is outside its range
	ErrSelectionInvalid = errors.New("selection count outside allowed range")

	// ErrFinalStage is returned when advancing past the last stage
	ErrFinalStage = errors.New("already at final stage")

	// ErrTriggerInactive is returned when firing a hidden or disabled trigger
	ErrTriggerInactive = errors.New("action trigger is inactive")
)
