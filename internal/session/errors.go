package session

import (
	"errors"
	"fmt"
)

// ErrSessionEnded is returned by every operation after End.
var ErrSessionEnded = errors.New("session ended")

// InvalidTransitionError means an operation does not apply to a stage.
type InvalidTransitionError struct {
	Stage  Stage
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition at stage %s: %s", e.Stage, e.Reason)
}
