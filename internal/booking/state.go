package booking

import (
	"net/http"

	"github.com/peershare/peershare-backend/internal/pkg/apperror"
)

// ErrUnknownState reports a state filter string that is none of the six
// known values. It is a parse failure, deliberately distinct from the
// business-rule validation errors in model.go.
var ErrUnknownState = apperror.New(http.StatusBadRequest, "unknown state filter")

// State selects a listing filter. It is derived per request and never stored.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState resolves a caller-supplied filter string. The empty string
// defaults to ALL; matching is exact and case-sensitive.
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	}
	return "", ErrUnknownState
}
