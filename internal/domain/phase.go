package domain

// Phase tags the lifecycle of an asynchronous operation (login, registration,
// order submission). Exactly one transition out of Pending is applied per
// request, replacing the boolean-flag soup the UI would otherwise juggle.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// IsLoading reports whether a request is currently in flight, which is the
// shape UI submit-control gating consumes.
func (p Phase) IsLoading() bool {
	return p == PhasePending
}
