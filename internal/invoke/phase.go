package invoke

// Phase is a state of one invocation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInputsBound
	PhaseConfirmationPending
	PhaseConfirmationDeclined
	PhaseConfirmationGranted
	PhaseRequestBuilt
	PhaseDispatched
	PhaseCompleted
	PhaseFailed
	PhaseCancelled
)

var phaseNames = [...]string{
	PhaseIdle:                 "idle",
	PhaseInputsBound:          "inputs-bound",
	PhaseConfirmationPending:  "confirmation-pending",
	PhaseConfirmationDeclined: "confirmation-declined",
	PhaseConfirmationGranted:  "confirmation-granted",
	PhaseRequestBuilt:         "request-built",
	PhaseDispatched:           "dispatched",
	PhaseCompleted:            "completed",
	PhaseFailed:               "failed",
	PhaseCancelled:            "cancelled",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Terminal reports whether no further transition follows p.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseConfirmationDeclined, PhaseCompleted, PhaseFailed, PhaseCancelled:
		return true
	}
	return false
}
