package scheduling

// legalTransitions is the full edge set of the appointment state machine.
// SCHEDULED and CONFIRMED are the only non-terminal statuses; everything
// else is final.
var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
}

// Terminal reports whether no further transitions are allowed out of s.
func (s AppointmentStatus) Terminal() bool {
	return len(legalTransitions[s]) == 0
}

// CanTransition reports whether the edge from -> to exists in the state
// machine.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns an IllegalTransitionError when the requested edge
// is not legal. Completing an appointment before its scheduled time is a
// caller policy, not enforced here.
func CheckTransition(from, to AppointmentStatus) error {
	if !CanTransition(from, to) {
		return &IllegalTransitionError{From: from, To: to}
	}
	return nil
}
