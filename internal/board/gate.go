package board

import "github.com/quadroqm/quadro/internal/models"

// Gate is the policy decision for a cross-column move. Column membership is
// policy-gated; dropping a card never mutates state until the gate clears.
type Gate int

const (
	// GateNone: apply the status change immediately as a partial update.
	GateNone Gate = iota

	// GateConfirmReopen: the card leaves the done column; require explicit
	// confirmation before the status changes.
	GateConfirmReopen

	// GateRequireSolution: the card enters the done column; require a
	// non-empty solution string submitted together with the transition.
	GateRequireSolution
)

// GateFor returns the gate guarding a move from current to next status.
// Same-status drops gate as GateNone; callers treat them as no-ops.
func GateFor(current, next models.Status) Gate {
	if current == next {
		return GateNone
	}
	if current == models.StatusDone {
		return GateConfirmReopen
	}
	if next == models.StatusDone {
		return GateRequireSolution
	}
	return GateNone
}
