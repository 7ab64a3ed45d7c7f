package models

import "fmt"

// Phase is the lifecycle stage shared by contests and projects.
type Phase string

const (
	PhasePlanned              Phase = "PLANNED"
	PhaseRegistered           Phase = "REGISTERED"
	PhasePreliminarySubmitted Phase = "PRELIMINARY_SUBMITTED"
	PhasePreliminaryPassed    Phase = "PRELIMINARY_PASSED"
	PhaseFinalSubmitted       Phase = "FINAL_SUBMITTED"
	PhaseFinalist             Phase = "FINALIST"
	PhasePresentation         Phase = "PRESENTATION"
	PhaseAwardedGrand         Phase = "AWARDED_GRAND"
	PhaseAwardedExcellence    Phase = "AWARDED_EXCELLENCE"
	PhaseAwardedEncouragement Phase = "AWARDED_ENCOURAGEMENT"

	// Administrative states, reachable from anywhere. DELETED doubles as
	// the logical delete for projects; documents are never removed.
	PhaseDeleted  Phase = "DELETED"
	PhaseFinished Phase = "FINISHED"
)

var allPhases = []Phase{
	PhasePlanned, PhaseRegistered, PhasePreliminarySubmitted,
	PhasePreliminaryPassed, PhaseFinalSubmitted, PhaseFinalist,
	PhasePresentation, PhaseAwardedGrand, PhaseAwardedExcellence,
	PhaseAwardedEncouragement, PhaseDeleted, PhaseFinished,
}

// ParsePhase validates a raw phase value from a request or a stored
// document. Transition legality is not checked anywhere; phases are set
// directly by privileged writes.
func ParsePhase(s string) (Phase, error) {
	for _, p := range allPhases {
		if Phase(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown phase %q", ErrValidationFailed, s)
}

func (p Phase) Valid() bool {
	_, err := ParsePhase(string(p))
	return err == nil
}
