package convergence

// Sampling temperatures for the two phases of a session. The initial draft
// wants variety, revisions want discipline: they must apply feedback without
// rewriting the parts nobody flagged.
const (
	// TempInitial is used for the round-0 draft, before any feedback
	// exists.
	TempInitial = 0.7

	// TempMid is the ceiling of the revision schedule. Early revisions
	// sample near it.
	TempMid = 0.55

	// TempFloor is the schedule's minimum. Late revisions converge to it.
	TempFloor = 0.3

	// TempFeedback is the fixed temperature for collaborator reviews.
	// Critique wants consistency across rounds, so it never varies with
	// the schedule.
	TempFeedback = 0.2
)

// Temperature returns the sampling temperature for the given round index.
// Index 0 is the initial draft and always gets TempInitial. Indices >= 1
// interpolate linearly from just under TempMid down to TempFloor as the
// index approaches maxRounds, so late rounds make smaller, safer moves.
//
// Indices past maxRounds clamp to TempFloor rather than extrapolating
// below it.
func Temperature(roundIndex, maxRounds int) float64 {
	if roundIndex <= 0 {
		return TempInitial
	}
	if maxRounds <= 0 {
		return TempFloor
	}
	frac := float64(maxRounds-roundIndex) / float64(maxRounds)
	if frac < 0 {
		frac = 0
	}
	return TempFloor + (TempMid-TempFloor)*frac
}
