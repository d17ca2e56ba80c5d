package edgegraph

// Angle thresholds shared by turn-candidate generation and post-processing.
// All are expressed on the same [0,360) scale computeAngle produces, where
// 180 is dead straight and 0/360 is a full reversal.
const (
	straightAngle = 180.0
	// maximalAllowedNoTurnDeviation is how far from straight a turn may
	// stray and still be considered "obviously" a non-choice.
	maximalAllowedNoTurnDeviation = 2.0
	// narrowTurnAngle is the tolerance for treating two directions as the
	// same: near-straight checks in fork/end-of-road detection, ramp
	// optimization and suppression, and equivalence pruning of invalid
	// candidates next to a valid one.
	narrowTurnAngle = 35.0
	// fuzzyStraightAngle is the looser tolerance used when snapping an
	// undecided modifier to Straight during suppression.
	fuzzyStraightAngle = 15.0
	// distinctionRatio is how much more off-straight the "wrong" side of
	// a near-straight turn must be before the straight side is treated
	// as obvious.
	distinctionRatio = 2.0
)
