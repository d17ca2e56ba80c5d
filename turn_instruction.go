package edgegraph

// TurnType classifies what kind of maneuver a turn represents.
type TurnType uint8

const (
	TurnTypeInvalid TurnType = iota
	TurnTypeNoTurn
	TurnTypeTurn
	TurnTypeRamp
	TurnTypeMerge
	TurnTypeFork
	TurnTypeEndOfRoad
	TurnTypeContinue
	TurnTypeNewName
	TurnTypeSuppressed
	TurnTypeEnterRoundabout
	TurnTypeExitRoundabout
	TurnTypeRemainRoundabout
	TurnTypeEnterRotary
	TurnTypeEnterRotaryAtExit
	TurnTypeEnterRoundaboutAtExit
)

func (t TurnType) String() string {
	names := [...]string{
		"invalid", "no_turn", "turn", "ramp", "merge", "fork", "end_of_road",
		"continue", "new_name", "suppressed", "enter_roundabout",
		"exit_roundabout", "remain_roundabout", "enter_rotary",
		"enter_rotary_at_exit", "enter_roundabout_at_exit",
	}
	if int(t) >= len(names) {
		return "invalid"
	}
	return names[t]
}

// DirectionModifier narrows a TurnType to the side of the road it takes.
// Values are laid out in clockwise angle order starting at UTurn (~0/360
// degrees), so that rotating a modifier "towards the right" or "towards
// the left" is a matter of walking the enum by one step.
type DirectionModifier uint8

const (
	ModifierUTurn DirectionModifier = iota
	ModifierSharpRight
	ModifierRight
	ModifierSlightRight
	ModifierStraight
	ModifierSlightLeft
	ModifierLeft
	ModifierSharpLeft
)

func (m DirectionModifier) String() string {
	names := [...]string{
		"uturn", "sharp_right", "right", "slight_right", "straight",
		"slight_left", "left", "sharp_left",
	}
	if int(m) >= len(names) {
		return "uturn"
	}
	return names[m]
}

// TurnInstruction is the (type, modifier) pair attached to a turn candidate
// once it leaves getTurnCandidates, and mutated in place by the
// post-processing passes.
type TurnInstruction struct {
	Type     TurnType
	Modifier DirectionModifier
}

// noTurnInstruction is used for turns that continue along an edge-expanded
// node without representing a real decision point, e.g. the sole exit of a
// roundabout node with no competing candidate.
func noTurnInstruction() TurnInstruction {
	return TurnInstruction{Type: TurnTypeNoTurn, Modifier: ModifierStraight}
}

// getTurnDirection buckets a computeAngle() result into one of the eight
// direction modifiers. Bucket edges are fixed, not symmetric around 180,
// mirroring how turn angles are perceived by drivers rather than split
// purely mathematically.
func getTurnDirection(angle float64) DirectionModifier {
	switch {
	case angle >= 23 && angle < 67:
		return ModifierSharpRight
	case angle >= 67 && angle < 113:
		return ModifierRight
	case angle >= 113 && angle < 158:
		return ModifierSlightRight
	case angle >= 158 && angle < 202:
		return ModifierStraight
	case angle >= 202 && angle < 248:
		return ModifierSlightLeft
	case angle >= 248 && angle < 292:
		return ModifierLeft
	case angle >= 292 && angle < 336:
		return ModifierSharpLeft
	default:
		return ModifierUTurn
	}
}

func isUturn(instr TurnInstruction) bool {
	return instr.Modifier == ModifierUTurn
}

func isSlightModifier(mod DirectionModifier) bool {
	return mod == ModifierSlightRight || mod == ModifierSlightLeft
}

func isSlightTurn(instr TurnInstruction) bool {
	return instr.Type == TurnTypeTurn && isSlightModifier(instr.Modifier)
}

func isSharpTurn(instr TurnInstruction) bool {
	return instr.Modifier == ModifierSharpLeft || instr.Modifier == ModifierSharpRight
}

// isBasic reports whether a candidate still carries its raw,
// angle-derived classification (Turn or Ramp) and is therefore still
// eligible for conflict resolution and suppression. Once a candidate has
// been reclassified as Fork, EndOfRoad, Continue, Merge, NewName or
// Suppressed it is considered settled.
func isBasic(t TurnType) bool {
	return t == TurnTypeTurn || t == TurnTypeRamp
}

func isOnRoundabout(instr TurnInstruction) bool {
	switch instr.Type {
	case TurnTypeEnterRoundabout, TurnTypeExitRoundabout, TurnTypeRemainRoundabout,
		TurnTypeEnterRotary, TurnTypeEnterRotaryAtExit, TurnTypeEnterRoundaboutAtExit:
		return true
	}
	return false
}

// entersRoundabout reports whether instr takes the traveler onto a
// roundabout/rotary, as opposed to remaining on or exiting one.
func entersRoundabout(instr TurnInstruction) bool {
	return instr.Type == TurnTypeEnterRoundabout || instr.Type == TurnTypeEnterRotary
}

// canBeSuppressed reports whether a candidate's type may be silently
// downgraded to NewName when it turns out to be the only sensible choice.
func canBeSuppressed(t TurnType) bool {
	switch t {
	case TurnTypeTurn, TurnTypeRamp, TurnTypeNewName, TurnTypeContinue:
		return true
	}
	return false
}

// isConflict reports whether two candidates would present the same
// direction modifier to a traveler, which is the condition the cyclic
// conflict-resolution pass exists to break.
func isConflict(a, b TurnInstruction) bool {
	return a.Modifier == b.Modifier
}

// mirrorDirectionModifier flips a modifier across the straight-ahead axis.
// Straight and UTurn have no mirror image and pass through unchanged.
func mirrorDirectionModifier(mod DirectionModifier) DirectionModifier {
	switch mod {
	case ModifierSharpRight:
		return ModifierSharpLeft
	case ModifierRight:
		return ModifierLeft
	case ModifierSlightRight:
		return ModifierSlightLeft
	case ModifierSlightLeft:
		return ModifierSlightRight
	case ModifierLeft:
		return ModifierRight
	case ModifierSharpLeft:
		return ModifierSharpRight
	default:
		return mod
	}
}

// rotateModifier steps mod one position towards the left (increasing
// index) or right (decreasing index) along the clockwise ordering. It
// refuses to rotate past SharpLeft/SharpRight into UTurn territory.
func rotateModifier(mod DirectionModifier, towardLeft bool) (DirectionModifier, bool) {
	if towardLeft {
		if mod == ModifierSharpLeft || mod == ModifierUTurn {
			return mod, false
		}
		return mod + 1, true
	}
	if mod == ModifierSharpRight || mod == ModifierUTurn {
		return mod, false
	}
	return mod - 1, true
}

// resolve nudges candidate's modifier one step towards left/right so it no
// longer collides with neighbor's modifier. Returns false (candidate left
// untouched) if the rotation would run off the end or would still collide.
func resolve(candidate *TurnInstruction, neighbor TurnInstruction, towardLeft bool) bool {
	rotated, ok := rotateModifier(candidate.Modifier, towardLeft)
	if !ok || rotated == neighbor.Modifier {
		return false
	}
	candidate.Modifier = rotated
	return true
}

// resolveTransitive rotates both candidate and neighbor one step outward,
// only committing the change if neither result collides with the other or
// with neighbor2 (the far side of the conflict run).
func resolveTransitive(candidate, neighbor *TurnInstruction, neighbor2 TurnInstruction, towardLeft bool) bool {
	rotatedCandidate, ok1 := rotateModifier(candidate.Modifier, towardLeft)
	rotatedNeighbor, ok2 := rotateModifier(neighbor.Modifier, towardLeft)
	if !ok1 || !ok2 || rotatedCandidate == rotatedNeighbor || rotatedCandidate == neighbor2.Modifier || rotatedNeighbor == neighbor2.Modifier {
		return false
	}
	candidate.Modifier = rotatedCandidate
	neighbor.Modifier = rotatedNeighbor
	return true
}

// turnConfidence scores how clear-cut a candidate's classification is, used
// to break ties during conflict resolution: lower confidence candidates
// get nudged out of the way first. Candidates far from straight-ahead
// (180 degrees), or marked invalid during getTurnCandidates, score lower.
func turnConfidence(angle float64, instr TurnInstruction, valid bool) float64 {
	confidence := 1.0
	if isUturn(instr) {
		confidence = 0.5
	} else {
		deviation := angularDeviation(angle, 180.0)
		confidence = 1.0 - deviation/180.0
		if confidence < 0 {
			confidence = 0
		}
	}
	if !valid {
		confidence *= 0.8
	}
	return confidence
}
