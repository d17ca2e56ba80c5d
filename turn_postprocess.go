package edgegraph

import "math"

// leftOf and rightOf give the cyclic neighbor of index i in an
// angle-sorted, wraparound candidate list: leftOf moves towards higher
// angle (more towards the left side of the road), rightOf towards lower
// angle.
func leftOf(i, n int) int  { return (i + 1) % n }
func rightOf(i, n int) int { return (i - 1 + n) % n }

// checkForkAndEnd looks for the specific three-candidate shape (a u-turn
// plus two roughly-symmetric onward roads) that OSRM special-cases as a
// Fork or an EndOfRoad rather than running it through the general
// conflict-resolution machinery. It mutates candidates and reports
// whether it fired.
func checkForkAndEnd(graph Graph, inEdgeData *EdgeData, candidates []TurnCandidate) bool {
	if len(candidates) != 3 || candidates[0].Instruction.Modifier != ModifierUTurn {
		return false
	}
	c1, c2 := candidates[1], candidates[2]
	if isOnRoundabout(c1.Instruction) {
		return false
	}

	if c1.Valid && c2.Valid && angularDeviation(c1.Angle, straightAngle) < narrowTurnAngle && angularDeviation(c2.Angle, straightAngle) < narrowTurnAngle {
		rc1 := graph.GetEdgeData(c1.Edge).RoadClass
		rc2 := graph.GetEdgeData(c2.Edge).RoadClass
		if inEdgeData.RoadClass != rc1 || rc1 != rc2 {
			return false
		}
		candidates[1].Instruction = TurnInstruction{Type: TurnTypeFork, Modifier: ModifierSlightRight}
		candidates[2].Instruction = TurnInstruction{Type: TurnTypeFork, Modifier: ModifierSlightLeft}
		return true
	}

	if angularDeviation(c1.Angle, 90) < narrowTurnAngle && angularDeviation(c2.Angle, 270) < narrowTurnAngle {
		candidates[1].Instruction = TurnInstruction{Type: TurnTypeEndOfRoad, Modifier: ModifierRight}
		candidates[2].Instruction = TurnInstruction{Type: TurnTypeEndOfRoad, Modifier: ModifierLeft}
		return true
	}
	return false
}

// optimizeRamps looks for a candidate that continues under the same name
// as the incoming road. When the incoming road is itself a ramp, that
// continuation is suppressed as noise; every other ramp candidate is then
// nudged to whichever slight-modifier side of the continuation it sits
// on, so parallel ramp choices don't collide.
func optimizeRamps(graph Graph, inEdgeData *EdgeData, candidates []TurnCandidate) {
	continueIdx := -1
	for i, c := range candidates {
		if isUturn(c.Instruction) {
			continue
		}
		if graph.GetEdgeData(c.Edge).NameID == inEdgeData.NameID {
			continueIdx = i
			break
		}
	}
	if continueIdx == -1 {
		return
	}

	cont := &candidates[continueIdx]
	if angularDeviation(cont.Angle, straightAngle) < narrowTurnAngle && isRampClass(inEdgeData.RoadClass) {
		cont.Instruction.Type = TurnTypeSuppressed
	}

	for i := range candidates {
		if i == continueIdx || candidates[i].Instruction.Type != TurnTypeRamp {
			continue
		}
		if !isSlightModifier(candidates[i].Instruction.Modifier) {
			continue
		}
		if i < continueIdx {
			candidates[i].Instruction.Modifier = ModifierSlightRight
		} else {
			candidates[i].Instruction.Modifier = ModifierSlightLeft
		}
	}
}

// optimizeCandidates runs the fork/end-of-road check, ramp optimization,
// and cyclic conflict resolution over an angle-sorted candidate list.
func optimizeCandidates(graph Graph, viaEdge EdgeID, candidates []TurnCandidate) []TurnCandidate {
	if len(candidates) <= 1 {
		return candidates
	}
	inEdgeData := graph.GetEdgeData(viaEdge)

	if checkForkAndEnd(graph, inEdgeData, candidates) {
		return candidates
	}
	optimizeRamps(graph, inEdgeData, candidates)

	n := len(candidates)
	if isUturn(candidates[0].Instruction) {
		l, r := leftOf(0, n), rightOf(0, n)
		if l != 0 && isUturn(candidates[l].Instruction) {
			candidates[l].Instruction.Modifier = ModifierSharpLeft
		}
		if r != 0 && r != l && isUturn(candidates[r].Instruction) {
			candidates[r].Instruction.Modifier = ModifierSharpRight
		}
	}

	eligible := func(i int) bool {
		return !isUturn(candidates[i].Instruction) && !isOnRoundabout(candidates[i].Instruction) && isBasic(candidates[i].Instruction.Type)
	}

	i, visited := 0, 0
	for visited < n {
		visited++
		if !eligible(i) {
			i = (i + 1) % n
			continue
		}
		left := leftOf(i, n)
		if !eligible(left) || !isConflict(candidates[i].Instruction, candidates[left].Instruction) {
			i = (i + 1) % n
			continue
		}
		start, end, size := i, left, 2
		for {
			next := leftOf(end, n)
			if next == start || !eligible(next) || !isConflict(candidates[end].Instruction, candidates[next].Instruction) {
				break
			}
			end = next
			size++
		}
		resolveConflictRegion(candidates, start, end, size, n)
		i = leftOf(end, n)
	}
	return candidates
}

// resolveConflictRegion breaks the tie between candidates that would
// otherwise present the same direction modifier. A two-candidate region
// rotates the less-confident member out of the way first (or, when
// confidence is a toss-up, rotates both members one step toward the left
// together). A
// larger region only shifts its outermost pair, tolerating an unresolved
// interior with a debug warning rather than cascading further.
func resolveConflictRegion(candidates []TurnCandidate, start, end, size, n int) {
	if size == 2 {
		a, b := &candidates[start].Instruction, &candidates[end].Instruction
		confA, confB := candidates[start].Confidence, candidates[end].Confidence
		const epsilon = 0.05
		if math.Abs(confA-confB) < epsilon {
			// A slight turn's modifier is a weaker claim about the road's
			// shape than a sharp turn's, so nudge it out of the way first
			// when confidence alone doesn't break the tie.
			if isSlightTurn(*a) && !isSlightTurn(*b) && resolve(a, *b, true) {
				return
			}
			if isSlightTurn(*b) && !isSlightTurn(*a) && resolve(b, *a, false) {
				return
			}
			// Rotate both candidates one step toward the left together;
			// this is skipped when either is already a sharp turn.
			if !isSharpTurn(*a) && !isSharpTurn(*b) {
				outer := candidates[leftOf(end, n)].Instruction
				if resolveTransitive(a, b, outer, true) {
					return
				}
			}
		}
		if confA <= confB {
			if resolve(a, *b, true) {
				return
			}
			resolve(b, *a, false)
			return
		}
		if resolve(b, *a, false) {
			return
		}
		resolve(a, *b, true)
		return
	}

	first, last := &candidates[start].Instruction, &candidates[end].Instruction
	okFirst := resolve(first, candidates[leftOf(start, n)].Instruction, false)
	okLast := resolve(last, candidates[rightOf(end, n)].Instruction, true)
	if !okFirst || !okLast {
		logDebugWarning("unresolved turn conflict in a region of size %d", size)
	}
}

// isObviousChoice reports whether a driver arriving at via would take
// candidates[index] without needing guidance: it is the only
// non-low-priority road, the only alternative to a u-turn, essentially
// straight ahead, disproportionately straighter than its neighbors, or a
// same-named continuation of the road they were already on.
func isObviousChoice(index int, candidates []TurnCandidate, inEdgeData *EdgeData, graph Graph) bool {
	if len(candidates) == 1 {
		return true
	}
	self := candidates[index]

	if len(candidates) == 2 {
		for _, c := range candidates {
			if c.Edge != self.Edge && isUturn(c.Instruction) {
				return true
			}
		}
	}

	selfClass := graph.GetEdgeData(self.Edge).RoadClass
	if !isLowPriorityRoadClass(selfClass) {
		onlyNonLowPriority := true
		for _, c := range candidates {
			if c.Edge == self.Edge || isUturn(c.Instruction) {
				continue
			}
			if !isLowPriorityRoadClass(graph.GetEdgeData(c.Edge).RoadClass) {
				onlyNonLowPriority = false
				break
			}
		}
		if onlyNonLowPriority {
			return true
		}
	}

	if angularDeviation(self.Angle, straightAngle) < maximalAllowedNoTurnDeviation {
		return true
	}

	n := len(candidates)
	left, right := candidates[leftOf(index, n)], candidates[rightOf(index, n)]
	if hasValidRatio(left, self, right) {
		return true
	}

	onto := graph.GetEdgeData(self.Edge)
	if inEdgeData.NameID != 0 && onto.NameID == inEdgeData.NameID && angularDeviation(self.Angle, straightAngle) < narrowTurnAngle/2 {
		return true
	}
	return false
}

// hasValidRatio reports whether self sits near-straight and lopsidedly
// closer to one neighbor than the other, making it the obvious
// continuation even though it isn't perfectly straight.
func hasValidRatio(left, self, right TurnCandidate) bool {
	if angularDeviation(self.Angle, straightAngle) >= narrowTurnAngle {
		return false
	}
	devLeft := angularDeviation(left.Angle, self.Angle)
	devRight := angularDeviation(right.Angle, self.Angle)
	if devRight == 0 || devLeft == 0 {
		return true
	}
	return devLeft > devRight*distinctionRatio || devRight > devLeft*distinctionRatio
}

// isDefinitiveModifier reports whether a modifier commits to an
// unambiguous side, as opposed to hedging with a slight turn.
func isDefinitiveModifier(instr TurnInstruction) bool {
	return !isSlightModifier(instr.Modifier)
}

// suppressTurns is the final pass: it downgrades candidates that a driver
// wouldn't need called out, reclassifying u-turn-adjacent low-priority
// forks, same-named continuations, and turns that are the obvious choice
// given their neighbors.
func suppressTurns(graph Graph, viaEdge EdgeID, candidates []TurnCandidate) []TurnCandidate {
	inEdgeData := graph.GetEdgeData(viaEdge)
	n := len(candidates)

	if n == 3 && isUturn(candidates[0].Instruction) {
		rc1 := graph.GetEdgeData(candidates[1].Edge).RoadClass
		rc2 := graph.GetEdgeData(candidates[2].Edge).RoadClass
		lp1, lp2 := isLowPriorityRoadClass(rc1), isLowPriorityRoadClass(rc2)
		if lp1 != lp2 {
			normal := &candidates[1]
			if lp1 {
				normal = &candidates[2]
			}
			if angularDeviation(normal.Angle, straightAngle) < narrowTurnAngle {
				if graph.GetEdgeData(normal.Edge).NameID == inEdgeData.NameID {
					normal.Instruction.Type = TurnTypeNoTurn
				} else {
					normal.Instruction.Type = TurnTypeNewName
				}
				return candidates
			}
		}
	}

	hasObviousSameName := false
	obviousSameNameAngle := 0.0
	if inEdgeData.NameID != 0 {
		for i, c := range candidates {
			if isUturn(c.Instruction) {
				continue
			}
			if graph.GetEdgeData(c.Edge).NameID == inEdgeData.NameID && isObviousChoice(i, candidates, inEdgeData, graph) {
				hasObviousSameName = true
				obviousSameNameAngle = c.Angle
				break
			}
		}
	}

	for i := range candidates {
		c := &candidates[i]
		if !isBasic(c.Instruction.Type) {
			continue
		}
		onto := graph.GetEdgeData(c.Edge)
		sameName := inEdgeData.NameID != 0 && onto.NameID == inEdgeData.NameID

		if sameName && !isUturn(c.Instruction) && !hasObviousSameName {
			c.Instruction.Type = TurnTypeContinue
		}

		if c.Valid && !isUturn(c.Instruction) {
			left := candidates[leftOf(i, n)].Instruction
			right := candidates[rightOf(i, n)].Instruction
			if isDefinitiveModifier(left) && isDefinitiveModifier(right) && angularDeviation(c.Angle, straightAngle) < fuzzyStraightAngle {
				c.Instruction.Modifier = ModifierStraight
			}
		}

		switch {
		case onto.TravelMode == inEdgeData.TravelMode && isObviousChoice(i, candidates, inEdgeData, graph):
			switch {
			case sameName:
				c.Instruction.Type = TurnTypeSuppressed
			case !hasObviousSameName:
				if isRampClass(inEdgeData.RoadClass) && !isRampClass(onto.RoadClass) {
					c.Instruction.Type = TurnTypeMerge
					c.Instruction.Modifier = mirrorDirectionModifier(c.Instruction.Modifier)
				} else if canBeSuppressed(c.Instruction.Type) {
					c.Instruction.Type = TurnTypeNewName
				}
			default:
				if c.Angle < obviousSameNameAngle {
					c.Instruction.Modifier = ModifierSlightRight
				} else {
					c.Instruction.Modifier = ModifierSlightLeft
				}
			}
		case c.Instruction.Modifier == ModifierStraight && hasObviousSameName:
			if c.Angle < obviousSameNameAngle {
				c.Instruction.Modifier = ModifierSlightRight
			} else {
				c.Instruction.Modifier = ModifierSlightLeft
			}
		}
	}
	return candidates
}
