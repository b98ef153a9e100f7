package alphabet

// EvenSideCrossCode picks the cross-family code for one side of a cable
// pairing. ordinal counts completed pairs within the current line so that
// alternating pairs use the *_SECOND variants (e.g. scenario 3:
// ordinal 0 uses CrossBelow/CrossAbove).
func EvenSideCrossCode(above bool, ordinal int) Code {
	odd := ordinal%2 != 0
	switch {
	case !odd && !above:
		return CrossBelow
	case !odd && above:
		return CrossAbove
	case odd && !above:
		return CrossBelowSecond
	default:
		return CrossAboveSecond
	}
}

// CrossOpens reports whether c opens a cross pair (i.e. participates in
// cross joint resolution and is not itself a joint code).
func CrossOpens(c Code) bool {
	_, ok := CrossComplementsOf[c]
	return ok && c != CrossJoint
}
