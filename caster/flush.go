package caster

import (
	"github.com/xionluhnis/knitc/alphabet"
)

// Flush commits the buffered line to the raster:
//  1. locate the leftmost/rightmost non-zero cell; if none, do nothing.
//  2. fill the span between them with LinkProcess.
//  3. if the LinkProcess mode flag is set, also fill any other occupied-bed
//     cell with LinkProcess.
//  4. resolve cross pairs, overwriting their in-between candidates with
//     CrossJoint.
//  5. resolve the line's direction (R5 override if a reversal is forced).
//  6. write R3 = carrier.
//  7. commit the row, reset the buffer, and (for non-transfer lines) flip
//     the running direction.
//
// options, if non-nil, are merged into the line's options before the
// direction/carrier writes (so a caller can request e.g. R11 alongside the
// flush). dir is the semantic direction this line represents; pass
// alphabet.DirTransfer for transfer/knit-cancel lines.
func (c *Caster) Flush(options map[alphabet.OptionKey]uint8, dir alphabet.Direction) bool {
	left, right, ok := c.span()
	if !ok {
		return false
	}

	for i := left + 1; i < right; i++ {
		if c.line[i].IsEmpty() {
			c.line[i] = alphabet.LinkProcess
		}
	}
	if c.Flags.Has(LinkProcess) {
		for i := 0; i < len(c.line); i++ {
			if c.line[i].IsEmpty() && c.occupied(i, c.Side) {
				c.line[i] = alphabet.LinkProcess
			}
		}
	}

	c.resolveCrossJoints(left, right)

	c.Store.EnsureLine(c.Row)
	for i, code := range c.line {
		_ = c.Store.SetFabric(c.Row, i, code)
	}

	for k, v := range options {
		_ = c.Store.SetLineOption(c.Row, k, v, true)
	}
	for k, v := range c.Options {
		_, already := c.Store.GetLineOption(c.Row, k)
		if !already {
			_ = c.Store.SetLineOption(c.Row, k, v, false)
		}
	}

	if dir == alphabet.DirTransfer {
		_ = c.Store.SetLineOption(c.Row, alphabet.R5, alphabet.ModeKnitCancel, false)
	} else if dir != c.Dir {
		_ = c.Store.SetLineOption(c.Row, alphabet.R5, alphabet.ModeCarriageMove, true)
	}
	_, hasR3 := c.Store.GetLineOption(c.Row, alphabet.R3)
	if !hasR3 {
		_ = c.Store.SetLineOption(c.Row, alphabet.R3, c.Carrier, false)
	}

	c.trace("flush row=%d dir=%v span=[%d,%d]", c.Row, dir, left, right)

	c.Row++
	for i := range c.line {
		c.line[i] = 0
	}
	if dir != alphabet.DirTransfer {
		c.Dir = c.Dir.Invert()
	}
	return true
}

// span returns the fabric-relative indices of the leftmost/rightmost
// non-empty cell in the current line buffer.
func (c *Caster) span() (left, right int, ok bool) {
	left, right = -1, -1
	for i, code := range c.line {
		if code.IsEmpty() {
			continue
		}
		if left < 0 {
			left = i
		}
		right = i
	}
	return left, right, left >= 0
}

// resolveCrossJoints resolves cross pairs within a line: a cross code opens
// a pair; subsequent empty/link-process cells are candidate joint
// positions; the matching complement code closes the pair and the
// candidates become CrossJoint; any other non-cross instruction closes the
// pair without resolving it.
func (c *Caster) resolveCrossJoints(left, right int) {
	opening := alphabet.Code(0)
	var candidates []int
	for i := left; i <= right; i++ {
		code := c.line[i]
		switch {
		case opening == 0 && alphabet.CrossOpens(code):
			opening = code
			candidates = candidates[:0]
		case opening != 0 && code == alphabet.CrossComplementsOf[opening]:
			for _, idx := range candidates {
				c.line[idx] = alphabet.CrossJoint
			}
			opening = 0
			candidates = candidates[:0]
		case opening != 0 && code.IsZeroOrLinkProcess():
			candidates = append(candidates, i)
		case opening != 0:
			// A non-matching, non-cross instruction closes the pair
			// unresolved.
			opening = 0
			candidates = candidates[:0]
		}
	}
}
