package caster

import "github.com/xionluhnis/knitc/alphabet"

// Move writes a transfer instruction shifting the loop at the current
// needle by delta positions on the same side, setting L13 to a
// sliders-requiring transfer type when the opposite side of the source is
// occupied. If the line buffer already holds data from an
// ongoing knitting pass, that pass is flushed first under its own running
// direction before the transfer is emitted as its own knit-cancel line.
func (c *Caster) Move(delta int) *Caster {
	return c.emitTransfer(c.Current+delta, c.Side, false)
}

// Transfer performs a same-index bed switch: the loop at the current
// needle moves to the opposite bed.
func (c *Caster) Transfer() *Caster {
	c.emitTransfer(c.Current, c.Side.Opposite(), false)
	c.Side = c.Side.Opposite()
	return c
}

// emitTransfer is the shared body of Move/Transfer/knitAfter-transfers.
func (c *Caster) emitTransfer(target int, targetSide alphabet.Side, knitAfter bool) *Caster {
	if left, _, ok := c.span(); ok {
		_ = left
		c.Flush(nil, c.Dir)
	}
	code, err := alphabet.TransferCode(c.Current, c.Side, target, targetSide, knitAfter)
	if err != nil {
		return c
	}
	c.line[c.Current] = code
	sliders := c.occupied(c.Current, c.Side.Opposite())
	c.Options[alphabet.L13] = alphabet.TransferType(c.Side, sliders, false)

	c.setOccupied(c.Current, c.Side, false)
	c.setOccupied(target, targetSide, true)

	c.Flush(nil, alphabet.DirTransfer)
	c.Current = target
	return c
}

// InstrBlock writes a prepared array of codes at the given needle indices
// in a single line and updates Current to the farthest needle in the
// direction of travel. asTransfer selects whether the line
// flushes under DirTransfer (knit-cancel) or the caster's running
// direction.
func (c *Caster) InstrBlock(instrs []alphabet.Code, needles []int, asTransfer bool) *Caster {
	for i, idx := range needles {
		if idx < 0 || idx >= len(c.line) {
			continue
		}
		c.line[idx] = instrs[i]
	}
	travel := c.Dir
	dir := travel
	if asTransfer {
		dir = alphabet.DirTransfer
	}
	c.Flush(nil, dir)
	farthest := c.Current
	for _, idx := range needles {
		if travel == alphabet.DirRight && idx > farthest {
			farthest = idx
		} else if travel == alphabet.DirLeft && idx < farthest {
			farthest = idx
		}
	}
	c.Current = farthest
	return c
}
