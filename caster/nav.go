package caster

import "github.com/xionluhnis/knitc/alphabet"

// step advances the current needle by one position in dir, wrapping between
// bed ends unless the corresponding Mirror flag forbids it.
func (c *Caster) step(dir alphabet.Direction) {
	delta := 1
	if dir == alphabet.DirLeft {
		delta = -1
	}
	next := c.Current + delta
	if next < 0 {
		if c.Flags.Has(MirrorLeft) {
			return
		}
		next = c.width() - 1
	} else if next >= c.width() {
		if c.Flags.Has(MirrorRight) {
			return
		}
		next = 0
	}
	c.Current = next
}

// Next advances the current needle steps positions in the current
// direction, optionally walking in the opposite direction (inverse). With
// SkipEmpty set, needles whose current-side bed state is empty are skipped
// over without counting toward steps.
func (c *Caster) Next(steps int, inverse bool) *Caster {
	dir := c.Dir
	if inverse {
		dir = dir.Invert()
	}
	moved := 0
	guard := 0
	for moved < steps {
		c.step(dir)
		guard++
		if guard > 4*c.width()+8 {
			break // no non-empty needle reachable; avoid spinning forever
		}
		if c.Flags.Has(SkipEmpty) && !c.occupied(c.Current, c.Side) {
			continue
		}
		moved++
	}
	return c
}

// Prev is Next with the direction inverted.
func (c *Caster) Prev(steps int) *Caster { return c.Next(steps, true) }

// MoveTo commits the buffer (flushing first if a side change is required),
// then repositions the caster at index/side/dir. If dir disagrees with the
// caster's current direction by more than one step's worth of travel, a
// turn is performed: the line is flushed under the new direction before the
// position changes.
func (c *Caster) MoveTo(index int, side alphabet.Side, dir alphabet.Direction) *Caster {
	if side != alphabet.SideNone && side != c.Side {
		c.Flush(nil, alphabet.DirTransfer)
		c.Side = side
	}
	if dir != alphabet.DirTransfer && dir != c.Dir {
		delta := index - c.Current
		if delta < 0 {
			delta = -delta
		}
		if delta > 1 {
			c.turn(dir)
		} else {
			c.Dir = dir
		}
	}
	c.Current = index
	return c
}

// turn flushes under the requested direction (a reversal mid-pass) and
// adopts it as the running direction.
func (c *Caster) turn(dir alphabet.Direction) {
	c.Flush(nil, dir)
	c.Dir = dir
}
