package castengine

import (
	"github.com/xionluhnis/knitc/alphabet"
	"github.com/xionluhnis/knitc/caster"
)

// Off casts needles off using the given strategy. ending
// marks the final cast-off of the yarn, which removes the yarn manually on
// the last knit of the tail sequence.
func Off(c *caster.Caster, needles []int, kind OffKind, ending bool) error {
	switch kind {
	case Direct, Reverse, Pickup:
		offSequential(c, needles, kind, ending)
	case OffNone:
		offNone(c, ending)
	}
	return nil
}

// offSequential knits and moves one needle at a time: direction for step i
// comes from needles[i+1]-needles[i] (or the previous pair's direction when
// consecutive needles repeat), flipping the caster when it disagrees;
// PICKUP holds the previous needle with a tuck before knitting.
func offSequential(c *caster.Caster, needles []int, kind OffKind, ending bool) {
	dir := c.Dir
	for i, n := range needles {
		if i+1 < len(needles) && needles[i+1] != n {
			dir = alphabet.DirectionBetween(n, needles[i+1])
		}
		if kind == Reverse {
			dir = dir.Invert()
		}
		c.MoveTo(n, alphabet.SideFront, dir)
		if kind == Pickup && i > 0 {
			c.MoveTo(needles[i-1], alphabet.SideFront, dir).Tuck()
			c.MoveTo(n, alphabet.SideFront, dir)
		}
		c.Knit()
		c.Flush(nil, dir)
		if i+1 < len(needles) {
			c.MoveTo(needles[i+1], alphabet.SideFront, dir)
		}
	}
	tail(c, needles, dir, ending)
}

// tail emits the four or five extra knits alternating between the last two
// cast-off needles, removing the yarn manually on the final knit when
// ending.
func tail(c *caster.Caster, needles []int, dir alphabet.Direction, ending bool) {
	if len(needles) < 2 {
		return
	}
	a, b := needles[len(needles)-2], needles[len(needles)-1]
	count := 4
	if len(needles)%2 == 1 {
		count = 5
	}
	for i := 0; i < count; i++ {
		n := a
		if i%2 == 1 {
			n = b
		}
		c.MoveTo(n, alphabet.SideFront, dir)
		if ending && i == count-1 {
			c.AddOption(alphabet.R15, alphabet.YarnRemoveManual)
		}
		c.Knit()
		c.Flush(nil, dir)
		dir = dir.Invert()
	}
}

// offNone does nothing beyond, when ending, a single tuck and a manual
// yarn removal.
func offNone(c *caster.Caster, ending bool) {
	if !ending {
		return
	}
	if c.Dir != alphabet.DirRight {
		c.Dir = alphabet.DirRight
	}
	c.Tuck()
	c.AddOption(alphabet.R15, alphabet.YarnRemoveManual)
	c.Flush(nil, c.Dir)
}
