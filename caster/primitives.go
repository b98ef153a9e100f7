package caster

import "github.com/xionluhnis/knitc/alphabet"

var knitCodeFor = map[alphabet.Side]alphabet.Code{
	alphabet.SideFront: alphabet.KnitFront,
	alphabet.SideBack:  alphabet.KnitBack,
	alphabet.SideBoth:  alphabet.KnitBoth,
}

var purlCodeFor = map[alphabet.Side]alphabet.Code{
	alphabet.SideFront: alphabet.KnitFrontSlider,
	alphabet.SideBack:  alphabet.KnitBackSlider,
}

var tuckCodeFor = map[alphabet.Side]alphabet.Code{
	alphabet.SideFront: alphabet.TuckFront,
	alphabet.SideBack:  alphabet.TuckBack,
	alphabet.SideBoth:  alphabet.TuckBoth,
}

var missCodeFor = map[alphabet.Side]alphabet.Code{
	alphabet.SideFront: alphabet.MissFront,
	alphabet.SideBack:  alphabet.MissBack,
}

var splitCodeFor = map[alphabet.Side]alphabet.Code{
	alphabet.SideFront: alphabet.SplitFront,
	alphabet.SideBack:  alphabet.SplitBack,
}

// write places code at the current needle, flushing first if that cell is
// already occupied in the buffer, applies the code's bed effect, and
// auto-advances when AutoMove is set.
func (c *Caster) write(code alphabet.Code) *Caster {
	if !c.line[c.Current].IsEmpty() {
		c.Flush(nil, c.Dir)
	}
	c.line[c.Current] = code
	info := alphabet.LookupInfo(code)
	c.applyEffect(c.Current, c.Side, info.Effect)
	c.last = code
	c.started = true
	if c.Flags.Has(AutoMove) {
		c.Next(1, false)
	}
	return c
}

// Knit writes the plain knit code for the current side.
func (c *Caster) Knit() *Caster { return c.write(knitCodeFor[c.Side]) }

// Purl writes the slider-knit code for the current side (a knit worked
// through the opposite loop face).
func (c *Caster) Purl() *Caster { return c.write(purlCodeFor[c.Side]) }

// FBKnit knits both beds of the current needle in one instruction.
func (c *Caster) FBKnit() *Caster { return c.write(alphabet.KnitBoth) }

// Miss leaves the current needle untouched but carries the yarn across it.
func (c *Caster) Miss() *Caster { return c.write(missCodeFor[c.Side]) }

// Tuck adds a loop at the current needle without knitting off the old one.
func (c *Caster) Tuck() *Caster { return c.write(tuckCodeFor[c.Side]) }

// KBKnit performs a kickback: a both-beds tuck opening a kickback cast-on.
func (c *Caster) KBKnit() *Caster { return c.write(alphabet.TuckBoth) }

// Split keeps the existing loop at the current needle (marking it as a
// split source) without depositing a copy anywhere.
func (c *Caster) Split() *Caster { return c.write(splitCodeFor[c.Side]) }

// SplitInto splits the loop at the current needle, depositing a new loop at
// targetIndex on the opposite bed in the same pass. |targetIndex-current|
// must be <= alphabet.MaxSplitDelta.
func (c *Caster) SplitInto(targetIndex int) *Caster {
	if !c.line[c.Current].IsEmpty() || (targetIndex != c.Current && !c.line[targetIndex].IsEmpty()) {
		c.Flush(nil, c.Dir)
	}
	c.line[c.Current] = splitCodeFor[c.Side]
	c.applyEffect(c.Current, c.Side, alphabet.EffectSame)

	d := targetIndex - c.Current
	code, err := alphabet.SplitIntoCode(d)
	if err == nil {
		c.line[targetIndex] = code
		c.applyEffect(targetIndex, c.Side.Opposite(), alphabet.EffectSame)
	}
	c.last = code
	c.started = true
	if c.Flags.Has(AutoMove) {
		c.Next(1, false)
	}
	return c
}
