package caster

import "github.com/xionluhnis/knitc/alphabet"

// SetOptions replaces the caster's pending line options outright.
func (c *Caster) SetOptions(opts map[alphabet.OptionKey]uint8) *Caster {
	c.Options = map[alphabet.OptionKey]uint8{}
	for k, v := range opts {
		c.Options[k] = v
	}
	return c
}

// AddOption merges a single option into the pending set, overwriting any
// existing value for that key.
func (c *Caster) AddOption(key alphabet.OptionKey, value uint8) *Caster {
	c.Options[key] = value
	return c
}

// AddOptions merges opts into the pending set.
func (c *Caster) AddOptions(opts map[alphabet.OptionKey]uint8) *Caster {
	for k, v := range opts {
		c.Options[k] = v
	}
	return c
}

// Using runs fn with key temporarily overridden to value, restoring
// whatever the key held before (or clearing it, if it was unset) once fn
// returns, so a one-line tension or yarn change (R6/R15) leaves the
// caster's steady-state options as they were. Only that one option key is
// scoped: flags, carrier and the buffered line are neither saved nor
// restored, and the line is not flushed.
func (c *Caster) Using(key alphabet.OptionKey, value uint8, fn func()) *Caster {
	prev, had := c.Options[key]
	c.Options[key] = value
	fn()
	if had {
		c.Options[key] = prev
	} else {
		delete(c.Options, key)
	}
	return c
}
