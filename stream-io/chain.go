package streamio

import (
	"fmt"
)

// Chain 顺序拼接两个Reader, 先读完first再读second.
type Chain struct {
	first          Reader
	second         Reader
	exhaustedFirst bool
}

// Read delegates to first until it reports EndOfStream, then to second. The call in which
// first ends is continued on second, so no empty attempt is ever surfaced at the boundary.
func (c *Chain) Read(p []byte) (Outcome, error) {
	if len(p) == 0 {
		return EndOfStream(), nil
	}
	if !c.exhaustedFirst {
		o, err := c.first.Read(p)
		if err != nil {
			return o, err
		}
		if !o.IsEndOfStream() {
			return o, nil
		}
		c.exhaustedFirst = true
	}
	return c.second.Read(p)
}

// Initializer prefers first's policy while it still asks for zeroing.
func (c *Chain) Initializer() Initializer {
	if i := InitializerOf(c.first); i.ShouldInitialize() {
		return i
	}
	return InitializerOf(c.second)
}

// NewError prefers first's constructor, then second's.
func (c *Chain) NewError(kind Kind, cause error) error {
	if err := ConstructError(c.first, kind, cause); err != nil {
		return err
	}
	return ConstructError(c.second, kind, cause)
}

// ExhaustedFirst reports whether first has ended.
func (c *Chain) ExhaustedFirst() bool {
	return c.exhaustedFirst
}

// Inner gives back both sources.
func (c *Chain) Inner() (Reader, Reader) {
	return c.first, c.second
}

func (c *Chain) String() string {
	return fmt.Sprintf("Chain{first: %v, second: %v, exhaustedFirst: %t}", c.first, c.second, c.exhaustedFirst)
}
