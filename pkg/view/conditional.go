package view

type branch struct {
	cond    bool
	produce func() Renderable
}

// Conditional renders the first branch whose condition holds. Producers are
// called lazily: branches after the matching one are never invoked. When no
// branch holds the block renders as the empty string.
//
// A Conditional is immutable. ElseIf and Else return a new value and leave
// the receiver untouched, so two chains extended from the same prefix do not
// see each other's branches.
type Conditional struct {
	branches []branch
}

// If starts a conditional block.
func If(cond bool, produce func() Renderable) Conditional {
	return Conditional{branches: []branch{{cond: cond, produce: produce}}}
}

// ElseIf appends a conditional branch.
func (c Conditional) ElseIf(cond bool, produce func() Renderable) Conditional {
	branches := make([]branch, len(c.branches), len(c.branches)+1)
	copy(branches, c.branches)
	return Conditional{branches: append(branches, branch{cond: cond, produce: produce})}
}

// Else appends an unconditional branch. Branches added after it can never
// be selected.
func (c Conditional) Else(produce func() Renderable) Conditional {
	return c.ElseIf(true, produce)
}

// Len reports the number of branches.
func (c Conditional) Len() int {
	return len(c.branches)
}

// Render renders the first matching branch.
func (c Conditional) Render() (string, error) {
	for _, b := range c.branches {
		if !b.cond {
			continue
		}
		if b.produce == nil {
			return "", nil
		}
		return Render(b.produce())
	}
	return "", nil
}
