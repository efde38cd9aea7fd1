package frontier

// Pair holds the two frontiers the VM drives level-synchronous BFS
// with (spec.md §3, §4.B): Current is drained by consumers, Next is
// filled by producers, and Swap exchanges their roles.
type Pair struct {
	slots   [2]Frontier
	current int
}

// Init resets both frontiers to empty of kind, current pointing at
// slot 0.
func (p *Pair) Init(kind Kind) {
	p.slots[0].Init(kind)
	p.slots[1].Init(kind)
	p.current = 0
}

// Current returns the frontier consumers read from.
func (p *Pair) Current() *Frontier {
	return &p.slots[p.current]
}

// Next returns the frontier producers write to.
func (p *Pair) Next() *Frontier {
	return &p.slots[1-p.current]
}

// Swap exchanges the roles of Current and Next (not their contents),
// then re-initializes the new Next to empty of the same kind it
// already has, per spec.md §4.B's FSWAP contract.
func (p *Pair) Swap() {
	kind := p.slots[p.current].Kind()
	p.current = 1 - p.current
	p.slots[1-p.current].Init(kind)
}
