package pda

// Accepts dispatches to the deterministic or nondeterministic simulator
// according to p's flavor (spec.md §4.4).
func Accepts(p *PDA, word []SymbolID, cfg Config) (bool, error) {
	if p.flavor == DPDA {
		return AcceptsDPDA(p, word), nil
	}
	return AcceptsNPDA(p, word, cfg)
}
