package turing

// Configuration is the tuple (state, tapes, head_positions, step_count)
// of spec.md §3.2. Immutable: every transition application returns a new
// Configuration via apply.
type Configuration struct {
	State StateID
	Tapes []Tape
	Heads []int
	Steps int
}

// Start returns the initial configuration for a run of m on word — a
// slice of input-alphabet symbol IDs — loaded onto tape 0; every other
// tape starts blank. word is translated by name into m's tape-alphabet
// IDs: the input and tape alphabets are interned into independent
// symtab.Tables (Build only requires Σ ⊆ Γ by name), so their dense IDs
// are not interchangeable even though Σ's members are also Γ members.
func Start(m *TM, word []SymbolID) Configuration {
	tapeWord := make([]SymbolID, len(word))
	for i, id := range word {
		tapeWord[i] = m.tape.Lookup(m.input.Name(id))
	}

	tapes := make([]Tape, m.tapeCount)
	heads := make([]int, m.tapeCount)
	tapes[0] = LoadTape(m.blanks[0], tapeWord)
	for i := 1; i < m.tapeCount; i++ {
		tapes[i] = NewTape(m.blanks[i])
	}
	return Configuration{State: m.initial, Tapes: tapes, Heads: heads}
}

// readVector returns the symbol currently under each tape's head — the
// "head_symbol" δ(q, head_symbol) looks up (spec.md §4.8).
func readVector(cfg Configuration) []SymbolID {
	out := make([]SymbolID, len(cfg.Tapes))
	for i, t := range cfg.Tapes {
		out[i] = t.Read(cfg.Heads[i])
	}
	return out
}

// apply performs one step: write, move, update state, exactly as spec.md
// §4.8 describes ("write, move, update state").
func apply(cfg Configuration, t Transition) Configuration {
	tapes := make([]Tape, len(cfg.Tapes))
	heads := make([]int, len(cfg.Heads))
	for i := range cfg.Tapes {
		tapes[i] = cfg.Tapes[i].Write(cfg.Heads[i], t.Write[i])
		switch t.Moves[i] {
		case Left:
			heads[i] = cfg.Heads[i] - 1
		case Right:
			heads[i] = cfg.Heads[i] + 1
		default:
			heads[i] = cfg.Heads[i]
		}
	}
	return Configuration{State: t.To, Tapes: tapes, Heads: heads, Steps: cfg.Steps + 1}
}

// AlignHeads translates every tape's coordinate origin so the minimum
// head position becomes 0. This is a pure memory-locality optimization
// (spec.md §4.8: "does not change semantics") — absolute positions shift,
// but the symbol under each head, and at every offset from it, is
// unaffected, since every tape and head is translated by the same amount.
func AlignHeads(cfg Configuration) Configuration {
	if len(cfg.Heads) == 0 {
		return cfg
	}
	min := cfg.Heads[0]
	for _, h := range cfg.Heads[1:] {
		if h < min {
			min = h
		}
	}
	if min == 0 {
		return cfg
	}
	tapes := make([]Tape, len(cfg.Tapes))
	heads := make([]int, len(cfg.Heads))
	for i, t := range cfg.Tapes {
		tapes[i] = t.shift(min)
		heads[i] = cfg.Heads[i] - min
	}
	return Configuration{State: cfg.State, Tapes: tapes, Heads: heads, Steps: cfg.Steps}
}

// fingerprint keys an NTM visited-configuration set by (state, each
// tape's fingerprint, each head position) per spec.md §4.8.
func fingerprint(cfg Configuration) string {
	key := make([]byte, 0, 32)
	key = appendUint(key, uint64(cfg.State))
	for i, t := range cfg.Tapes {
		key = append(key, '|')
		key = append(key, t.Fingerprint()...)
		key = append(key, '@')
		key = appendUint(key, uint64(int64(cfg.Heads[i])))
	}
	return string(key)
}

func appendUint(b []byte, v uint64) []byte {
	if v == 0 {
		return append(b, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(b, tmp[i:]...)
}
